package ports

import (
	"context"

	"swiftparcel/internal/core/domain/model/kernel"
)

// PushPaymentResult is the provider's synchronous answer to an STK push
// request. The identifiers correlate the later asynchronous callback with
// the payment record.
type PushPaymentResult struct {
	CheckoutRequestID   string
	MerchantRequestID   string
	ResponseDescription string
}

// PaymentStatusResult is the provider's answer to an explicit status query.
type PaymentStatusResult struct {
	ResultCode        int
	ResultDescription string
}

// PaymentGateway is the outbound contract to the mobile-money provider.
// Implementations must not be called while holding a database transaction;
// provider round-trips can take tens of seconds.
type PaymentGateway interface {
	// StartPushPayment asks the provider to prompt the customer's phone for
	// the given amount. The returned identifiers are stored on the payment so
	// the asynchronous callback can be matched to it.
	StartPushPayment(ctx context.Context, phone kernel.Phone, amount kernel.Money, reference string) (PushPaymentResult, error)

	// QueryStatus asks the provider for the outcome of an earlier push.
	// Used when the callback never arrives.
	QueryStatus(ctx context.Context, checkoutRequestID string) (PaymentStatusResult, error)
}
