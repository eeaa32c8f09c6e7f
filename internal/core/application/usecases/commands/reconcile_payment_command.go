package commands

import (
	"errors"
	"strings"
	"time"

	"swiftparcel/internal/pkg/errs"
	"swiftparcel/internal/pkg/guard"
)

// ErrReconcilePaymentCommandIsNotConstructed is returned when the command was
// not created through the constructor.
var ErrReconcilePaymentCommandIsNotConstructed = errors.New(
	"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
)

// ReconcilePaymentCommand carries a provider result, whether it arrived as an
// asynchronous callback or from an explicit status query. The receipt number
// and paid-at timestamp are only present on successful results.
type ReconcilePaymentCommand struct { //nolint:recvcheck //using for validation
	checkoutRequestID string
	resultCode        int
	receiptNumber     string
	paidAt            time.Time

	guard guard.ConstructorGuard
}

// NewReconcilePaymentCommand creates a validated reconciliation command.
func NewReconcilePaymentCommand(
	checkoutRequestID string,
	resultCode int,
	receiptNumber string,
	paidAt time.Time,
) (ReconcilePaymentCommand, error) {
	cmd := ReconcilePaymentCommand{
		resultCode:    resultCode,
		receiptNumber: strings.TrimSpace(receiptNumber),
		paidAt:        paidAt,
		guard:         guard.NewConstructorGuard(),
	}

	if err := cmd.setCheckoutRequestID(checkoutRequestID); err != nil {
		return ReconcilePaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

// CheckoutRequestID returns the provider identifier correlating the result
// with a payment.
func (c ReconcilePaymentCommand) CheckoutRequestID() string {
	return c.checkoutRequestID
}

// ResultCode returns the provider result code.
func (c ReconcilePaymentCommand) ResultCode() int {
	return c.resultCode
}

// ReceiptNumber returns the provider receipt ("" on failures).
func (c ReconcilePaymentCommand) ReceiptNumber() string {
	return c.receiptNumber
}

// PaidAt returns the provider's confirmation timestamp (zero on failures).
func (c ReconcilePaymentCommand) PaidAt() time.Time {
	return c.paidAt
}

func (c *ReconcilePaymentCommand) setCheckoutRequestID(checkoutRequestID string) error {
	checkoutRequestID = strings.TrimSpace(checkoutRequestID)
	if checkoutRequestID == "" {
		return errs.NewValueIsRequiredError("checkout_request_id")
	}

	c.checkoutRequestID = checkoutRequestID
	return nil
}
