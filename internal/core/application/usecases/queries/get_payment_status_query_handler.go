package queries

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/payment"
	"swiftparcel/internal/core/ports"
	"swiftparcel/internal/pkg/errs"
)

// GetPaymentStatusQueryHandler reads the latest payment attempt for an order.
// Retried payments leave older rows behind; only the newest one matters here.
//
// For a payment still in Processing the handler asks the provider directly,
// as a fallback for a callback that has not arrived yet. The answer shapes
// this response only: settling the payment stays with reconciliation (the
// callback endpoint and the watch job), so polling cannot race it.
type GetPaymentStatusQueryHandler struct {
	db      *gorm.DB
	gateway ports.PaymentGateway
	logger  *slog.Logger
}

// NewGetPaymentStatusQueryHandler creates a handler for payment status queries.
func NewGetPaymentStatusQueryHandler(
	db *gorm.DB,
	gateway ports.PaymentGateway,
	logger *slog.Logger,
) GetPaymentStatusQueryHandler {
	return GetPaymentStatusQueryHandler{
		db:      db,
		gateway: gateway,
		logger:  logger,
	}
}

// Handle executes the lookup. Returns errs.ErrObjectNotFound when the order
// has no payment attempts at all.
func (h GetPaymentStatusQueryHandler) Handle(
	ctx context.Context,
	query GetPaymentStatusQuery,
) (GetPaymentStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}

	var (
		response          GetPaymentStatusQueryResponse
		id                uuid.UUID
		checkoutRequestID *string
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			amount,
			currency,
			method,
			checkout_request_id,
			receipt_number,
			failure_reason,
			paid_at,
			created_at
		FROM payments
		WHERE order_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&response.Status,
		&response.Amount,
		&response.Currency,
		&response.Method,
		&checkoutRequestID,
		&response.ReceiptNumber,
		&response.FailureReason,
		&response.PaidAt,
		&response.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return GetPaymentStatusQueryResponse{}, errs.NewObjectNotFoundError("payment", query.OrderID().String())
		}
		return GetPaymentStatusQueryResponse{}, err
	}

	paymentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}
	response.PaymentID = paymentID

	if response.Status == payment.Processing.String() && checkoutRequestID != nil {
		h.applyLiveStatus(ctx, *checkoutRequestID, &response)
	}

	return response, nil
}

// applyLiveStatus overlays the provider's answer onto the response. Nothing
// is written back; a provider that cannot answer leaves the stored status in
// place.
func (h GetPaymentStatusQueryHandler) applyLiveStatus(
	ctx context.Context,
	checkoutRequestID string,
	response *GetPaymentStatusQueryResponse,
) {
	status, err := h.gateway.QueryStatus(ctx, checkoutRequestID)
	if err != nil {
		h.logger.Debug("payment status poll failed",
			slog.String("checkout_request_id", checkoutRequestID),
			slog.Any("error", err))
		return
	}

	outcome := payment.ClassifyResultCode(status.ResultCode)
	response.Status = outcome.Status.String()
	if outcome.Reason != "" {
		reason := outcome.Reason
		response.FailureReason = &reason
	}
}
