// Package paymentrepo persists payment aggregates. The checkout request id
// column carries a unique index: it is the correlation key for provider
// callbacks, and the lookup on it takes the row lock that serializes
// reconciliation.
package paymentrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/payment"
)

// PaymentDTO is the database row for a payment aggregate.
type PaymentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	Amount   decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency string
	Phone    string
	Method   string
	Status   string `gorm:"index"`

	CheckoutRequestID *string `gorm:"uniqueIndex"`
	MerchantRequestID *string
	ReceiptNumber     *string
	PaidAt            *time.Time
	FailureReason     string
	ReviewRequired    bool
	SideEffectsDone   bool

	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(aggregate *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:      aggregate.ID().Bytes(),
		OrderID: aggregate.OrderID().Bytes(),

		Amount:   aggregate.Amount().Amount(),
		Currency: aggregate.Amount().Currency(),
		Phone:    aggregate.Phone().String(),
		Method:   aggregate.Method().String(),
		Status:   aggregate.Status().String(),

		CheckoutRequestID: optional(aggregate.CheckoutRequestID()),
		MerchantRequestID: optional(aggregate.MerchantRequestID()),
		ReceiptNumber:     optional(aggregate.ReceiptNumber()),
		PaidAt:            aggregate.PaidAt(),
		FailureReason:     aggregate.FailureReason(),
		ReviewRequired:    aggregate.ReviewRequired(),
		SideEffectsDone:   aggregate.SideEffectsDone(),

		CreatedAt: aggregate.CreatedAt(),
	}
}

// optional maps "" to NULL so the unique index on checkout_request_id ignores
// payments that never reached the provider.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromOptional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	method, err := payment.MethodFromString(dto.Method)
	if err != nil {
		return nil, err
	}

	status, err := payment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id, orderID, amount, phone, method, status,
		fromOptional(dto.CheckoutRequestID),
		fromOptional(dto.MerchantRequestID),
		fromOptional(dto.ReceiptNumber),
		dto.PaidAt,
		dto.FailureReason,
		dto.ReviewRequired,
		dto.SideEffectsDone,
		dto.CreatedAt,
	)
}
