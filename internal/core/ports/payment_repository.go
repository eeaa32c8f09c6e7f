package ports

import (
	"context"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment aggregates.
type PaymentRepository interface {
	// Add persists a new payment aggregate.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment aggregate.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByCheckoutRequestID retrieves a payment by the provider's checkout
	// request id, locking its row for the duration of the surrounding
	// transaction. Callback processing serializes on this lock, which is what
	// makes replayed callbacks observe the already-terminal state.
	GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*payment.Payment, error)

	// GetLatestByOrder retrieves the most recent payment for an order.
	GetLatestByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)

	// GetAllProcessingOlderThan retrieves payments stuck in Processing since
	// before the cutoff. Used by the watch job to expire abandoned prompts.
	GetAllProcessingOlderThan(ctx context.Context, cutoff time.Time) ([]*payment.Payment, error)
}
