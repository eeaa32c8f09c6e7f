package payment

import (
	"errors"
	"strings"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/errs"
	"swiftparcel/internal/pkg/guard"
)

// Method identifies how the customer pays for a delivery.
type Method string

const (
	// MethodMpesa is an STK push payment reconciled through provider callbacks.
	MethodMpesa Method = "MPESA"
	// MethodCash is settled with the courier on delivery; no provider involved.
	MethodCash Method = "CASH"
)

// MethodFromString parses the wire representation, e.g. "MPESA".
func MethodFromString(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate checks the method against the known set.
func (m Method) Validate() error {
	switch m {
	case MethodMpesa, MethodCash:
		return nil
	}
	return errs.NewValueIsInvalidError("payment_method")
}

// String returns the wire name of the method.
func (m Method) String() string {
	return string(m)
}

var (
	// ErrPaymentIsNotConstructed is returned when using an improperly initialized Payment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

	// ErrAlreadyProcessed is returned when a provider result arrives for a
	// payment that already reached a terminal status. Callers acknowledge and
	// move on; the stored outcome does not change.
	ErrAlreadyProcessed = errors.New("payment already reached a terminal status")

	// ErrSideEffectsNotApplicable is returned when marking side effects done
	// on a payment that is not Paid.
	ErrSideEffectsNotApplicable = errors.New("side effects apply only to paid payments")
)

// Payment is the aggregate root for a single payment attempt against an
// order. It owns the reconciliation state machine and the bookkeeping that
// makes callback processing idempotent.
//
// Invariants:
//   - paid-at timestamp is set iff the status is Paid; the receipt number
//     normally is too, except for poll-confirmed payments, which carry no
//     receipt and stay flagged for review until one is backfilled
//   - provider request ids are set from Processing onward
//   - sideEffectsDone can only be set while Paid, and only flips once; the
//     flag is what guarantees confirmation side effects run exactly once even
//     when the provider replays callbacks
type Payment struct {
	id      kernel.UUID
	orderID kernel.UUID
	amount  kernel.Money
	phone   kernel.Phone
	method  Method

	status Status

	checkoutRequestID string
	merchantRequestID string

	receiptNumber string
	paidAt        *time.Time

	failureReason   string
	reviewRequired  bool
	sideEffectsDone bool

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewPayment creates a Pending payment for an order.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	phone kernel.Phone,
	method Method,
) (*Payment, error) {
	p := &Payment{
		status:    Pending,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmount(amount),
		p.setPhone(phone),
		p.setMethod(method),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePayment reconstructs a payment from persistence. The receipt/paid-at
// invariant is re-checked so a row cannot claim a receipt without being Paid.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	phone kernel.Phone,
	method Method,
	status Status,
	checkoutRequestID string,
	merchantRequestID string,
	receiptNumber string,
	paidAt *time.Time,
	failureReason string,
	reviewRequired bool,
	sideEffectsDone bool,
	createdAt time.Time,
) (*Payment, error) {
	p := &Payment{
		checkoutRequestID: checkoutRequestID,
		merchantRequestID: merchantRequestID,
		failureReason:     failureReason,
		reviewRequired:    reviewRequired,
		sideEffectsDone:   sideEffectsDone,
		createdAt:         createdAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmount(amount),
		p.setPhone(phone),
		p.setMethod(method),
		p.setStatus(status),
	); err != nil {
		return nil, err
	}

	hasReceipt := receiptNumber != "" || paidAt != nil
	if hasReceipt != (status == Paid) {
		return nil, errs.NewValueIsInvalidErrorWithCause("receipt_number",
			errors.New("receipt and paid-at are present exactly when the payment is paid"))
	}
	if sideEffectsDone && status != Paid {
		return nil, errs.NewValueIsInvalidErrorWithCause("side_effects_done",
			errors.New("side effects can only be recorded for paid payments"))
	}

	p.receiptNumber = receiptNumber
	p.paidAt = paidAt
	return p, nil
}

// Validate checks that the Payment was created through a constructor.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// IsEqual compares two payments by identity.
func (p *Payment) IsEqual(other *Payment) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order this payment settles.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Amount returns the amount being collected.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// Phone returns the payer's mobile number.
func (p *Payment) Phone() kernel.Phone {
	return p.phone
}

// Method returns the payment method.
func (p *Payment) Method() Method {
	return p.method
}

// Status returns the current reconciliation status.
func (p *Payment) Status() Status {
	return p.status
}

// CheckoutRequestID returns the provider's checkout request id ("" before Processing).
func (p *Payment) CheckoutRequestID() string {
	return p.checkoutRequestID
}

// MerchantRequestID returns the provider's merchant request id ("" before Processing).
func (p *Payment) MerchantRequestID() string {
	return p.merchantRequestID
}

// ReceiptNumber returns the provider receipt ("" unless Paid).
func (p *Payment) ReceiptNumber() string {
	return p.receiptNumber
}

// PaidAt returns when the provider confirmed the payment (nil unless Paid).
func (p *Payment) PaidAt() *time.Time {
	return p.paidAt
}

// FailureReason returns the human-readable failure reason ("" on success).
func (p *Payment) FailureReason() string {
	return p.failureReason
}

// ReviewRequired reports whether an operator needs to look at this payment.
func (p *Payment) ReviewRequired() bool {
	return p.reviewRequired
}

// SideEffectsDone reports whether confirmation side effects already ran.
func (p *Payment) SideEffectsDone() bool {
	return p.sideEffectsDone
}

// CreatedAt returns when the payment record was created.
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// MarkProcessing records that the provider accepted the STK push and handed
// back its request identifiers.
func (p *Payment) MarkProcessing(checkoutRequestID, merchantRequestID string) error {
	if strings.TrimSpace(checkoutRequestID) == "" {
		return errs.NewValueIsRequiredError("checkout_request_id")
	}
	if strings.TrimSpace(merchantRequestID) == "" {
		return errs.NewValueIsRequiredError("merchant_request_id")
	}

	newStatus, err := p.status.TransitionTo(Processing)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.checkoutRequestID = checkoutRequestID
	p.merchantRequestID = merchantRequestID
	return nil
}

// ApplyOutcome moves the payment to the terminal status a provider result
// implies. receiptNumber and paidAt are consulted only for Paid outcomes.
// Callbacks carry a receipt; a status-query confirmation does not, so a Paid
// outcome without one is accepted but flagged for review until an operator
// backfills the receipt from the provider statement.
//
// A payment that is already terminal returns ErrAlreadyProcessed without
// changing anything, which makes callback replays harmless.
func (p *Payment) ApplyOutcome(outcome Outcome, receiptNumber string, paidAt time.Time) error {
	if p.status.IsTerminal() {
		return ErrAlreadyProcessed
	}

	newStatus, err := p.status.TransitionTo(outcome.Status)
	if err != nil {
		return err
	}

	if outcome.Status == Paid {
		receiptNumber = strings.TrimSpace(receiptNumber)
		if receiptNumber == "" {
			p.reviewRequired = true
		}
		if paidAt.IsZero() {
			paidAt = time.Now().UTC()
		}
		p.receiptNumber = receiptNumber
		p.paidAt = &paidAt
	}

	p.status = newStatus
	p.failureReason = outcome.Reason
	if outcome.ReviewRequired {
		p.reviewRequired = true
	}
	return nil
}

// MarkFailed fails the payment before or during provider processing, e.g.
// when the STK push itself is rejected.
func (p *Payment) MarkFailed(reason string) error {
	newStatus, err := p.status.TransitionTo(Failed)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.failureReason = reason
	return nil
}

// MarkCancelled cancels a payment that has not reached the provider, e.g.
// when the order itself is cancelled.
func (p *Payment) MarkCancelled(reason string) error {
	newStatus, err := p.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.failureReason = reason
	return nil
}

// MarkTimeout expires a payment stuck in Processing. Used by the watch job
// when no callback ever arrives.
func (p *Payment) MarkTimeout() error {
	newStatus, err := p.status.TransitionTo(Timeout)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.failureReason = "no provider callback received"
	return nil
}

// MarkSideEffectsDone records that confirmation side effects (receipt email,
// assignment trigger) have run. Only valid while Paid, and only once; a
// second call reports the fact so the caller can skip re-running them.
func (p *Payment) MarkSideEffectsDone() error {
	if p.status != Paid {
		return ErrSideEffectsNotApplicable
	}
	if p.sideEffectsDone {
		return ErrAlreadyProcessed
	}

	p.sideEffectsDone = true
	return nil
}

// FlagForReview marks the payment for operator attention.
func (p *Payment) FlagForReview() {
	p.reviewRequired = true
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if amount.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			errors.New("payment amount must be greater than zero"))
	}
	p.amount = amount
	return nil
}

func (p *Payment) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	p.phone = phone
	return nil
}

func (p *Payment) setMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func (p *Payment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}
