package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/errs"
)

func mustPhone(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	phone, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return phone
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return money
}

func newTestPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(
		kernel.NewUUID(),
		kernel.NewUUID(),
		mustMoney(t, "395.00"),
		mustPhone(t, "0712345678"),
		MethodMpesa,
	)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	p := newTestPayment(t)

	require.NoError(t, p.Validate())
	assert.Equal(t, Pending, p.Status())
	assert.Empty(t, p.ReceiptNumber())
	assert.Nil(t, p.PaidAt())
	assert.False(t, p.SideEffectsDone())
	assert.False(t, p.ReviewRequired())
}

func TestNewPaymentValidation(t *testing.T) {
	phone := mustPhone(t, "0712345678")

	t.Run("zero amount", func(t *testing.T) {
		_, err := NewPayment(kernel.NewUUID(), kernel.NewUUID(), kernel.ZeroMoney(), phone, MethodMpesa)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero order id", func(t *testing.T) {
		_, err := NewPayment(kernel.NewUUID(), kernel.UUID{}, mustMoney(t, "100"), phone, MethodMpesa)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid method", func(t *testing.T) {
		_, err := NewPayment(kernel.NewUUID(), kernel.NewUUID(), mustMoney(t, "100"), phone, Method("CARD"))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMethodFromString(t *testing.T) {
	m, err := MethodFromString(" mpesa ")
	require.NoError(t, err)
	assert.Equal(t, MethodMpesa, m)

	_, err = MethodFromString("CARD")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPaymentMarkProcessing(t *testing.T) {
	p := newTestPayment(t)

	require.NoError(t, p.MarkProcessing("ws_CO_01092026", "29115-34620561-1"))
	assert.Equal(t, Processing, p.Status())
	assert.Equal(t, "ws_CO_01092026", p.CheckoutRequestID())
	assert.Equal(t, "29115-34620561-1", p.MerchantRequestID())

	t.Run("missing ids", func(t *testing.T) {
		fresh := newTestPayment(t)
		assert.ErrorIs(t, fresh.MarkProcessing("", "x"), errs.ErrValueIsRequired)
		assert.ErrorIs(t, fresh.MarkProcessing("x", ""), errs.ErrValueIsRequired)
	})
}

func TestPaymentApplyOutcomeSuccess(t *testing.T) {
	p := newTestPayment(t)
	require.NoError(t, p.MarkProcessing("ws_CO_01092026", "29115-34620561-1"))

	paidAt := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	require.NoError(t, p.ApplyOutcome(ClassifyResultCode(ResultCodeSuccess), "TJ30ABCXYZ", paidAt))

	assert.Equal(t, Paid, p.Status())
	assert.Equal(t, "TJ30ABCXYZ", p.ReceiptNumber())
	require.NotNil(t, p.PaidAt())
	assert.Equal(t, paidAt, *p.PaidAt())
	assert.Empty(t, p.FailureReason())
}

func TestPaymentApplyOutcomePaidWithoutReceiptNeedsReview(t *testing.T) {
	p := newTestPayment(t)
	require.NoError(t, p.MarkProcessing("ws_CO_01092026", "29115-34620561-1"))

	// a status-query confirmation carries no receipt number
	require.NoError(t, p.ApplyOutcome(ClassifyResultCode(ResultCodeSuccess), "", time.Time{}))

	assert.Equal(t, Paid, p.Status())
	assert.Empty(t, p.ReceiptNumber())
	require.NotNil(t, p.PaidAt())
	assert.True(t, p.ReviewRequired())
}

func TestPaymentApplyOutcomeFailures(t *testing.T) {
	tests := map[string]struct {
		code       int
		wantStatus Status
	}{
		"insufficient balance": {code: ResultCodeInsufficientBalance, wantStatus: Failed},
		"cancelled by user":    {code: ResultCodeCancelledByUser, wantStatus: Cancelled},
		"timeout":              {code: ResultCodeTimeout, wantStatus: Timeout},
		"wrong pin":            {code: ResultCodeWrongPIN, wantStatus: Failed},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p := newTestPayment(t)
			require.NoError(t, p.MarkProcessing("ws_CO_01092026", "29115-34620561-1"))

			require.NoError(t, p.ApplyOutcome(ClassifyResultCode(tc.code), "", time.Time{}))
			assert.Equal(t, tc.wantStatus, p.Status())
			assert.NotEmpty(t, p.FailureReason())
			assert.Empty(t, p.ReceiptNumber())
			assert.Nil(t, p.PaidAt())
		})
	}
}

func TestPaymentApplyOutcomeUnknownCodeFlagsReview(t *testing.T) {
	p := newTestPayment(t)
	require.NoError(t, p.MarkProcessing("ws_CO_01092026", "29115-34620561-1"))

	require.NoError(t, p.ApplyOutcome(ClassifyResultCode(4242), "", time.Time{}))
	assert.Equal(t, Failed, p.Status())
	assert.True(t, p.ReviewRequired())
}

func TestPaymentReplayedCallbackIsIgnored(t *testing.T) {
	p := newTestPayment(t)
	require.NoError(t, p.MarkProcessing("ws_CO_01092026", "29115-34620561-1"))
	require.NoError(t, p.ApplyOutcome(ClassifyResultCode(ResultCodeSuccess), "TJ30ABCXYZ", time.Now()))

	err := p.ApplyOutcome(ClassifyResultCode(ResultCodeCancelledByUser), "", time.Time{})
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.Equal(t, Paid, p.Status())
	assert.Equal(t, "TJ30ABCXYZ", p.ReceiptNumber())
}

func TestPaymentMarkSideEffectsDone(t *testing.T) {
	p := newTestPayment(t)

	t.Run("not paid yet", func(t *testing.T) {
		assert.ErrorIs(t, p.MarkSideEffectsDone(), ErrSideEffectsNotApplicable)
	})

	require.NoError(t, p.MarkProcessing("ws_CO_01092026", "29115-34620561-1"))
	require.NoError(t, p.ApplyOutcome(ClassifyResultCode(ResultCodeSuccess), "TJ30ABCXYZ", time.Now()))

	require.NoError(t, p.MarkSideEffectsDone())
	assert.True(t, p.SideEffectsDone())

	t.Run("second call reports already done", func(t *testing.T) {
		assert.ErrorIs(t, p.MarkSideEffectsDone(), ErrAlreadyProcessed)
	})
}

func TestPaymentMarkTimeout(t *testing.T) {
	p := newTestPayment(t)
	require.NoError(t, p.MarkProcessing("ws_CO_01092026", "29115-34620561-1"))

	require.NoError(t, p.MarkTimeout())
	assert.Equal(t, Timeout, p.Status())
	assert.NotEmpty(t, p.FailureReason())
}

func TestPaymentMarkFailedBeforeProcessing(t *testing.T) {
	p := newTestPayment(t)

	require.NoError(t, p.MarkFailed("gateway rejected the push request"))
	assert.Equal(t, Failed, p.Status())
	assert.Equal(t, "gateway rejected the push request", p.FailureReason())
}

func TestRestorePayment(t *testing.T) {
	paidAt := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	p, err := RestorePayment(
		kernel.NewUUID(), kernel.NewUUID(),
		mustMoney(t, "395.00"), mustPhone(t, "0712345678"), MethodMpesa,
		Paid,
		"ws_CO_01092026", "29115-34620561-1",
		"TJ30ABCXYZ", &paidAt,
		"", false, true,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	assert.Equal(t, Paid, p.Status())
	assert.True(t, p.SideEffectsDone())
}

func TestRestorePaymentRejectsInconsistentRows(t *testing.T) {
	paidAt := time.Now().UTC()

	t.Run("receipt without paid status", func(t *testing.T) {
		_, err := RestorePayment(
			kernel.NewUUID(), kernel.NewUUID(),
			mustMoney(t, "395.00"), mustPhone(t, "0712345678"), MethodMpesa,
			Processing,
			"ws_CO_01092026", "29115-34620561-1",
			"TJ30ABCXYZ", &paidAt,
			"", false, false,
			time.Now().UTC(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("paid without receipt or paid-at", func(t *testing.T) {
		_, err := RestorePayment(
			kernel.NewUUID(), kernel.NewUUID(),
			mustMoney(t, "395.00"), mustPhone(t, "0712345678"), MethodMpesa,
			Paid,
			"ws_CO_01092026", "29115-34620561-1",
			"", nil,
			"", false, false,
			time.Now().UTC(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("poll-confirmed row restores without receipt", func(t *testing.T) {
		p, err := RestorePayment(
			kernel.NewUUID(), kernel.NewUUID(),
			mustMoney(t, "395.00"), mustPhone(t, "0712345678"), MethodMpesa,
			Paid,
			"ws_CO_01092026", "29115-34620561-1",
			"", &paidAt,
			"", true, false,
			time.Now().UTC(),
		)
		require.NoError(t, err)
		assert.Empty(t, p.ReceiptNumber())
		assert.True(t, p.ReviewRequired())
	})

	t.Run("side effects on unpaid payment", func(t *testing.T) {
		_, err := RestorePayment(
			kernel.NewUUID(), kernel.NewUUID(),
			mustMoney(t, "395.00"), mustPhone(t, "0712345678"), MethodMpesa,
			Failed,
			"ws_CO_01092026", "29115-34620561-1",
			"", nil,
			"wrong PIN entered", false, true,
			time.Now().UTC(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPaymentValidateZeroValue(t *testing.T) {
	var p Payment
	assert.ErrorIs(t, p.Validate(), ErrPaymentIsNotConstructed)

	var nilPayment *Payment
	assert.ErrorIs(t, nilPayment.Validate(), ErrPaymentIsNotConstructed)
}
