package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparcel/internal/pkg/errs"
)

func TestStatusFromString(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    Status
		wantErr bool
	}{
		"pending":    {input: "PENDING", want: Pending},
		"processing": {input: "PROCESSING", want: Processing},
		"paid":       {input: "PAID", want: Paid},
		"failed":     {input: "FAILED", want: Failed},
		"cancelled":  {input: "CANCELLED", want: Cancelled},
		"timeout":    {input: "TIMEOUT", want: Timeout},
		"unknown":    {input: "UNKNOWN", wantErr: true},
		"lower case": {input: "paid", wantErr: true},
		"empty":      {input: "", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := StatusFromString(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStatusTransitionTo(t *testing.T) {
	all := []Status{Pending, Processing, Paid, Failed, Cancelled, Timeout}

	allowed := map[Status][]Status{
		Pending:    {Processing, Failed, Cancelled},
		Processing: {Paid, Failed, Cancelled, Timeout},
		Paid:       {},
		Failed:     {},
		Cancelled:  {},
		Timeout:    {},
	}

	for _, from := range all {
		for _, to := range all {
			from, to := from, to
			t.Run(from.String()+"_to_"+to.String(), func(t *testing.T) {
				got, err := from.TransitionTo(to)

				isAllowed := false
				for _, a := range allowed[from] {
					if a == to {
						isAllowed = true
					}
				}

				if isAllowed {
					require.NoError(t, err)
					assert.Equal(t, to, got)
					return
				}

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)
			})
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, Pending.IsTerminal())
	assert.False(t, Processing.IsTerminal())
	assert.True(t, Paid.IsTerminal())
	assert.True(t, Failed.IsTerminal())
	assert.True(t, Cancelled.IsTerminal())
	assert.True(t, Timeout.IsTerminal())
}

func TestClassifyResultCode(t *testing.T) {
	tests := map[string]struct {
		code       int
		wantStatus Status
		wantReview bool
	}{
		"success":              {code: 0, wantStatus: Paid},
		"insufficient balance": {code: 1, wantStatus: Failed},
		"cancelled by user":    {code: 1032, wantStatus: Cancelled},
		"timeout":              {code: 1037, wantStatus: Timeout},
		"wrong pin":            {code: 2001, wantStatus: Failed},
		"unknown code":         {code: 9999, wantStatus: Failed, wantReview: true},
		"negative code":        {code: -1, wantStatus: Failed, wantReview: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			outcome := ClassifyResultCode(tc.code)
			assert.Equal(t, tc.wantStatus, outcome.Status)
			assert.Equal(t, tc.wantReview, outcome.ReviewRequired)
			if tc.wantStatus != Paid {
				assert.NotEmpty(t, outcome.Reason)
			}
		})
	}
}
