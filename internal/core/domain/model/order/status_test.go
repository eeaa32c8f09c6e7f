package order

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
		"pending":        {input: "PENDING", want: Pending},
		"assigned":       {input: "ASSIGNED", want: Assigned},
		"picked up":      {input: "PICKED_UP", want: PickedUp},
		"in transit":     {input: "IN_TRANSIT", want: InTransit},
		"delivered":      {input: "DELIVERED", want: Delivered},
		"cancelled":      {input: "CANCELLED", want: Cancelled},
		"unknown":        {input: "UNKNOWN", wantErr: true},
		"lower case":     {input: "pending", wantErr: true},
		"empty":          {input: "", wantErr: true},
		"garbage":        {input: "SHIPPED", wantErr: true},
		"extra spacing":  {input: " PENDING", wantErr: true},
		"partial status": {input: "PICKED", wantErr: true},
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

func TestStatusString(t *testing.T) {
	assert.Equal(t, "PENDING", Pending.String())
	assert.Equal(t, "IN_TRANSIT", InTransit.String())
	assert.Equal(t, "UNKNOWN", Unknown.String())
	assert.Equal(t, "UNKNOWN", Status(42).String())
}

func TestStatusTransitionTo(t *testing.T) {
	all := []Status{Pending, Assigned, PickedUp, InTransit, Delivered, Cancelled}

	allowed := map[Status][]Status{
		Pending:   {Assigned, Cancelled},
		Assigned:  {PickedUp, Cancelled},
		PickedUp:  {InTransit, Cancelled},
		InTransit: {Delivered},
		Delivered: {},
		Cancelled: {},
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
				assert.Equal(t, Unknown, got)
			})
		}
	}
}

func TestStatusTransitionToSelfIsRejected(t *testing.T) {
	for _, s := range []Status{Pending, Assigned, PickedUp, InTransit, Delivered, Cancelled} {
		t.Run(s.String(), func(t *testing.T) {
			_, err := s.TransitionTo(s)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		})
	}
}

func TestStatusTransitionToInvalidValues(t *testing.T) {
	_, err := Unknown.TransitionTo(Pending)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = Pending.TransitionTo(Unknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = Pending.TransitionTo(Status(99))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, Delivered.IsTerminal())
	assert.True(t, Cancelled.IsTerminal())
	assert.False(t, Pending.IsTerminal())
	assert.False(t, Assigned.IsTerminal())
	assert.False(t, PickedUp.IsTerminal())
	assert.False(t, InTransit.IsTerminal())
}

func TestStatusValidateCanHaveCourier(t *testing.T) {
	tests := map[string]struct {
		status     Status
		hasCourier bool
		wantErr    bool
	}{
		"pending without courier":    {status: Pending, hasCourier: false},
		"pending with courier":       {status: Pending, hasCourier: true, wantErr: true},
		"assigned with courier":      {status: Assigned, hasCourier: true},
		"assigned without courier":   {status: Assigned, hasCourier: false, wantErr: true},
		"in transit with courier":    {status: InTransit, hasCourier: true},
		"delivered with courier":     {status: Delivered, hasCourier: true},
		"delivered without courier":  {status: Delivered, hasCourier: false, wantErr: true},
		"cancelled without courier":  {status: Cancelled, hasCourier: false},
		"cancelled with courier":     {status: Cancelled, hasCourier: true, wantErr: true},
		"picked up without courier":  {status: PickedUp, hasCourier: false, wantErr: true},
		"picked up with courier":     {status: PickedUp, hasCourier: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := tc.status.ValidateCanHaveCourier(tc.hasCourier)
			if tc.wantErr {
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}
