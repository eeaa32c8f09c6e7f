package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparcel/internal/pkg/errs"
)

func TestNewParcel(t *testing.T) {
	tests := map[string]struct {
		weightKg    float64
		description string
		dimensions  string
		wantErr     error
	}{
		"valid minimal":           {weightKg: 1.5},
		"valid full":              {weightKg: 12, description: "Kitchen blender", dimensions: "30x20x15"},
		"decimal dimensions":      {weightKg: 3, dimensions: "30.5x20x15.25"},
		"max weight":              {weightKg: 100},
		"zero weight":             {weightKg: 0, wantErr: errs.ErrValueIsOutOfRange},
		"negative weight":         {weightKg: -2, wantErr: errs.ErrValueIsOutOfRange},
		"over max weight":         {weightKg: 100.1, wantErr: errs.ErrValueIsOutOfRange},
		"short description":       {weightKg: 1, description: "ab", wantErr: errs.ErrValueIsInvalid},
		"long description":        {weightKg: 1, description: strings.Repeat("x", 501), wantErr: errs.ErrValueIsInvalid},
		"bad dimensions format":   {weightKg: 1, dimensions: "30x20", wantErr: errs.ErrValueIsInvalid},
		"zero dimension side":     {weightKg: 1, dimensions: "0x20x15", wantErr: errs.ErrValueIsInvalid},
		"garbage dimensions":      {weightKg: 1, dimensions: "large box", wantErr: errs.ErrValueIsInvalid},
		"negative dimension side": {weightKg: 1, dimensions: "-30x20x15", wantErr: errs.ErrValueIsInvalid},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			parcel, err := NewParcel(tc.weightKg, tc.description, tc.dimensions, false, false, false)

			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Error(t, parcel.Validate())
				return
			}

			require.NoError(t, err)
			require.NoError(t, parcel.Validate())
			assert.Equal(t, tc.weightKg, parcel.WeightKg())
		})
	}
}

func TestNewParcelNormalizesOptionalFields(t *testing.T) {
	parcel, err := NewParcel(2, "  Fragile glassware  ", "30 x 20 X 15", true, true, false)
	require.NoError(t, err)

	assert.Equal(t, "Fragile glassware", parcel.Description())
	assert.Equal(t, "30x20x15", parcel.Dimensions())
	assert.True(t, parcel.Fragile())
	assert.True(t, parcel.InsuranceRequired())
	assert.False(t, parcel.Express())
}

func TestNewParcelAggregatesFieldErrors(t *testing.T) {
	_, err := NewParcel(-1, "ab", "not-dims", false, false, false)
	require.Error(t, err)

	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParcelWeightCategory(t *testing.T) {
	tests := map[string]struct {
		weightKg float64
		want     WeightCategory
	}{
		"small":            {weightKg: 1, want: WeightSmall},
		"small upper edge": {weightKg: 4.99, want: WeightSmall},
		"medium boundary":  {weightKg: 5, want: WeightMedium},
		"medium":           {weightKg: 19.99, want: WeightMedium},
		"large boundary":   {weightKg: 20, want: WeightLarge},
		"large":            {weightKg: 49.99, want: WeightLarge},
		"xlarge boundary":  {weightKg: 50, want: WeightXLarge},
		"xlarge":           {weightKg: 100, want: WeightXLarge},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeightCategoryFor(tc.weightKg))
		})
	}
}

func TestParcelValidateZeroValue(t *testing.T) {
	var parcel Parcel
	assert.ErrorIs(t, parcel.Validate(), ErrParcelIsNotConstructed)
}
