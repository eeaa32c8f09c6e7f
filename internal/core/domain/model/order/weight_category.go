package order

// WeightCategory is a display-and-reporting bucket derived from parcel weight.
// It never affects the price directly; weight feeds the price continuously
// through the pricing engine.
type WeightCategory string

const (
	// WeightSmall covers parcels under 5 kg.
	WeightSmall WeightCategory = "SMALL"
	// WeightMedium covers parcels of 5 kg up to (excluding) 20 kg.
	WeightMedium WeightCategory = "MEDIUM"
	// WeightLarge covers parcels of 20 kg up to (excluding) 50 kg.
	WeightLarge WeightCategory = "LARGE"
	// WeightXLarge covers parcels of 50 kg and above.
	WeightXLarge WeightCategory = "XLARGE"
)

// WeightCategoryFor buckets a weight in kilograms.
func WeightCategoryFor(weightKg float64) WeightCategory {
	switch {
	case weightKg < 5:
		return WeightSmall
	case weightKg < 20:
		return WeightMedium
	case weightKg < 50:
		return WeightLarge
	default:
		return WeightXLarge
	}
}
