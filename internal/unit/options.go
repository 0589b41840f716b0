package unit

// QuantityOption is one legal purchase quantity for a unit family,
// expressed in canonical units.
type QuantityOption struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Options returns the purchase quantity ladder for the unit family, in
// strictly increasing order. The first option is the default selection.
func Options(u NormalizedUnit) []QuantityOption {
	switch u.Family {
	case FamilyPiece:
		return []QuantityOption{
			{Label: "1 pc", Value: 1},
			{Label: "2 pc", Value: 2},
			{Label: "3 pc", Value: 3},
		}
	case FamilyDozen:
		return []QuantityOption{
			{Label: "1 dz", Value: 1},
			{Label: "2 dz", Value: 2},
			{Label: "3 dz", Value: 3},
		}
	default:
		return []QuantityOption{
			{Label: "250g", Value: 0.25},
			{Label: "500g", Value: 0.5},
			{Label: "1kg", Value: 1},
		}
	}
}

// Step is the minimum increment for +/- controls on a cart line. A line's
// quantity is never stepped below one Step.
func Step(u NormalizedUnit) float64 {
	if u.Family == FamilyKg {
		return 0.25
	}
	return 1
}

// ValidOption reports whether qty is one of the family's ladder values.
func ValidOption(u NormalizedUnit, qty float64) bool {
	for _, opt := range Options(u) {
		if opt.Value == qty {
			return true
		}
	}
	return false
}
