package domain

import "fmt"

// Weight units accepted for display.
const (
	UnitKg = "kg"
	UnitLb = "lb"
)

const kgToLb = 2.2046226218

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == UnitKg && to == UnitLb {
		return v * kgToLb
	}
	if from == UnitLb && to == UnitKg {
		return v / kgToLb
	}
	return v
}

// ParseUnit validates a display unit, defaulting to kg when empty.
func ParseUnit(s string) (string, error) {
	switch s {
	case "":
		return UnitKg, nil
	case UnitKg, UnitLb:
		return s, nil
	}
	return "", &ValidationError{Field: "unit", Message: fmt.Sprintf("must be %q or %q", UnitKg, UnitLb)}
}
