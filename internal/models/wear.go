package models

import "fmt"

// WearRange is the float interval a skin can drop in.
type WearRange struct {
	Min float64 `json:"min" msgpack:"min" db:"min_float"`
	Max float64 `json:"max" msgpack:"max" db:"max_float"`
}

// FullWearRange is used when a catalog record carries no float data.
var FullWearRange = WearRange{Min: 0, Max: 1}

// Validate checks 0 <= Min < Max <= 1.
func (r WearRange) Validate() error {
	if r.Min < 0 || r.Max > 1 || r.Min >= r.Max {
		return fmt.Errorf("invalid wear range [%v, %v]", r.Min, r.Max)
	}
	return nil
}

// Scale maps a normalized wear in [0,1] into this range.
func (r WearRange) Scale(w float64) float64 {
	return r.Min + w*(r.Max-r.Min)
}

// GetWearCategory returns the wear category based on a float value
func GetWearCategory(floatValue float64) string {
	switch {
	case floatValue >= 0 && floatValue < 0.07:
		return "Factory New"
	case floatValue >= 0.07 && floatValue < 0.15:
		return "Minimal Wear"
	case floatValue >= 0.15 && floatValue < 0.38:
		return "Field-Tested"
	case floatValue >= 0.38 && floatValue < 0.45:
		return "Well-Worn"
	case floatValue >= 0.45 && floatValue <= 1.0:
		return "Battle-Scarred"
	default:
		return "Unknown"
	}
}
