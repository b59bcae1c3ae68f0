package models

import (
	"fmt"
	"strings"
)

// Variant distinguishes regular skins from the dark-gold ("unusual") line.
type Variant int

const (
	VariantNormal Variant = iota
	VariantDarkGold
)

// unusualQuality is the buff quality tag of dark-gold items.
const unusualQuality = "unusual"

// VariantFromQuality maps a buff quality internal name to a Variant.
func VariantFromQuality(internalName string) Variant {
	if strings.EqualFold(strings.TrimSpace(internalName), unusualQuality) {
		return VariantDarkGold
	}
	return VariantNormal
}

// ParseVariant accepts "normal", "dark_gold"/"darkgold" or "unusual".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return VariantNormal, nil
	case "dark_gold", "darkgold", "dark-gold", unusualQuality:
		return VariantDarkGold, nil
	}
	return VariantNormal, fmt.Errorf("unknown variant %q", s)
}

func (v Variant) String() string {
	if v == VariantDarkGold {
		return "dark_gold"
	}
	return "normal"
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
