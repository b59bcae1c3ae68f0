package models

import (
	"fmt"
	"strings"
)

// Rarity is the ordinal weapon grade of a skin.
type Rarity int

const (
	RarityUnknown    Rarity = 0
	RarityConsumer   Rarity = 1
	RarityIndustrial Rarity = 2
	RarityMilSpec    Rarity = 3
	RarityRestricted Rarity = 4
	RarityClassified Rarity = 5
	RarityCovert     Rarity = 6
	RarityContraband Rarity = 7
)

// MaxTradeableRarity is the highest grade accepted as trade-up input.
const MaxTradeableRarity = RarityClassified

var rarityNames = map[Rarity]string{
	RarityConsumer:   "Consumer Grade",
	RarityIndustrial: "Industrial Grade",
	RarityMilSpec:    "Mil-Spec Grade",
	RarityRestricted: "Restricted",
	RarityClassified: "Classified",
	RarityCovert:     "Covert",
	RarityContraband: "Contraband",
}

// rarityAliases maps every spelling seen in catalog dumps to a grade.
// Keys are lower-cased.
var rarityAliases = map[string]Rarity{
	"common_weapon":    RarityConsumer,
	"uncommon_weapon":  RarityIndustrial,
	"rare_weapon":      RarityMilSpec,
	"mythical_weapon":  RarityRestricted,
	"legendary_weapon": RarityClassified,
	"ancient_weapon":   RarityCovert,
	"contraband":       RarityContraband,
	"immortal_weapon":  RarityContraband,

	"consumer":         RarityConsumer,
	"consumer grade":   RarityConsumer,
	"industrial":       RarityIndustrial,
	"industrial grade": RarityIndustrial,
	"mil-spec":         RarityMilSpec,
	"mil-spec grade":   RarityMilSpec,
	"milspec":          RarityMilSpec,
	"restricted":       RarityRestricted,
	"classified":       RarityClassified,
	"covert":           RarityCovert,

	"消费级": RarityConsumer,
	"工业级": RarityIndustrial,
	"军规级": RarityMilSpec,
	"受限":  RarityRestricted,
	"受限级": RarityRestricted,
	"保密":  RarityClassified,
	"保密级": RarityClassified,
	"隐秘":  RarityCovert,
	"隐秘级": RarityCovert,
	"违禁":  RarityContraband,
	"传说级": RarityContraband,
}

// ParseRarity resolves a catalog rarity label.
func ParseRarity(s string) (Rarity, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if r, ok := rarityAliases[key]; ok {
		return r, nil
	}
	return RarityUnknown, fmt.Errorf("unknown rarity %q", s)
}

// Valid reports whether r is one of the defined grades.
func (r Rarity) Valid() bool {
	return r >= RarityConsumer && r <= RarityContraband
}

// Successor returns the next grade up. Contraband has none.
func (r Rarity) Successor() (Rarity, bool) {
	if !r.Valid() || r == RarityContraband {
		return RarityUnknown, false
	}
	return r + 1, true
}

// Tradeable reports whether items of this grade may enter a trade-up.
func (r Rarity) Tradeable() bool {
	return r >= RarityConsumer && r <= MaxTradeableRarity
}

func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText encodes the grade by its canonical name.
func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts any spelling known to ParseRarity.
func (r *Rarity) UnmarshalText(b []byte) error {
	parsed, err := ParseRarity(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
