package tradeup

import (
	"fmt"

	"github.com/mswatii/cs2-tradeup/internal/models"
)

// Outcome is one skin a trade-up can produce.
type Outcome struct {
	Item        models.Item `json:"item" msgpack:"item"`
	Probability float64     `json:"probability" msgpack:"probability"`
	Wear        float64     `json:"wear" msgpack:"wear"` // mean input wear, not rescaled into Item.Wear
}

// Resolve computes the reachable outcomes of a full selection against catalog.
//
// Each input votes for its own collection. A collection c holding count(c)
// inputs and next(c) skins of the next grade receives count(c)*next(c)/W of
// the total, shared equally among its skins, where W sums count*next over
// the represented collections. Collections without next-grade skins carry no
// weight. Outcomes are returned in catalog order.
//
// Resolve is pure: it neither mutates sel nor catalog.
func Resolve(sel *Selection, catalog []models.Item) ([]Outcome, error) {
	if sel.Len() != Capacity {
		return nil, fmt.Errorf("%w: have %d of %d items", ErrIncompleteSelection, sel.Len(), Capacity)
	}

	tier, _ := sel.Rarity()
	variant, _ := sel.Variant()
	if !tier.Tradeable() {
		return nil, fmt.Errorf("%w: %s cannot be traded up", ErrMaxRarityReached, tier)
	}
	target, ok := tier.Successor()
	if !ok {
		return nil, fmt.Errorf("%w: %s has no successor", ErrMaxRarityReached, tier)
	}

	counts := make(map[string]int, Capacity)
	for _, e := range sel.entries {
		counts[e.Item.CollectionID]++
	}

	var candidates []models.Item
	nextTierCount := make(map[string]int, len(counts))
	for _, item := range catalog {
		if item.Rarity != target || item.Variant != variant {
			continue
		}
		if _, represented := counts[item.CollectionID]; !represented {
			continue
		}
		candidates = append(candidates, item)
		nextTierCount[item.CollectionID]++
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no %s %s skins in the selected collections",
			ErrNoReachableOutcome, variant, target)
	}

	var totalWeight int
	for c, n := range counts {
		totalWeight += n * nextTierCount[c]
	}
	if totalWeight == 0 {
		return nil, fmt.Errorf("%w: selected collections carry no weight", ErrNoReachableOutcome)
	}

	wear := MeanWear(sel.entries)
	outcomes := make([]Outcome, len(candidates))
	for i, item := range candidates {
		c := item.CollectionID
		collectionProbability := float64(counts[c]*nextTierCount[c]) / float64(totalWeight)
		outcomes[i] = Outcome{
			Item:        item,
			Probability: collectionProbability / float64(nextTierCount[c]),
			Wear:        wear,
		}
	}
	return outcomes, nil
}
