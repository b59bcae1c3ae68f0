package tradeup

import (
	"fmt"

	"github.com/mswatii/cs2-tradeup/internal/models"
)

// Draw picks one outcome, weighted by probability.
func Draw(outcomes []Outcome, rng RandomSource) (Outcome, error) {
	if len(outcomes) == 0 {
		return Outcome{}, ErrNoOutcomes
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return outcomes[pick(outcomes, rng.Float64())], nil
}

// pick maps u in [0,1) onto the cumulative distribution. Rounding slack at
// the top end lands on the last outcome.
func pick(outcomes []Outcome, u float64) int {
	var acc float64
	for i, o := range outcomes {
		acc += o.Probability
		if u < acc {
			return i
		}
	}
	return len(outcomes) - 1
}

// OutcomeHits reports how often one outcome was drawn.
type OutcomeHits struct {
	Item        models.Item `json:"item" msgpack:"item"`
	Probability float64     `json:"probability" msgpack:"probability"`
	Hits        int         `json:"hits" msgpack:"hits"`
	Frequency   float64     `json:"frequency" msgpack:"frequency"`
}

// SimulationResult summarizes repeated draws over one outcome list.
type SimulationResult struct {
	Trials int           `json:"trials" msgpack:"trials"`
	Wear   float64       `json:"wear" msgpack:"wear"`
	Hits   []OutcomeHits `json:"hits" msgpack:"hits"` // same order as the outcomes
}

// Simulate draws trials times and tallies the results.
func Simulate(outcomes []Outcome, trials int, rng RandomSource) (SimulationResult, error) {
	if len(outcomes) == 0 {
		return SimulationResult{}, ErrNoOutcomes
	}
	if trials <= 0 {
		return SimulationResult{}, fmt.Errorf("%w: got %d", ErrInvalidTrials, trials)
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	counts := make([]int, len(outcomes))
	for i := 0; i < trials; i++ {
		counts[pick(outcomes, rng.Float64())]++
	}

	res := SimulationResult{
		Trials: trials,
		Wear:   outcomes[0].Wear,
		Hits:   make([]OutcomeHits, len(outcomes)),
	}
	for i, o := range outcomes {
		res.Hits[i] = OutcomeHits{
			Item:        o.Item,
			Probability: o.Probability,
			Hits:        counts[i],
			Frequency:   float64(counts[i]) / float64(trials),
		}
	}
	return res, nil
}
