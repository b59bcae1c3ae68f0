package tradeup

import "errors"

// Error message constants, shared with tests and the API layer.
const (
	ErrMsgRarityMismatch      = "rarity mismatch"
	ErrMsgVariantMismatch     = "variant mismatch"
	ErrMsgCapacityExceeded    = "selection is full"
	ErrMsgOutOfRange          = "position out of range"
	ErrMsgIncompleteSelection = "incomplete selection"
	ErrMsgMaxRarityReached    = "max rarity reached"
	ErrMsgNoReachableOutcome  = "no reachable outcome"
	ErrMsgNoOutcomes          = "no outcomes to draw from"
	ErrMsgInvalidTrials       = "trials must be positive"
)

// Selection mutation failures. The selection is left unchanged.
var (
	ErrRarityMismatch   = errors.New(ErrMsgRarityMismatch)
	ErrVariantMismatch  = errors.New(ErrMsgVariantMismatch)
	ErrCapacityExceeded = errors.New(ErrMsgCapacityExceeded)
	ErrOutOfRange       = errors.New(ErrMsgOutOfRange)
)

// Resolution failures. No partial results are returned.
var (
	ErrIncompleteSelection = errors.New(ErrMsgIncompleteSelection)
	ErrMaxRarityReached    = errors.New(ErrMsgMaxRarityReached)
	ErrNoReachableOutcome  = errors.New(ErrMsgNoReachableOutcome)
)

// Simulation failures.
var (
	ErrNoOutcomes    = errors.New(ErrMsgNoOutcomes)
	ErrInvalidTrials = errors.New(ErrMsgInvalidTrials)
)
