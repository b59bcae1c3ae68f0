package tradeup

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/mswatii/cs2-tradeup/internal/models"
)

const (
	// Capacity is the number of inputs a trade-up consumes.
	Capacity = 10
	// DefaultWear stands in for inputs whose wear was never set.
	DefaultWear = 0.15
)

// Entry is one slot of a Selection.
type Entry struct {
	ID   string      `json:"id" msgpack:"id"` // unique per slot, the same item may appear twice
	Item models.Item `json:"item" msgpack:"item"`
	Wear *float64    `json:"wear" msgpack:"wear"` // nil means unset
}

// EffectiveWear is the wear used by resolution.
func (e Entry) EffectiveWear() float64 {
	if e.Wear == nil {
		return DefaultWear
	}
	return *e.Wear
}

func (e Entry) clone() Entry {
	if e.Wear != nil {
		w := *e.Wear
		e.Wear = &w
	}
	return e
}

// Selection is the ordered group of items assembled for one trade-up.
// It is not safe for concurrent use; callers serialize access.
type Selection struct {
	entries []Entry
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{entries: make([]Entry, 0, Capacity)}
}

// Len returns the number of items in the selection.
func (s *Selection) Len() int {
	return len(s.entries)
}

// Full reports whether the selection holds Capacity items.
func (s *Selection) Full() bool {
	return len(s.entries) == Capacity
}

// Entries returns a copy of the slots in order.
func (s *Selection) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.clone()
	}
	return out
}

// At returns the slot at position.
func (s *Selection) At(position int) (Entry, error) {
	if err := s.checkPosition(position); err != nil {
		return Entry{}, err
	}
	return s.entries[position].clone(), nil
}

// IndexOf returns the position of the slot with the given entry ID, or -1.
func (s *Selection) IndexOf(entryID string) int {
	for i, e := range s.entries {
		if e.ID == entryID {
			return i
		}
	}
	return -1
}

// Add appends item with wear unset.
// The first member fixes the rarity and variant every later item must share.
func (s *Selection) Add(item models.Item) (Entry, error) {
	if len(s.entries) >= Capacity {
		return Entry{}, fmt.Errorf("%w: already holding %d items", ErrCapacityExceeded, Capacity)
	}
	if len(s.entries) > 0 {
		first := s.entries[0].Item
		if item.Rarity != first.Rarity {
			return Entry{}, fmt.Errorf("%w: selection is %s, item %s is %s",
				ErrRarityMismatch, first.Rarity, item.ID, item.Rarity)
		}
		if item.Variant != first.Variant {
			return Entry{}, fmt.Errorf("%w: selection is %s, item %s is %s",
				ErrVariantMismatch, first.Variant, item.ID, item.Variant)
		}
	}

	entry := Entry{ID: uuid.NewString(), Item: item}
	s.entries = append(s.entries, entry)
	return entry.clone(), nil
}

// Remove deletes the slot at position and returns it.
func (s *Selection) Remove(position int) (Entry, error) {
	if err := s.checkPosition(position); err != nil {
		return Entry{}, err
	}
	removed := s.entries[position]
	s.entries = append(s.entries[:position], s.entries[position+1:]...)
	return removed, nil
}

// SetWear stores the wear of the slot at position, clamped to [0,1].
// NaN marks the wear as unset.
func (s *Selection) SetWear(position int, value float64) error {
	if err := s.checkPosition(position); err != nil {
		return err
	}
	if math.IsNaN(value) {
		s.entries[position].Wear = nil
		return nil
	}
	w := math.Max(0, math.Min(1, value))
	s.entries[position].Wear = &w
	return nil
}

// Clear empties the selection, dropping all wear values.
func (s *Selection) Clear() {
	s.entries = s.entries[:0]
}

// Rarity returns the shared grade, false when empty.
func (s *Selection) Rarity() (models.Rarity, bool) {
	if len(s.entries) == 0 {
		return models.RarityUnknown, false
	}
	return s.entries[0].Item.Rarity, true
}

// Variant returns the shared variant, false when empty.
func (s *Selection) Variant() (models.Variant, bool) {
	if len(s.entries) == 0 {
		return models.VariantNormal, false
	}
	return s.entries[0].Item.Variant, true
}

func (s *Selection) checkPosition(position int) error {
	if position < 0 || position >= len(s.entries) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, position, len(s.entries))
	}
	return nil
}
