package catalog

import (
	"fmt"
	"strings"

	"github.com/mswatii/cs2-tradeup/internal/models"
)

// Catalog is an immutable snapshot of every item available to the simulator.
// Item order is the load order and stays stable across calls.
type Catalog struct {
	items       []models.Item
	byID        map[string]int
	collections []models.Collection
	collByID    map[string]int
}

// Filter narrows TradeableInputs. Zero fields match everything.
type Filter struct {
	Rarity       *models.Rarity
	Variant      *models.Variant
	CollectionID string
	Kind         models.CollectionKind
	Category     string
	Query        string // case-insensitive substring of display name or weapon label
}

// New builds a catalog. Item ids must be unique, rarities valid and wear
// ranges well formed. Collections referenced by items but not listed are
// added with their id as name.
func New(items []models.Item, collections []models.Collection) (*Catalog, error) {
	c := &Catalog{
		items:    make([]models.Item, 0, len(items)),
		byID:     make(map[string]int, len(items)),
		collByID: make(map[string]int, len(collections)),
	}

	for _, coll := range collections {
		if coll.ID == "" {
			return nil, fmt.Errorf("collection with empty id")
		}
		if _, dup := c.collByID[coll.ID]; dup {
			return nil, fmt.Errorf("duplicate collection %q", coll.ID)
		}
		c.collByID[coll.ID] = len(c.collections)
		c.collections = append(c.collections, coll)
	}

	for _, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("item with empty id in collection %q", item.CollectionID)
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate item %q", item.ID)
		}
		if !item.Rarity.Valid() {
			return nil, fmt.Errorf("item %q has invalid rarity %d", item.ID, item.Rarity)
		}
		if item.CollectionID == "" {
			return nil, fmt.Errorf("item %q has no collection", item.ID)
		}
		if err := item.Wear.Validate(); err != nil {
			return nil, fmt.Errorf("item %q: %w", item.ID, err)
		}
		if _, ok := c.collByID[item.CollectionID]; !ok {
			c.collByID[item.CollectionID] = len(c.collections)
			c.collections = append(c.collections, models.Collection{ID: item.CollectionID, Name: item.CollectionID})
		}
		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	return c, nil
}

// Empty returns a catalog with no items.
func Empty() *Catalog {
	c, _ := New(nil, nil)
	return c
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []models.Item {
	return append([]models.Item(nil), c.items...)
}

// Get looks up an item by id.
func (c *Catalog) Get(id string) (models.Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Item{}, false
	}
	return c.items[i], true
}

// Collections returns a copy of all collections in load order.
func (c *Catalog) Collections() []models.Collection {
	return append([]models.Collection(nil), c.collections...)
}

// Collection looks up a collection by id.
func (c *Catalog) Collection(id string) (models.Collection, bool) {
	i, ok := c.collByID[id]
	if !ok {
		return models.Collection{}, false
	}
	return c.collections[i], true
}

// TradeableInputs lists items that may be offered as trade-up inputs.
// Covert and Contraband items are never returned.
func (c *Catalog) TradeableInputs(f Filter) []models.Item {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	var out []models.Item
	for _, item := range c.items {
		if !item.Rarity.Tradeable() {
			continue
		}
		if f.Rarity != nil && item.Rarity != *f.Rarity {
			continue
		}
		if f.Variant != nil && item.Variant != *f.Variant {
			continue
		}
		if f.CollectionID != "" && item.CollectionID != f.CollectionID {
			continue
		}
		if f.Kind != "" && c.collections[c.collByID[item.CollectionID]].Kind != f.Kind {
			continue
		}
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.DisplayName), query) &&
			!strings.Contains(strings.ToLower(item.WeaponLabel), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}
