package tradeup

import (
	"testing"

	"github.com/mswatii/cs2-tradeup/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probabilitySum(outcomes []Outcome) float64 {
	var sum float64
	for _, o := range outcomes {
		sum += o.Probability
	}
	return sum
}

func outcomeIDs(outcomes []Outcome) []string {
	ids := make([]string, len(outcomes))
	for i, o := range outcomes {
		ids[i] = o.Item.ID
	}
	return ids
}

func TestResolve_SingleCollectionSplitsEvenly(t *testing.T) {
	catalog := testCatalog()
	sel := selectionOf(t, findItem(t, catalog, "a-ms-1"), Capacity)

	outcomes, err := Resolve(sel, catalog)
	require.NoError(t, err)

	assert.Equal(t, []string{"a-r-1", "a-r-2", "a-r-3"}, outcomeIDs(outcomes))
	for _, o := range outcomes {
		assert.Equal(t, 1.0/3.0, o.Probability)
	}
	assert.InDelta(t, 1.0, probabilitySum(outcomes), 1e-9)
}

func TestResolve_MixedCollections(t *testing.T) {
	catalog := testCatalog()
	sel := fillSelection(t,
		part{findItem(t, catalog, "a-ms-1"), 3},
		part{findItem(t, catalog, "a-ms-2"), 2},
		part{findItem(t, catalog, "b-ms-1"), 3},
		part{findItem(t, catalog, "g-ms-1"), 2},
	)

	outcomes, err := Resolve(sel, catalog)
	require.NoError(t, err)

	// W = 5*3 (alpha) + 3*1 (beta) + 2*0 (gamma) = 18
	want := map[string]float64{
		"a-r-1": 5.0 / 18.0,
		"a-r-2": 5.0 / 18.0,
		"a-r-3": 5.0 / 18.0,
		"b-r-1": 3.0 / 18.0,
	}
	assert.Equal(t, []string{"a-r-1", "a-r-2", "b-r-1", "a-r-3"}, outcomeIDs(outcomes))
	for _, o := range outcomes {
		assert.InDelta(t, want[o.Item.ID], o.Probability, 1e-12, o.Item.ID)
	}
	assert.InDelta(t, 1.0, probabilitySum(outcomes), 1e-9)

	var alphaShare float64
	for _, o := range outcomes {
		if o.Item.CollectionID == "alpha" {
			alphaShare += o.Probability
		}
	}
	assert.InDelta(t, 15.0/18.0, alphaShare, 1e-12)
}

func TestResolve_DarkGoldOnlyReachesDarkGold(t *testing.T) {
	catalog := testCatalog()
	sel := selectionOf(t, findItem(t, catalog, "a-ms-dg"), Capacity)

	outcomes, err := Resolve(sel, catalog)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "a-r-dg", outcomes[0].Item.ID)
	assert.Equal(t, 1.0, outcomes[0].Probability)
}

func TestResolve_TopTradeableGrade(t *testing.T) {
	catalog := testCatalog()
	sel := selectionOf(t, findItem(t, catalog, "a-cl-1"), Capacity)

	outcomes, err := Resolve(sel, catalog)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "a-cv-1", outcomes[0].Item.ID)
	assert.Equal(t, models.RarityCovert, outcomes[0].Item.Rarity)
}

func TestResolve_Failures(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name    string
		sel     func(t *testing.T) *Selection
		wantErr error
	}{
		{"empty", func(t *testing.T) *Selection { return NewSelection() }, ErrIncompleteSelection},
		{"nine items", func(t *testing.T) *Selection {
			return selectionOf(t, findItem(t, catalog, "a-ms-1"), 9)
		}, ErrIncompleteSelection},
		{"nine covert items", func(t *testing.T) *Selection {
			return selectionOf(t, findItem(t, catalog, "a-cv-1"), 9)
		}, ErrIncompleteSelection},
		{"covert inputs", func(t *testing.T) *Selection {
			return selectionOf(t, findItem(t, catalog, "a-cv-1"), Capacity)
		}, ErrMaxRarityReached},
		{"contraband inputs", func(t *testing.T) *Selection {
			return selectionOf(t, findItem(t, catalog, "a-cb-1"), Capacity)
		}, ErrMaxRarityReached},
		{"collection without next grade", func(t *testing.T) *Selection {
			return selectionOf(t, findItem(t, catalog, "g-ms-1"), Capacity)
		}, ErrNoReachableOutcome},
		{"restricted without classified outside alpha", func(t *testing.T) *Selection {
			return selectionOf(t, findItem(t, catalog, "b-r-1"), Capacity)
		}, ErrNoReachableOutcome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcomes, err := Resolve(tt.sel(t), catalog)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, outcomes)
		})
	}
}

func TestResolve_WearIsInputMean(t *testing.T) {
	catalog := testCatalog()

	t.Run("all unset", func(t *testing.T) {
		sel := selectionOf(t, findItem(t, catalog, "a-ms-1"), Capacity)
		outcomes, err := Resolve(sel, catalog)
		require.NoError(t, err)
		for _, o := range outcomes {
			assert.Equal(t, 0.15, o.Wear)
		}
	})

	t.Run("one set", func(t *testing.T) {
		sel := selectionOf(t, findItem(t, catalog, "a-ms-1"), Capacity)
		require.NoError(t, sel.SetWear(4, 0.30))
		outcomes, err := Resolve(sel, catalog)
		require.NoError(t, err)
		for _, o := range outcomes {
			assert.InDelta(t, 0.165, o.Wear, 1e-12)
			assert.Equal(t, outcomes[0].Wear, o.Wear)
		}
	})

	t.Run("wear is not rescaled into the outcome range", func(t *testing.T) {
		sel := selectionOf(t, findItem(t, catalog, "a-ms-1"), Capacity)
		for i := 0; i < Capacity; i++ {
			require.NoError(t, sel.SetWear(i, 1))
		}
		outcomes, err := Resolve(sel, catalog)
		require.NoError(t, err)
		assert.Equal(t, 1.0, outcomes[0].Wear)
		assert.Equal(t, 0.8, outcomes[0].Item.Wear.Max)
	})
}

func TestResolve_Idempotent(t *testing.T) {
	catalog := testCatalog()
	sel := fillSelection(t,
		part{findItem(t, catalog, "a-ms-1"), 4},
		part{findItem(t, catalog, "b-ms-1"), 6},
	)
	require.NoError(t, sel.SetWear(2, 0.42))
	before := sel.Entries()

	first, err := Resolve(sel, catalog)
	require.NoError(t, err)
	second, err := Resolve(sel, catalog)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, sel.Entries())
}

func TestMeanWear(t *testing.T) {
	assert.Equal(t, DefaultWear, MeanWear(nil))

	w := 0.3
	entries := []Entry{{Wear: &w}, {}}
	assert.InDelta(t, 0.225, MeanWear(entries), 1e-15)
}
