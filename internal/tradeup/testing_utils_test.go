package tradeup

import (
	"testing"

	"github.com/mswatii/cs2-tradeup/internal/models"
	"github.com/stretchr/testify/require"
)

func testItem(id, collection string, r models.Rarity, v models.Variant) models.Item {
	return models.Item{
		ID:           id,
		Rarity:       r,
		Variant:      v,
		CollectionID: collection,
		Wear:         models.WearRange{Min: 0, Max: 0.8},
		WeaponLabel:  "AK-47",
		DisplayName:  "AK-47 | " + id,
	}
}

// testCatalog:
//
//	alpha: 2 Mil-Spec, 1 dark-gold Mil-Spec, 3 Restricted, 1 dark-gold Restricted, 1 Classified, 1 Covert
//	beta:  1 Mil-Spec, 1 Restricted
//	gamma: 1 Mil-Spec, nothing above it
func testCatalog() []models.Item {
	n, dg := models.VariantNormal, models.VariantDarkGold
	return []models.Item{
		testItem("a-ms-1", "alpha", models.RarityMilSpec, n),
		testItem("a-ms-2", "alpha", models.RarityMilSpec, n),
		testItem("a-ms-dg", "alpha", models.RarityMilSpec, dg),
		testItem("a-r-1", "alpha", models.RarityRestricted, n),
		testItem("b-ms-1", "beta", models.RarityMilSpec, n),
		testItem("a-r-2", "alpha", models.RarityRestricted, n),
		testItem("a-r-dg", "alpha", models.RarityRestricted, dg),
		testItem("b-r-1", "beta", models.RarityRestricted, n),
		testItem("a-r-3", "alpha", models.RarityRestricted, n),
		testItem("g-ms-1", "gamma", models.RarityMilSpec, n),
		testItem("a-cl-1", "alpha", models.RarityClassified, n),
		testItem("a-cv-1", "alpha", models.RarityCovert, n),
		testItem("a-cb-1", "alpha", models.RarityContraband, n),
	}
}

func findItem(t *testing.T, catalog []models.Item, id string) models.Item {
	t.Helper()
	for _, it := range catalog {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("item %s not in catalog", id)
	return models.Item{}
}

type part struct {
	item models.Item
	n    int
}

// fillSelection adds each part's item n times, in order.
func fillSelection(t *testing.T, parts ...part) *Selection {
	t.Helper()
	sel := NewSelection()
	for _, p := range parts {
		for i := 0; i < p.n; i++ {
			_, err := sel.Add(p.item)
			require.NoError(t, err)
		}
	}
	return sel
}

func selectionOf(t *testing.T, item models.Item, n int) *Selection {
	t.Helper()
	return fillSelection(t, part{item, n})
}
