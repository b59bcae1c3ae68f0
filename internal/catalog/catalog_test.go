package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mswatii/cs2-tradeup/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = "testdata/manifest.yaml"

func itemIDs(items []models.Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestFileSource_LoadWithReport(t *testing.T) {
	cat, report, err := NewFileSource(testManifest).LoadWithReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"101", "102", "103", "201", "202"}, itemIDs(cat.Items()))
	assert.Equal(t, 3, report.Containers)
	assert.Equal(t, 5, report.Items)
	assert.Equal(t, 2, report.Skipped)
	assert.Len(t, report.Problems, 2)

	usp, ok := cat.Get("101")
	require.True(t, ok)
	assert.Equal(t, models.RarityCovert, usp.Rarity)
	assert.Equal(t, models.VariantNormal, usp.Variant)
	assert.Equal(t, "set_community_31", usp.CollectionID)
	assert.Equal(t, "USP-S", usp.WeaponLabel)
	assert.Equal(t, "手枪", usp.Category)
	assert.Equal(t, "USP-S | Printstream", usp.DisplayName)

	glock, ok := cat.Get("103")
	require.True(t, ok)
	assert.Equal(t, models.FullWearRange, glock.Wear)

	panthera, ok := cat.Get("202")
	require.True(t, ok)
	assert.Equal(t, models.VariantDarkGold, panthera.Variant)
	assert.Equal(t, models.RarityRestricted, panthera.Rarity)
	assert.Equal(t, models.WearRange{Min: 0.05, Max: 0.7}, panthera.Wear)

	colls := cat.Collections()
	require.Len(t, colls, 2)
	assert.Equal(t, models.Collection{ID: "set_community_31", Name: "Recoil Case", Kind: models.KindWeaponCase}, colls[0])
	assert.Equal(t, models.Collection{ID: "set_op10_ancient", Name: "The Ancient Collection", Kind: models.KindItemSet}, colls[1])
}

func TestFileSource_MissingDataset(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("datasets:\n  - path: nope.json\n    kind: weaponcase\n"), 0o644))

	_, err := NewFileSource(manifest).Load(context.Background())
	assert.Error(t, err)
}

func TestLoadManifest_Validation(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("datasets:\n  - path: ''\n    kind: crate\n"), 0o644))

	_, err := LoadManifest(manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datasets[0].path is required")
	assert.Contains(t, err.Error(), "datasets[0].kind must be one of")

	m, err := LoadManifest(testManifest)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "weapon_case_details.json"),
		filepath.Join("testdata", "map_collection_details.json"),
	}, m.Paths())
}

func TestDecodeContainerDetails_Rejects(t *testing.T) {
	_, err := DecodeContainerDetails([]byte("   "))
	assert.Error(t, err)
	_, err = DecodeContainerDetails([]byte(`[{"code": 1}]`))
	assert.Error(t, err)
	_, err = DecodeContainerDetails([]byte(`{"0": "x"}`))
	assert.Error(t, err)
}

func TestNew_Validation(t *testing.T) {
	good := models.Item{ID: "a", Rarity: models.RarityMilSpec, CollectionID: "c", Wear: models.FullWearRange}

	tests := []struct {
		name  string
		items []models.Item
	}{
		{"duplicate", []models.Item{good, good}},
		{"empty id", []models.Item{{Rarity: models.RarityMilSpec, CollectionID: "c", Wear: models.FullWearRange}}},
		{"bad rarity", []models.Item{{ID: "a", CollectionID: "c", Wear: models.FullWearRange}}},
		{"no collection", []models.Item{{ID: "a", Rarity: models.RarityMilSpec, Wear: models.FullWearRange}}},
		{"bad wear", []models.Item{{ID: "a", Rarity: models.RarityMilSpec, CollectionID: "c"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.items, nil)
			assert.Error(t, err)
		})
	}

	cat, err := New([]models.Item{good}, nil)
	require.NoError(t, err)
	coll, ok := cat.Collection("c")
	require.True(t, ok)
	assert.Equal(t, "c", coll.Name)
}

func TestCatalog_TradeableInputs(t *testing.T) {
	cat, err := NewFileSource(testManifest).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"102", "103", "201", "202"}, itemIDs(cat.TradeableInputs(Filter{})))

	milSpec := models.RarityMilSpec
	assert.Equal(t, []string{"103", "201"}, itemIDs(cat.TradeableInputs(Filter{Rarity: &milSpec})))

	darkGold := models.VariantDarkGold
	assert.Equal(t, []string{"202"}, itemIDs(cat.TradeableInputs(Filter{Variant: &darkGold})))

	assert.Equal(t, []string{"102", "103"}, itemIDs(cat.TradeableInputs(Filter{CollectionID: "set_community_31"})))

	assert.Equal(t, []string{"201", "202"}, itemIDs(cat.TradeableInputs(Filter{Kind: models.KindItemSet})))
	assert.Equal(t, []string{"102"}, itemIDs(cat.TradeableInputs(Filter{Category: "步枪"})))
	assert.Equal(t, []string{"102", "202"}, itemIDs(cat.TradeableInputs(Filter{Query: " ak-47"})))
	assert.Equal(t, []string{"103"}, itemIDs(cat.TradeableInputs(Filter{Query: "winter"})))

	covert := models.RarityCovert
	assert.Empty(t, cat.TradeableInputs(Filter{Rarity: &covert}))
}

func TestStore_ReloadKeepsPreviousOnFailure(t *testing.T) {
	good, err := New([]models.Item{{ID: "a", Rarity: models.RarityMilSpec, CollectionID: "c", Wear: models.FullWearRange}}, nil)
	require.NoError(t, err)

	fail := false
	store := NewStore(SourceFunc(func(ctx context.Context) (*Catalog, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return good, nil
	}))
	assert.Equal(t, 0, store.Current().Len())
	assert.True(t, store.LoadedAt().IsZero())

	_, err = store.Reload(context.Background())
	require.NoError(t, err)
	assert.Same(t, good, store.Current())
	loadedAt := store.LoadedAt()
	assert.False(t, loadedAt.IsZero())

	fail = true
	_, err = store.Reload(context.Background())
	assert.Error(t, err)
	assert.Same(t, good, store.Current())
	assert.Equal(t, loadedAt, store.LoadedAt())
}

func TestFileWatcher_DetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 4)
	w := NewFileWatcher([]string{path, filepath.Join(dir, "missing.json")}, 10*time.Millisecond, func(p string) { changed <- p })
	go w.Run(ctx)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	select {
	case p := <-changed:
		assert.Equal(t, path, p)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the change")
	}
}

func TestFileWatcher_StopsWithContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	w := NewFileWatcher([]string{path}, 5*time.Millisecond, func(string) {})
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher kept running after cancel")
	}
}
