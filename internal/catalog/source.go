package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mswatii/cs2-tradeup/internal/models"
)

// Source produces a fresh catalog snapshot.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*Catalog, error)

func (f SourceFunc) Load(ctx context.Context) (*Catalog, error) { return f(ctx) }

// FileSource loads the catalog from the dumps listed in a manifest.
type FileSource struct {
	ManifestPath string
}

// NewFileSource creates a source for the given manifest path.
func NewFileSource(manifestPath string) *FileSource {
	return &FileSource{ManifestPath: manifestPath}
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*Catalog, error) {
	cat, _, err := s.LoadWithReport(ctx)
	return cat, err
}

// LoadWithReport loads the catalog and returns what was skipped.
// The first occurrence of a duplicated item id wins.
func (s *FileSource) LoadWithReport(ctx context.Context) (*Catalog, LoadReport, error) {
	var report LoadReport

	m, err := LoadManifest(s.ManifestPath)
	if err != nil {
		return nil, report, err
	}

	var (
		items       []models.Item
		collections []models.Collection
		seenItem    = make(map[string]bool)
		seenColl    = make(map[string]bool)
	)
	for _, d := range m.Datasets {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}
		path := m.resolve(d.Path)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, report, fmt.Errorf("read dataset %s: %w", path, err)
		}
		details, err := DecodeContainerDetails(data)
		if err != nil {
			return nil, report, fmt.Errorf("dataset %s: %w", path, err)
		}

		dsItems, dsColls, dsReport := Normalize(details, d.Kind)
		report.Merge(dsReport)
		for _, coll := range dsColls {
			if !seenColl[coll.ID] {
				seenColl[coll.ID] = true
				collections = append(collections, coll)
			}
		}
		for _, item := range dsItems {
			if seenItem[item.ID] {
				report.Items--
				report.skip("%s: duplicate item %q", path, item.ID)
				continue
			}
			seenItem[item.ID] = true
			items = append(items, item)
		}
		slog.Debug("Loaded dataset", "path", path, "kind", d.Kind, "items", len(dsItems))
	}

	cat, err := New(items, collections)
	if err != nil {
		return nil, report, err
	}
	return cat, report, nil
}
