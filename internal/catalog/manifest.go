package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mswatii/cs2-tradeup/internal/models"
)

// Dataset is one container dump listed in the manifest.
type Dataset struct {
	Path string                `yaml:"path"`
	Kind models.CollectionKind `yaml:"kind"` // weaponcase | itemset
}

// Manifest lists the dumps that make up the catalog, in load order.
type Manifest struct {
	Version  string    `yaml:"version"`
	Datasets []Dataset `yaml:"datasets"`

	baseDir string
}

// LoadManifest reads a YAML manifest. Relative dataset paths are resolved
// against the manifest's directory.
func LoadManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	m.baseDir = filepath.Dir(path)
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks the manifest is usable.
func (m Manifest) Validate() error {
	var errs []string
	if len(m.Datasets) == 0 {
		errs = append(errs, "datasets must not be empty")
	}
	for i, d := range m.Datasets {
		if strings.TrimSpace(d.Path) == "" {
			errs = append(errs, fmt.Sprintf("datasets[%d].path is required", i))
		}
		switch d.Kind {
		case models.KindWeaponCase, models.KindItemSet:
		default:
			errs = append(errs, fmt.Sprintf("datasets[%d].kind must be one of: weaponcase, itemset", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("manifest validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Paths returns the resolved dataset paths.
func (m Manifest) Paths() []string {
	out := make([]string, len(m.Datasets))
	for i, d := range m.Datasets {
		out[i] = m.resolve(d.Path)
	}
	return out
}

func (m Manifest) resolve(p string) string {
	if filepath.IsAbs(p) || m.baseDir == "" {
		return p
	}
	return filepath.Join(m.baseDir, p)
}
