package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/mswatii/cs2-tradeup/internal/models"
)

const buffOK = "OK"

// ContainerDetail is one buff csgo_container response.
type ContainerDetail struct {
	Code string `json:"code"`
	Data *struct {
		Container *struct {
			Name string `json:"name"`
		} `json:"container"`
		Items []ContainerEntry `json:"items"`
	} `json:"data"`
}

// ContainerEntry is one skin listed in a container. Float bounds are
// merged in from the public skins dataset and may be missing.
type ContainerEntry struct {
	LocalizedName string   `json:"localized_name"`
	MinFloat      *float64 `json:"min_float"`
	MaxFloat      *float64 `json:"max_float"`
	Goods         *Goods   `json:"goods"`
}

// Goods is the buff goods record of a skin.
type Goods struct {
	ID        json.RawMessage `json:"id"`
	Name      string          `json:"name"`
	ShortName string          `json:"short_name"`
	IconURL   string          `json:"icon_url"`
	Tags      GoodsTags       `json:"tags"`
}

// Tag is a buff tag with its internal and display names.
type Tag struct {
	InternalName  string `json:"internal_name"`
	LocalizedName string `json:"localized_name"`
}

// GoodsTags are the tags the adapter reads.
type GoodsTags struct {
	Rarity        *Tag `json:"rarity"`
	Quality       *Tag `json:"quality"`
	Weapon        *Tag `json:"weapon"`
	WeaponCase    *Tag `json:"weaponcase"`
	ItemSet       *Tag `json:"itemset"`
	CategoryGroup *Tag `json:"category_group"`
}

// LoadReport counts what a normalization pass kept and dropped.
type LoadReport struct {
	Containers int      `json:"containers"`
	Items      int      `json:"items"`
	Skipped    int      `json:"skipped"`
	Problems   []string `json:"problems,omitempty"`
}

func (r *LoadReport) skip(format string, args ...any) {
	r.Skipped++
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// Merge adds other's counts into r.
func (r *LoadReport) Merge(other LoadReport) {
	r.Containers += other.Containers
	r.Items += other.Items
	r.Skipped += other.Skipped
	r.Problems = append(r.Problems, other.Problems...)
}

// DecodeContainerDetails accepts either a JSON array of responses or an
// object keyed by index, as written by the two generations of the dump tool.
func DecodeContainerDetails(data []byte) ([]ContainerDetail, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty container dump")
	}

	if trimmed[0] == '[' {
		var details []ContainerDetail
		if err := json.Unmarshal(trimmed, &details); err != nil {
			return nil, fmt.Errorf("failed to parse container dump: %w", err)
		}
		return details, nil
	}

	var keyed map[string]ContainerDetail
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return nil, fmt.Errorf("failed to parse container dump: %w", err)
	}
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	details := make([]ContainerDetail, 0, len(keyed))
	for _, k := range keys {
		details = append(details, keyed[k])
	}
	return details, nil
}

// Normalize converts container responses into catalog items and collections.
// Records that cannot be classified are skipped and listed in the report.
func Normalize(details []ContainerDetail, kind models.CollectionKind) ([]models.Item, []models.Collection, LoadReport) {
	var (
		report      LoadReport
		items       []models.Item
		collections []models.Collection
		seenColl    = make(map[string]bool)
	)

	for _, detail := range details {
		if detail.Code != buffOK || detail.Data == nil {
			continue
		}
		report.Containers++
		containerName := ""
		if detail.Data.Container != nil {
			containerName = detail.Data.Container.Name
		}

		for _, entry := range detail.Data.Items {
			item, coll, err := convertEntry(entry, kind, containerName)
			if err != nil {
				report.skip("%s: %v", containerName, err)
				continue
			}
			if !seenColl[coll.ID] {
				seenColl[coll.ID] = true
				collections = append(collections, coll)
			}
			items = append(items, item)
			report.Items++
		}
	}

	if report.Skipped > 0 {
		slog.Warn("Skipped catalog records", "kind", kind, "skipped", report.Skipped)
	}
	return items, collections, report
}

func convertEntry(entry ContainerEntry, kind models.CollectionKind, containerName string) (models.Item, models.Collection, error) {
	goods := entry.Goods
	if goods == nil {
		return models.Item{}, models.Collection{}, fmt.Errorf("entry %q has no goods", entry.LocalizedName)
	}
	name := goods.ShortName
	if name == "" {
		name = goods.Name
	}

	collTag := collectionTag(goods.Tags, kind)
	if collTag == nil || collTag.InternalName == "" {
		return models.Item{}, models.Collection{}, fmt.Errorf("%q has no collection", name)
	}
	if goods.Tags.Rarity == nil {
		return models.Item{}, models.Collection{}, fmt.Errorf("%q has no rarity", name)
	}
	rarity, err := models.ParseRarity(goods.Tags.Rarity.InternalName)
	if err != nil {
		rarity, err = models.ParseRarity(goods.Tags.Rarity.LocalizedName)
	}
	if err != nil {
		return models.Item{}, models.Collection{}, fmt.Errorf("%q: %w", name, err)
	}

	variant := models.VariantNormal
	if goods.Tags.Quality != nil {
		variant = models.VariantFromQuality(goods.Tags.Quality.InternalName)
	}

	wear := models.FullWearRange
	if entry.MinFloat != nil && entry.MaxFloat != nil {
		wear = models.WearRange{Min: *entry.MinFloat, Max: *entry.MaxFloat}
		if err := wear.Validate(); err != nil {
			return models.Item{}, models.Collection{}, fmt.Errorf("%q: %w", name, err)
		}
	}

	id := goodsID(goods.ID)
	if id == "" {
		id = collTag.InternalName + "/" + name
	}

	item := models.Item{
		ID:           id,
		Rarity:       rarity,
		Variant:      variant,
		CollectionID: collTag.InternalName,
		Wear:         wear,
		DisplayName:  name,
		ImageRef:     goods.IconURL,
	}
	if goods.Tags.Weapon != nil {
		item.WeaponLabel = goods.Tags.Weapon.LocalizedName
	}
	if goods.Tags.CategoryGroup != nil {
		item.Category = goods.Tags.CategoryGroup.LocalizedName
	}

	collName := containerName
	if collName == "" {
		collName = collTag.LocalizedName
	}
	if collName == "" {
		collName = collTag.InternalName
	}
	coll := models.Collection{ID: collTag.InternalName, Name: collName, Kind: kind}
	return item, coll, nil
}

func collectionTag(tags GoodsTags, kind models.CollectionKind) *Tag {
	primary, fallback := tags.WeaponCase, tags.ItemSet
	if kind == models.KindItemSet {
		primary, fallback = tags.ItemSet, tags.WeaponCase
	}
	if primary != nil && primary.InternalName != "" {
		return primary
	}
	return fallback
}

// goodsID accepts numeric or string ids.
func goodsID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	return strings.Trim(s, `"`)
}
