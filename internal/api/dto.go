package api

import (
	"time"

	"github.com/mswatii/cs2-tradeup/internal/models"
	"github.com/mswatii/cs2-tradeup/internal/session"
	"github.com/mswatii/cs2-tradeup/internal/tradeup"
)

type addItemRequest struct {
	ItemID string `json:"item_id" validate:"required,max=255"`
}

// A null or missing wear unsets it. Out of range values are clamped.
type setWearRequest struct {
	Wear *float64 `json:"wear"`
}

type simulateRequest struct {
	Trials int     `json:"trials" validate:"required,min=1,max=1000000"`
	Seed   *uint64 `json:"seed"`
}

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type catalogResponse struct {
	Items    []models.Item `json:"items"`
	Count    int           `json:"count"`
	Total    int           `json:"total"`
	Page     int           `json:"page,omitempty"`
	PageSize int           `json:"page_size,omitempty"`
	LoadedAt *time.Time    `json:"loaded_at,omitempty"`
}

type collectionsResponse struct {
	Collections []models.Collection `json:"collections"`
	Count       int                 `json:"count"`
}

type reloadResponse struct {
	Items       int       `json:"items"`
	Collections int       `json:"collections"`
	LoadedAt    time.Time `json:"loaded_at"`
}

type createSessionResponse struct {
	ID string `json:"id"`
}

type entryResponse struct {
	Position      int         `json:"position"`
	ID            string      `json:"id"`
	Item          models.Item `json:"item"`
	Wear          *float64    `json:"wear"`
	EffectiveWear float64     `json:"effective_wear"`
}

type outcomeResponse struct {
	Item         models.Item `json:"item"`
	Probability  float64     `json:"probability"`
	Wear         float64     `json:"wear"`
	DisplayWear  float64     `json:"display_wear"`
	WearCategory string      `json:"wear_category"`
}

type sessionResponse struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Count     int               `json:"count"`
	Capacity  int               `json:"capacity"`
	Rarity    *models.Rarity    `json:"rarity,omitempty"`
	Variant   *models.Variant   `json:"variant,omitempty"`
	Entries   []entryResponse   `json:"entries"`
	Outcomes  []outcomeResponse `json:"outcomes,omitempty"`
}

type resolveResponse struct {
	Wear     float64           `json:"wear"`
	Outcomes []outcomeResponse `json:"outcomes"`
}

func newSessionResponse(snap session.Snapshot) sessionResponse {
	resp := sessionResponse{
		ID:        snap.ID,
		CreatedAt: snap.CreatedAt,
		Count:     len(snap.Entries),
		Capacity:  tradeup.Capacity,
		Entries:   make([]entryResponse, len(snap.Entries)),
		Outcomes:  newOutcomeResponses(snap.Outcomes),
	}
	if len(snap.Entries) > 0 {
		resp.Rarity = &snap.Rarity
		resp.Variant = &snap.Variant
	}
	for i, e := range snap.Entries {
		resp.Entries[i] = entryResponse{
			Position:      i,
			ID:            e.ID,
			Item:          e.Item,
			Wear:          e.Wear,
			EffectiveWear: e.EffectiveWear(),
		}
	}
	return resp
}

// newOutcomeResponses maps the selection's mean wear into each outcome's
// own float range for display.
func newOutcomeResponses(outcomes []tradeup.Outcome) []outcomeResponse {
	if outcomes == nil {
		return nil
	}
	out := make([]outcomeResponse, len(outcomes))
	for i, o := range outcomes {
		display := o.Item.Wear.Scale(o.Wear)
		out[i] = outcomeResponse{
			Item:         o.Item,
			Probability:  o.Probability,
			Wear:         o.Wear,
			DisplayWear:  display,
			WearCategory: models.GetWearCategory(display),
		}
	}
	return out
}
