package api

import (
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/mswatii/cs2-tradeup/internal/catalog"
	"github.com/mswatii/cs2-tradeup/internal/models"
)

const maxPageSize = 500

// handleCatalog lists tradeable inputs. Query parameters: rarity, variant,
// collection, kind, category, q, and page/page_size for pagination.
// Without page_size every match is returned.
func (h *Handler) handleCatalog(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	filter, err := parseFilter(args)
	if err != nil {
		writeError(ctx, err)
		return
	}
	page, pageSize, err := parsePage(args)
	if err != nil {
		writeError(ctx, err)
		return
	}

	items := h.catalog.Current().TradeableInputs(filter)
	resp := catalogResponse{Total: len(items)}
	if pageSize > 0 {
		items = pageOf(items, page, pageSize)
		resp.Page, resp.PageSize = page, pageSize
	}
	if items == nil {
		items = []models.Item{}
	}
	resp.Items, resp.Count = items, len(items)
	if loadedAt := h.catalog.LoadedAt(); !loadedAt.IsZero() {
		resp.LoadedAt = &loadedAt
	}
	writeResponse(ctx, fasthttp.StatusOK, resp)
}

func parseFilter(args *fasthttp.Args) (catalog.Filter, error) {
	var f catalog.Filter
	if raw := string(args.Peek("rarity")); raw != "" {
		r, err := models.ParseRarity(raw)
		if err != nil {
			return f, fmt.Errorf("%w: %v", errInvalidRequest, err)
		}
		f.Rarity = &r
	}
	if raw := string(args.Peek("variant")); raw != "" {
		v, err := models.ParseVariant(raw)
		if err != nil {
			return f, fmt.Errorf("%w: %v", errInvalidRequest, err)
		}
		f.Variant = &v
	}
	if raw := string(args.Peek("kind")); raw != "" {
		kind := models.CollectionKind(raw)
		if kind != models.KindWeaponCase && kind != models.KindItemSet {
			return f, fmt.Errorf("%w: unknown kind %q", errInvalidRequest, raw)
		}
		f.Kind = kind
	}
	f.CollectionID = string(args.Peek("collection"))
	f.Category = string(args.Peek("category"))
	f.Query = string(args.Peek("q"))
	return f, nil
}

// pageOf returns the 1-based page of items. Pages past the end are empty.
func pageOf(items []models.Item, page, pageSize int) []models.Item {
	if page-1 >= (len(items)+pageSize-1)/pageSize {
		return items[:0]
	}
	start := (page - 1) * pageSize
	return items[start:min(start+pageSize, len(items))]
}

func parsePage(args *fasthttp.Args) (page, pageSize int, err error) {
	page = 1
	if args.Has("page") {
		if page, err = args.GetUint("page"); err != nil || page < 1 {
			return 0, 0, fmt.Errorf("%w: page must be a positive integer", errInvalidRequest)
		}
	}
	if args.Has("page_size") {
		if pageSize, err = args.GetUint("page_size"); err != nil || pageSize < 1 || pageSize > maxPageSize {
			return 0, 0, fmt.Errorf("%w: page_size must be between 1 and %d", errInvalidRequest, maxPageSize)
		}
	}
	return page, pageSize, nil
}

// handleCollections lists every collection in load order
func (h *Handler) handleCollections(ctx *fasthttp.RequestCtx) {
	colls := h.catalog.Current().Collections()
	writeResponse(ctx, fasthttp.StatusOK, collectionsResponse{Collections: colls, Count: len(colls)})
}

// handleReload reloads the catalog from its source. Sessions keep their
// selected items; later resolutions use the new catalog.
func (h *Handler) handleReload(ctx *fasthttp.RequestCtx) {
	cat, err := h.catalog.Reload(requestContext(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeResponse(ctx, fasthttp.StatusOK, reloadResponse{
		Items:       cat.Len(),
		Collections: len(cat.Collections()),
		LoadedAt:    h.catalog.LoadedAt(),
	})
}
