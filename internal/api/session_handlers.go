package api

import (
	"fmt"
	"strconv"

	"github.com/valyala/fasthttp"

	"github.com/mswatii/cs2-tradeup/internal/session"
	"github.com/mswatii/cs2-tradeup/internal/tradeup"
)

func (h *Handler) handleCreateSession(ctx *fasthttp.RequestCtx) {
	sess := h.sessions.Create()
	logFor(ctx).Info("Session created", "session_id", sess.ID)
	writeResponse(ctx, fasthttp.StatusCreated, createSessionResponse{ID: sess.ID})
}

// lookupSession writes session_not_found and returns nil when id is unknown.
func (h *Handler) lookupSession(ctx *fasthttp.RequestCtx, id string) *session.Session {
	sess, err := h.sessions.Get(id)
	if err != nil {
		writeError(ctx, err)
		return nil
	}
	return sess
}

func (h *Handler) handleGetSession(ctx *fasthttp.RequestCtx, id string) {
	sess := h.lookupSession(ctx, id)
	if sess == nil {
		return
	}
	writeResponse(ctx, fasthttp.StatusOK, newSessionResponse(sess.Snapshot(h.catalog.Current())))
}

func (h *Handler) handleDeleteSession(ctx *fasthttp.RequestCtx, id string) {
	if err := h.sessions.Delete(id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

// handleAddItem adds a catalog item by id. Covert and above are refused
// here since they can never be part of a resolvable selection.
func (h *Handler) handleAddItem(ctx *fasthttp.RequestCtx, id string) {
	sess := h.lookupSession(ctx, id)
	if sess == nil {
		return
	}
	var req addItemRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	item, ok := h.catalog.Current().Get(req.ItemID)
	if !ok {
		writeError(ctx, fmt.Errorf("%w: %s", errItemNotFound, req.ItemID))
		return
	}
	if !item.Rarity.Tradeable() {
		writeError(ctx, fmt.Errorf("%w: %s is %s", tradeup.ErrMaxRarityReached, item.ID, item.Rarity))
		return
	}
	if _, err := sess.Add(item); err != nil {
		writeError(ctx, err)
		return
	}
	writeResponse(ctx, fasthttp.StatusCreated, newSessionResponse(sess.Snapshot(h.catalog.Current())))
}

func (h *Handler) handleRemoveItem(ctx *fasthttp.RequestCtx, id, rawPosition string) {
	sess := h.lookupSession(ctx, id)
	if sess == nil {
		return
	}
	position, ok := parsePosition(ctx, rawPosition)
	if !ok {
		return
	}
	if _, err := sess.Remove(position); err != nil {
		writeError(ctx, err)
		return
	}
	writeResponse(ctx, fasthttp.StatusOK, newSessionResponse(sess.Snapshot(h.catalog.Current())))
}

func (h *Handler) handleSetWear(ctx *fasthttp.RequestCtx, id, rawPosition string) {
	sess := h.lookupSession(ctx, id)
	if sess == nil {
		return
	}
	position, ok := parsePosition(ctx, rawPosition)
	if !ok {
		return
	}
	var req setWearRequest
	if !h.decodeBody(ctx, &req) {
		return
	}
	if err := sess.SetWear(position, req.Wear); err != nil {
		writeError(ctx, err)
		return
	}
	writeResponse(ctx, fasthttp.StatusOK, newSessionResponse(sess.Snapshot(h.catalog.Current())))
}

func (h *Handler) handleClear(ctx *fasthttp.RequestCtx, id string) {
	sess := h.lookupSession(ctx, id)
	if sess == nil {
		return
	}
	sess.Clear()
	writeResponse(ctx, fasthttp.StatusOK, newSessionResponse(sess.Snapshot(h.catalog.Current())))
}

func (h *Handler) handleResolve(ctx *fasthttp.RequestCtx, id string) {
	sess := h.lookupSession(ctx, id)
	if sess == nil {
		return
	}
	outcomes, err := sess.Resolve(h.catalog.Current())
	if err != nil {
		writeError(ctx, err)
		return
	}
	logFor(ctx).Debug("Selection resolved", "session_id", id, "outcomes", len(outcomes))
	writeResponse(ctx, fasthttp.StatusOK, resolveResponse{
		Wear:     outcomes[0].Wear,
		Outcomes: newOutcomeResponses(outcomes),
	})
}

func (h *Handler) handleSimulate(ctx *fasthttp.RequestCtx, id string) {
	sess := h.lookupSession(ctx, id)
	if sess == nil {
		return
	}
	var req simulateRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	rng := tradeup.DefaultRNG()
	if req.Seed != nil {
		rng = tradeup.NewSeededRNG(*req.Seed)
	}
	res, err := sess.Simulate(h.catalog.Current(), req.Trials, rng)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeResponse(ctx, fasthttp.StatusOK, res)
}

func parsePosition(ctx *fasthttp.RequestCtx, raw string) (int, bool) {
	position, err := strconv.Atoi(raw)
	if err != nil {
		writeError(ctx, fmt.Errorf("%w: position %q is not an integer", errInvalidRequest, raw))
		return 0, false
	}
	return position, true
}
