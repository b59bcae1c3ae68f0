package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mswatii/cs2-tradeup/internal/session"
	"github.com/mswatii/cs2-tradeup/internal/tradeup"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"
)

// Error codes returned in the error body
const (
	CodeRarityMismatch      = "rarity_mismatch"
	CodeVariantMismatch     = "variant_mismatch"
	CodeCapacityExceeded    = "capacity_exceeded"
	CodeOutOfRange          = "out_of_range"
	CodeIncompleteSelection = "incomplete_selection"
	CodeMaxRarityReached    = "max_rarity_reached"
	CodeNoReachableOutcome  = "no_reachable_outcome"
	CodeSessionNotFound     = "session_not_found"
	CodeItemNotFound        = "item_not_found"
	CodeInvalidRequest      = "invalid_request"
	CodeMethodNotAllowed    = "method_not_allowed"
	CodeNotFound            = "not_found"
	CodeInternal            = "internal_error"
)

var (
	errItemNotFound   = errors.New("item not found")
	errInvalidRequest = errors.New("invalid request")
)

// errorCodes is checked in order; the first match wins.
var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{tradeup.ErrCapacityExceeded, fasthttp.StatusUnprocessableEntity, CodeCapacityExceeded},
	{tradeup.ErrRarityMismatch, fasthttp.StatusUnprocessableEntity, CodeRarityMismatch},
	{tradeup.ErrVariantMismatch, fasthttp.StatusUnprocessableEntity, CodeVariantMismatch},
	{tradeup.ErrOutOfRange, fasthttp.StatusUnprocessableEntity, CodeOutOfRange},
	{tradeup.ErrIncompleteSelection, fasthttp.StatusUnprocessableEntity, CodeIncompleteSelection},
	{tradeup.ErrMaxRarityReached, fasthttp.StatusUnprocessableEntity, CodeMaxRarityReached},
	{tradeup.ErrNoReachableOutcome, fasthttp.StatusUnprocessableEntity, CodeNoReachableOutcome},
	{tradeup.ErrNoOutcomes, fasthttp.StatusUnprocessableEntity, CodeNoReachableOutcome},
	{tradeup.ErrInvalidTrials, fasthttp.StatusBadRequest, CodeInvalidRequest},
	{session.ErrSessionNotFound, fasthttp.StatusNotFound, CodeSessionNotFound},
	{errItemNotFound, fasthttp.StatusNotFound, CodeItemNotFound},
	{errInvalidRequest, fasthttp.StatusBadRequest, CodeInvalidRequest},
}

func classifyError(err error) (int, string) {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.status, ec.code
		}
	}
	return fasthttp.StatusInternalServerError, CodeInternal
}

// wantsMsgpack reports whether the client asked for msgpack bodies.
func wantsMsgpack(ctx *fasthttp.RequestCtx) bool {
	return strings.Contains(string(ctx.Request.Header.Peek(fasthttp.HeaderAccept)), contentTypeMsgpack)
}

// writeResponse encodes v as JSON, or msgpack when the client accepts it.
func writeResponse(ctx *fasthttp.RequestCtx, status int, v any) {
	var (
		body        []byte
		contentType string
		err         error
	)
	if wantsMsgpack(ctx) {
		contentType = contentTypeMsgpack
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		err = enc.Encode(v)
		body = buf.Bytes()
	} else {
		contentType = contentTypeJSON
		body, err = json.Marshal(v)
	}
	if err != nil {
		logFor(ctx).Error("Failed to encode response", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("Failed to encode response")
		return
	}

	ctx.SetStatusCode(status)
	ctx.SetContentType(contentType)
	ctx.SetBody(body)
}

// writeError maps err to its status and code.
func writeError(ctx *fasthttp.RequestCtx, err error) {
	status, code := classifyError(err)
	if status >= fasthttp.StatusInternalServerError {
		logFor(ctx).Error("Request failed", "path", string(ctx.Path()), "error", err)
	} else {
		logFor(ctx).Debug("Request rejected", "path", string(ctx.Path()), "code", code, "error", err)
	}
	writeResponse(ctx, status, errorResponse{Error: code, Message: err.Error()})
}

func writeCodeError(ctx *fasthttp.RequestCtx, status int, code, message string) {
	writeResponse(ctx, status, errorResponse{Error: code, Message: message})
}

// decodeBody reads a JSON or msgpack body into v and validates it.
func (h *Handler) decodeBody(ctx *fasthttp.RequestCtx, v any) bool {
	body := ctx.PostBody()
	var err error
	if strings.HasPrefix(string(ctx.Request.Header.ContentType()), contentTypeMsgpack) {
		dec := msgpack.NewDecoder(bytes.NewReader(body))
		dec.SetCustomStructTag("json")
		err = dec.Decode(v)
	} else {
		if len(bytes.TrimSpace(body)) == 0 {
			body = []byte("{}")
		}
		err = json.Unmarshal(body, v)
	}
	if err != nil {
		writeError(ctx, fmt.Errorf("%w: malformed body: %v", errInvalidRequest, err))
		return false
	}

	if err := h.validator.ValidateStruct(v); err != nil {
		writeResponse(ctx, fasthttp.StatusBadRequest, errorResponse{
			Error:   CodeInvalidRequest,
			Message: "request validation failed",
			Fields:  FormatValidationError(err),
		})
		return false
	}
	return true
}
