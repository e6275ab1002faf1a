package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	gamerec "github.com/davrell/gamerec"
	"github.com/davrell/gamerec/images"
	"github.com/davrell/gamerec/internal/logging"
	"github.com/davrell/gamerec/types"
)

// Handler serves the recommendation API over a shared recommender and
// image resolver.
type Handler struct {
	rec    *gamerec.Recommender
	images *images.Resolver
}

// NewHandler creates a Handler.
func NewHandler(rec *gamerec.Recommender, resolver *images.Resolver) *Handler {
	return &Handler{rec: rec, images: resolver}
}

type itemsResponse struct {
	Items []types.Item `json:"items"`
	Count int          `json:"count"`
}

type recommendationsResponse struct {
	Reference       string                 `json:"reference"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Count           int                    `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Items returns the full catalog.
func (h *Handler) Items(w http.ResponseWriter, req *http.Request) {
	items, err := h.rec.Items(req.Context())
	if err != nil {
		h.serverError(w, req, err, "failed to load catalog")
		return
	}

	writeJSON(w, http.StatusOK, itemsResponse{Items: items, Count: len(items)})
}

// Names returns the distinct item names in catalog order.
func (h *Handler) Names(w http.ResponseWriter, req *http.Request) {
	names, err := h.rec.Names(req.Context())
	if err != nil {
		h.serverError(w, req, err, "failed to load catalog")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"names": names, "count": len(names)})
}

// Recommendations returns the top-N most similar items for a reference
// item. An unknown reference yields an empty list, not an error — the
// client decides how to present "no recommendations".
func (h *Handler) Recommendations(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")

	topN := h.rec.DefaultTopN()
	if raw := req.URL.Query().Get("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "n must be a positive integer"})
			return
		}
		topN = n
	}

	recs, err := h.rec.Recommend(req.Context(), name, topN)
	if err != nil {
		h.serverError(w, req, err, "failed to compute recommendations")
		return
	}
	recommendationsServed.Inc()

	writeJSON(w, http.StatusOK, recommendationsResponse{
		Reference:       name,
		Recommendations: recs,
		Count:           len(recs),
	})
}

// Image serves an item's gallery image, or 404 when none exists.
func (h *Handler) Image(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")

	path, ok := h.images.Resolve(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "image not available"})
		return
	}

	http.ServeFile(w, req, path)
}

// Health reports liveness and the current catalog size.
func (h *Handler) Health(w http.ResponseWriter, req *http.Request) {
	count, err := h.rec.Len(req.Context())
	if err != nil {
		h.serverError(w, req, err, "catalog unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "items": count})
}

func (h *Handler) serverError(w http.ResponseWriter, req *http.Request, err error, msg string) {
	logging.Err(err).
		Str("request_id", w.Header().Get(requestIDHeader)).
		Str("path", req.URL.Path).
		Msg(msg)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Err(err).Msg("failed to encode response")
	}
}
