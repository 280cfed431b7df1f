package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/capricallctx/campcrap/internal/tagscan"
)

// TagsHandler handles NFC tag endpoints.
type TagsHandler struct {
	DB *sql.DB
}

type assignTagRequest struct {
	TagID string `json:"tag_id"`
}

type relocateRequest struct {
	LocationID int64 `json:"location_id"`
}

// Lookup handles GET /api/tags/{uid}. A hit records a sighting on the item.
func (h *TagsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")

	item, err := tagscan.Lookup(r.Context(), h.DB, uid)
	if err != nil {
		slog.Error("tag lookup failed", "tag", uid, "error", err)
		jsonError(w, http.StatusInternalServerError, "tag lookup failed")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "no active item with that tag")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Assign handles PUT /api/items/{id}/tag. Rejects a tag already on another
// active item.
func (h *TagsHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req assignTagRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TagID == "" {
		jsonError(w, http.StatusBadRequest, "tag_id required")
		return
	}

	if err := tagscan.Assign(r.Context(), h.DB, id, req.TagID); err != nil {
		slog.Warn("tag assignment failed", "item", id, "tag", req.TagID, "error", err)
		jsonError(w, http.StatusConflict, "tag already assigned to an active item")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("tag assigned", "user", claims.Username, "item", id, "tag", req.TagID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "tag assigned"})
}

// Relocate handles PUT /api/items/{id}/location, the scan-and-move flow.
func (h *TagsHandler) Relocate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req relocateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := tagscan.Relocate(r.Context(), h.DB, id, req.LocationID); err != nil {
		slog.Warn("relocate failed", "item", id, "location", req.LocationID, "error", err)
		jsonError(w, http.StatusBadRequest, "failed to relocate item")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("item relocated", "user", claims.Username, "item", id, "location", req.LocationID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item relocated"})
}
