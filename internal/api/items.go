package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/capricallctx/campcrap/internal/imaging"
	"github.com/capricallctx/campcrap/internal/model"
	"github.com/capricallctx/campcrap/internal/store"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	DB     *sql.DB
	Photos *imaging.PhotoStore
}

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CamperID    int64  `json:"camper_id"`
	LocationID  int64  `json:"location_id"`
	NFCUID      string `json:"nfc_uid"`
	Year        string `json:"year"`
}

// List handles GET /api/items. Removed items are hidden unless
// ?removed=true is passed.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	year, err := resolveYear(r, h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to resolve year")
		return
	}

	includeRemoved := r.URL.Query().Get("removed") == "true"
	items, err := store.ListItems(r.Context(), h.DB, year, includeRemoved)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. When no owner or location is given the
// item falls back to the infrastructure record and Camp Storage.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	year := req.Year
	if year == "" {
		var err error
		if year, err = resolveYear(r, h.DB); err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to resolve year")
			return
		}
	}

	camperID := req.CamperID
	if camperID == 0 {
		var err error
		if camperID, err = store.EnsureInfrastructurePerson(r.Context(), h.DB, year); err != nil {
			slog.Error("failed to ensure infrastructure camper", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to create item")
			return
		}
	}

	locationID := req.LocationID
	if locationID == 0 {
		var err error
		if locationID, err = store.EnsureCampStorageLocation(r.Context(), h.DB, year); err != nil {
			slog.Error("failed to ensure camp storage", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to create item")
			return
		}
	}

	item, err := store.CreateItem(r.Context(), h.DB, model.Item{
		Name:        req.Name,
		Description: req.Description,
		CamperID:    camperID,
		LocationID:  locationID,
		NFCUID:      req.NFCUID,
		Year:        year,
	})
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("item created", "user", claims.Username, "item", req.Name, "year", year)
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}. Fields absent from the body are left
// unchanged. Status changes go through here too, in either direction.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var upd model.ItemUpdate
	if err := decodeJSON(r, &upd); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if upd.Name != nil && *upd.Name == "" {
		jsonError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	if upd.RemovalStatus != nil && !model.ValidStatus(*upd.RemovalStatus) {
		jsonError(w, http.StatusBadRequest, "invalid removal status")
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, id, upd); err != nil {
		slog.Error("failed to update item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	item, _ := store.GetItem(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, item)
}

// UploadPhoto handles PUT /api/items/{id}/photo.
func (h *ItemsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil || item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	path, err := savePhotoUpload(w, r, h.Photos, "item", id)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, id, model.ItemUpdate{PhotoPath: &path}); err != nil {
		slog.Error("failed to save item photo path", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"photo_path": path})
}

// GetPhoto handles GET /api/items/{id}/photo.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil || item.PhotoPath == "" {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	servePhoto(w, h.Photos, item.PhotoPath)
}
