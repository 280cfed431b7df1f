package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/capricallctx/campcrap/internal/model"
	"github.com/capricallctx/campcrap/internal/store"
)

// LocationsHandler handles location CRUD endpoints.
type LocationsHandler struct {
	DB *sql.DB
}

type createLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Year        string `json:"year"`
}

type updateLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List handles GET /api/locations.
func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	year, err := resolveYear(r, h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to resolve year")
		return
	}

	locations, err := store.ListLocations(r.Context(), h.DB, year)
	if err != nil {
		slog.Error("failed to list locations", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list locations")
		return
	}
	if locations == nil {
		locations = []model.Location{}
	}
	jsonResponse(w, http.StatusOK, locations)
}

// Create handles POST /api/locations.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
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

	location, err := store.CreateLocation(r.Context(), h.DB, req.Name, req.Description, year)
	if err != nil {
		slog.Error("failed to create location", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create location")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("location created", "user", claims.Username, "location", req.Name, "year", year)
	jsonResponse(w, http.StatusCreated, location)
}

// Get handles GET /api/locations/{id}.
func (h *LocationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	location, err := store.GetLocation(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get location", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get location")
		return
	}
	if location == nil {
		jsonError(w, http.StatusNotFound, "location not found")
		return
	}

	jsonResponse(w, http.StatusOK, location)
}

// Update handles PUT /api/locations/{id}.
func (h *LocationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	var req updateLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	if err := store.UpdateLocation(r.Context(), h.DB, id, req.Name, req.Description); err != nil {
		slog.Error("failed to update location", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update location")
		return
	}

	location, _ := store.GetLocation(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, location)
}
