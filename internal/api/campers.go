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

// CampersHandler handles camper CRUD endpoints.
type CampersHandler struct {
	DB     *sql.DB
	Photos *imaging.PhotoStore
}

type createCamperRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	RealName      string `json:"real_name"`
	EntryDate     string `json:"entry_date"`
	ExitDate      string `json:"exit_date"`
	CampName      string `json:"camp_name"`
	Notes         string `json:"notes"`
	Year          string `json:"year"`
	YearsAttended string `json:"years_attended"`
	HasTicket     bool   `json:"has_ticket"`
	PaidDues      bool   `json:"paid_dues"`
}

// List handles GET /api/campers. The infrastructure record is hidden
// unless ?infrastructure=true is passed.
func (h *CampersHandler) List(w http.ResponseWriter, r *http.Request) {
	year, err := resolveYear(r, h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to resolve year")
		return
	}

	includeInfra := r.URL.Query().Get("infrastructure") == "true"
	campers, err := store.ListPeople(r.Context(), h.DB, year, includeInfra)
	if err != nil {
		slog.Error("failed to list campers", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list campers")
		return
	}
	if campers == nil {
		campers = []model.Person{}
	}
	jsonResponse(w, http.StatusOK, campers)
}

// Create handles POST /api/campers.
func (h *CampersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCamperRequest
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

	camper, err := store.CreatePerson(r.Context(), h.DB, model.Person{
		Name:          req.Name,
		Email:         req.Email,
		RealName:      req.RealName,
		EntryDate:     req.EntryDate,
		ExitDate:      req.ExitDate,
		CampName:      req.CampName,
		Notes:         req.Notes,
		Year:          year,
		YearsAttended: req.YearsAttended,
		HasTicket:     req.HasTicket,
		PaidDues:      req.PaidDues,
	})
	if err != nil {
		slog.Error("failed to create camper", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create camper")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("camper created", "user", claims.Username, "camper", req.Name, "year", year)
	jsonResponse(w, http.StatusCreated, camper)
}

// Get handles GET /api/campers/{id}.
func (h *CampersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid camper id")
		return
	}

	camper, err := store.GetPerson(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get camper", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get camper")
		return
	}
	if camper == nil {
		jsonError(w, http.StatusNotFound, "camper not found")
		return
	}

	jsonResponse(w, http.StatusOK, camper)
}

// Update handles PUT /api/campers/{id}. Fields absent from the body are
// left unchanged.
func (h *CampersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid camper id")
		return
	}

	var upd model.PersonUpdate
	if err := decodeJSON(r, &upd); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if upd.Name != nil && *upd.Name == "" {
		jsonError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	if err := store.UpdatePerson(r.Context(), h.DB, id, upd); err != nil {
		slog.Error("failed to update camper", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update camper")
		return
	}

	camper, _ := store.GetPerson(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, camper)
}

type skippingRequest struct {
	Skipping bool `json:"skipping"`
}

// SetSkipping handles PUT /api/campers/{id}/skipping. Skipping campers
// stay on the roster but are marked as sitting this year out.
func (h *CampersHandler) SetSkipping(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid camper id")
		return
	}

	var req skippingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.SetPersonSkipping(r.Context(), h.DB, id, req.Skipping); err != nil {
		slog.Error("failed to set skipping", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update camper")
		return
	}

	camper, _ := store.GetPerson(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, camper)
}

// UploadPhoto handles PUT /api/campers/{id}/photo.
func (h *CampersHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid camper id")
		return
	}

	camper, err := store.GetPerson(r.Context(), h.DB, id)
	if err != nil || camper == nil {
		jsonError(w, http.StatusNotFound, "camper not found")
		return
	}

	path, err := savePhotoUpload(w, r, h.Photos, "camper", id)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.UpdatePerson(r.Context(), h.DB, id, model.PersonUpdate{PhotoPath: &path}); err != nil {
		slog.Error("failed to save camper photo path", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"photo_path": path})
}

// GetPhoto handles GET /api/campers/{id}/photo.
func (h *CampersHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid camper id")
		return
	}

	camper, err := store.GetPerson(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get camper")
		return
	}
	if camper == nil || camper.PhotoPath == "" {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	servePhoto(w, h.Photos, camper.PhotoPath)
}
