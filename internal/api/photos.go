package api

import (
	"fmt"
	"net/http"

	"github.com/capricallctx/campcrap/internal/imaging"
)

// maxPhotoUpload limits photo uploads to 10 MB before processing.
const maxPhotoUpload = 10 << 20

// savePhotoUpload reads a multipart "photo" field, processes it, and stores
// it via the photo store. Returns the stored path.
func savePhotoUpload(w http.ResponseWriter, r *http.Request, photos *imaging.PhotoStore, kind string, id int64) (string, error) {
	if photos == nil {
		return "", fmt.Errorf("photo storage not configured")
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUpload)
	if err := r.ParseMultipartForm(maxPhotoUpload); err != nil {
		return "", fmt.Errorf("file too large or invalid multipart form")
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		return "", fmt.Errorf("photo file required")
	}
	defer file.Close()

	path, err := photos.Save(file, kind, id)
	if err != nil {
		return "", err
	}
	return path, nil
}

// servePhoto writes the stored photo at path. Stored photos are always JPEG.
func servePhoto(w http.ResponseWriter, photos *imaging.PhotoStore, path string) {
	if photos == nil {
		jsonError(w, http.StatusNotFound, "photo storage not configured")
		return
	}

	data, err := photos.Open(path)
	if err != nil {
		jsonError(w, http.StatusNotFound, "photo not found")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
