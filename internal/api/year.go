package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/capricallctx/campcrap/internal/store"
)

// resolveYear returns the event year for a request: the explicit ?year=
// query parameter if given, otherwise the configured current year.
func resolveYear(r *http.Request, db *sql.DB) (string, error) {
	if y := r.URL.Query().Get("year"); y != "" {
		return y, nil
	}
	fallback := strconv.Itoa(time.Now().Year())
	return store.GetCurrentYear(r.Context(), db, fallback)
}
