package api

import (
	"database/sql"
	"net/http"

	"github.com/capricallctx/campcrap/internal/imaging"
	"github.com/capricallctx/campcrap/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, photos *imaging.PhotoStore) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	campersHandler := &CampersHandler{DB: db, Photos: photos}
	locationsHandler := &LocationsHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db, Photos: photos}
	tagsHandler := &TagsHandler{DB: db}
	syncHandler := &SyncHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))

	// Campers.
	mux.Handle("GET /api/campers", authMW(http.HandlerFunc(campersHandler.List)))
	mux.Handle("POST /api/campers", authMW(http.HandlerFunc(campersHandler.Create)))
	mux.Handle("GET /api/campers/{id}", authMW(http.HandlerFunc(campersHandler.Get)))
	mux.Handle("PUT /api/campers/{id}", authMW(http.HandlerFunc(campersHandler.Update)))
	mux.Handle("PUT /api/campers/{id}/skipping", authMW(http.HandlerFunc(campersHandler.SetSkipping)))
	mux.Handle("PUT /api/campers/{id}/photo", authMW(http.HandlerFunc(campersHandler.UploadPhoto)))
	mux.Handle("GET /api/campers/{id}/photo", authMW(http.HandlerFunc(campersHandler.GetPhoto)))

	// Locations.
	mux.Handle("GET /api/locations", authMW(http.HandlerFunc(locationsHandler.List)))
	mux.Handle("POST /api/locations", authMW(http.HandlerFunc(locationsHandler.Create)))
	mux.Handle("GET /api/locations/{id}", authMW(http.HandlerFunc(locationsHandler.Get)))
	mux.Handle("PUT /api/locations/{id}", authMW(http.HandlerFunc(locationsHandler.Update)))

	// Items.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("PUT /api/items/{id}/photo", authMW(http.HandlerFunc(itemsHandler.UploadPhoto)))
	mux.Handle("GET /api/items/{id}/photo", authMW(http.HandlerFunc(itemsHandler.GetPhoto)))

	// NFC tags.
	mux.Handle("GET /api/tags/{uid}", authMW(http.HandlerFunc(tagsHandler.Lookup)))
	mux.Handle("PUT /api/items/{id}/tag", authMW(http.HandlerFunc(tagsHandler.Assign)))
	mux.Handle("PUT /api/items/{id}/location", authMW(http.HandlerFunc(tagsHandler.Relocate)))

	// Spreadsheet sync.
	mux.Handle("POST /api/sync/import", authMW(http.HandlerFunc(syncHandler.Import)))
	mux.Handle("GET /api/sync/export", authMW(http.HandlerFunc(syncHandler.Export)))

	return mux
}
