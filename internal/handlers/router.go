package handlers

import (
	"github.com/go-chi/chi/v5"
)

// API groups the handlers mounted under /api
type API struct {
	Auth        *AuthHandler
	Blogs       *BlogHandler
	Videos      *VideoHandler
	Categories  *CategoryHandler
	Playlists   *PlaylistHandler
	Uploads     *UploadHandler
	Health      *HealthHandler
	Maintenance *MaintenanceHandler

	Guards Guards
	// APIKey guards the maintenance routes
	APIKey Middleware
}

// Mount registers every API route on r together with the JSON not found response
func (a *API) Mount(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		a.Health.RegisterRoutes(r)
		a.Auth.RegisterRoutes(r, a.Guards)
		a.Blogs.RegisterRoutes(r, a.Guards)
		a.Videos.RegisterRoutes(r, a.Guards)
		a.Categories.RegisterRoutes(r, a.Guards)
		a.Playlists.RegisterRoutes(r, a.Guards)
		a.Uploads.RegisterRoutes(r, a.Guards)

		r.Group(func(r chi.Router) {
			r.Use(a.APIKey)
			a.Maintenance.RegisterRoutes(r)
		})
	})

	r.NotFound(a.Health.NotFound)
	r.MethodNotAllowed(a.Health.NotFound)
}
