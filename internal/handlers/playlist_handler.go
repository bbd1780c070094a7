package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/libs/auth/identity"
	authmw "github.com/promiseroad/backend/libs/auth/middleware"
	"go.uber.org/zap"
)

// PlaylistService is the interface that wraps methods for Playlists business logic.
type PlaylistService interface {
	// Method List retrieves playlists visible to "caller", which is nil for anonymous requests.
	//
	// The isPublic filter is honoured only when the caller is the requested creator.
	List(ctx context.Context, caller *identity.Identity, filter models.PlaylistFilter) ([]models.Playlist, error)
	// Method Get retrieves a playlist with its videos in order.
	//
	// Private playlists of other users return a forbidden error.
	Get(ctx context.Context, caller *identity.Identity, id int) (*models.Playlist, error)
	// Method Create stores a new playlist owned by "caller".
	Create(ctx context.Context, caller identity.Identity, req *models.PlaylistRequest) (*models.Playlist, error)
	// Method Update applies a partial update to a playlist of "caller", or any playlist for admins.
	Update(ctx context.Context, caller identity.Identity, id int, req *models.UpdatePlaylistRequest) (*models.Playlist, error)
	// Method Delete removes a playlist of "caller", or any playlist for admins.
	Delete(ctx context.Context, caller identity.Identity, id int) error
	// Method AddVideo appends a video to a playlist of "caller" and returns the updated playlist.
	AddVideo(ctx context.Context, caller identity.Identity, id int, req *models.AddVideoRequest) (*models.Playlist, error)
	// Method RemoveVideo drops a video from a playlist of "caller" and returns the updated playlist.
	RemoveVideo(ctx context.Context, caller identity.Identity, id, videoID int) (*models.Playlist, error)
}

// PlaylistHandler handles playlist HTTP requests
type PlaylistHandler struct {
	BaseHandler
	playlistService PlaylistService
}

// NewPlaylistHandler creates a new playlist handler
func NewPlaylistHandler(playlistService PlaylistService, logger *zap.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		BaseHandler:     newBaseHandler(logger),
		playlistService: playlistService,
	}
}

// RegisterRoutes registers all playlist handler routes
func (h *PlaylistHandler) RegisterRoutes(r chi.Router, guards Guards) {
	r.Route("/playlists", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(guards.Optional)
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(guards.Protect, authmw.Authorize(identity.RoleAdmin, identity.RoleCreator))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/videos", h.AddVideo)
			r.Delete("/{id}/videos/{videoId}", h.RemoveVideo)
		})
	})
}

// List handles GET /api/playlists
// @Summary List playlists
// @Description Only public playlists are listed unless the caller asks for their own
// @Tags playlists
// @Produce json
// @Param creator query int false "Creator ID"
// @Param isPublic query bool false "Visibility, honoured for the caller's own playlists"
// @Success 200 {object} ListResponse{data=[]models.Playlist}
// @Failure 400 {object} ErrorResponse
// @Router /api/playlists [get]
func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := h.queryID(w, r, "creator")
	if !ok {
		return
	}

	filter := models.PlaylistFilter{CreatorID: creatorID}
	if raw := r.URL.Query().Get("isPublic"); raw != "" {
		isPublic, err := strconv.ParseBool(raw)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid isPublic parameter")
			return
		}
		filter.IsPublic = &isPublic
	}

	playlists, err := h.playlistService.List(r.Context(), optionalCaller(r), filter)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to list playlists")
		return
	}

	h.RespondList(w, len(playlists), playlists)
}

// Get handles GET /api/playlists/{id}
// @Summary Get a playlist
// @Tags playlists
// @Produce json
// @Param id path int true "Playlist ID"
// @Success 200 {object} DataResponse{data=models.Playlist}
// @Failure 403 {object} ErrorResponse "This playlist is private"
// @Failure 404 {object} ErrorResponse "Playlist not found"
// @Router /api/playlists/{id} [get]
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	playlist, err := h.playlistService.Get(r.Context(), optionalCaller(r), id)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get playlist")
		return
	}

	h.RespondData(w, http.StatusOK, playlist)
}

// Create handles POST /api/playlists
// @Summary Create a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PlaylistRequest true "Playlist"
// @Success 201 {object} DataResponse{data=models.Playlist}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/playlists [post]
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.PlaylistRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	playlist, err := h.playlistService.Create(r.Context(), caller, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to create playlist")
		return
	}

	h.RespondData(w, http.StatusCreated, playlist)
}

// Update handles PUT /api/playlists/{id}
// @Summary Update a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Playlist ID"
// @Param request body models.UpdatePlaylistRequest true "Changed fields"
// @Success 200 {object} DataResponse{data=models.Playlist}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/playlists/{id} [put]
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdatePlaylistRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	playlist, err := h.playlistService.Update(r.Context(), caller, id, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to update playlist")
		return
	}

	h.RespondData(w, http.StatusOK, playlist)
}

// Delete handles DELETE /api/playlists/{id}
// @Summary Delete a playlist
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Playlist ID"
// @Success 200 {object} DataResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/playlists/{id} [delete]
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.playlistService.Delete(r.Context(), caller, id); err != nil {
		h.respondServiceError(w, r, err, "failed to delete playlist")
		return
	}

	h.RespondData(w, http.StatusOK, struct{}{})
}

// AddVideo handles POST /api/playlists/{id}/videos
// @Summary Add a video to a playlist
// @Description Only the playlist creator may add videos. Unpublished videos may only be added by their author.
// @Tags playlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Playlist ID"
// @Param request body models.AddVideoRequest true "Video to add"
// @Success 200 {object} DataResponse{data=models.Playlist}
// @Failure 400 {object} ErrorResponse "Missing, unpublished or duplicate video"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/playlists/{id}/videos [post]
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.AddVideoRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	playlist, err := h.playlistService.AddVideo(r.Context(), caller, id, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to add video to playlist")
		return
	}

	h.RespondData(w, http.StatusOK, playlist)
}

// RemoveVideo handles DELETE /api/playlists/{id}/videos/{videoId}
// @Summary Remove a video from a playlist
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Playlist ID"
// @Param videoId path int true "Video ID"
// @Success 200 {object} DataResponse{data=models.Playlist}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/playlists/{id}/videos/{videoId} [delete]
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	videoID, ok := h.pathID(w, r, "videoId")
	if !ok {
		return
	}

	playlist, err := h.playlistService.RemoveVideo(r.Context(), caller, id, videoID)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to remove video from playlist")
		return
	}

	h.RespondData(w, http.StatusOK, playlist)
}
