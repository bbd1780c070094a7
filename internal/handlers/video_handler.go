package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/libs/auth/identity"
	authmw "github.com/promiseroad/backend/libs/auth/middleware"
	"go.uber.org/zap"
)

// VideoService is the interface that wraps methods for Videos business logic.
type VideoService interface {
	// Method List retrieves videos matching every non-empty field of "filter".
	//
	// Without status and author filters only published videos are returned.
	List(ctx context.Context, filter models.ContentFilter) ([]models.Video, error)
	// Method ListByCategorySlug retrieves the category with "slug" and its published videos.
	//
	// If category with such slug does not exist, a not found error will be returned.
	ListByCategorySlug(ctx context.Context, slug string) (*models.Category, []models.Video, error)
	// Method Get increments the view count of a video and returns it with its comments.
	//
	// If video with such ID does not exist, a not found error will be returned together with "nil" value.
	Get(ctx context.Context, id int) (*models.Video, error)
	// Method Create stores a new video authored by "caller".
	Create(ctx context.Context, caller identity.Identity, req *models.VideoRequest) (*models.Video, error)
	// Method Update applies a partial update to a video of "caller", or any video for admins.
	Update(ctx context.Context, caller identity.Identity, id int, req *models.UpdateVideoRequest) (*models.Video, error)
	// Method Delete removes a video of "caller", or any video for admins.
	//
	// Stored files of uploaded videos are scheduled for removal in the same transaction.
	Delete(ctx context.Context, caller identity.Identity, id int) error
	// Method AddComment appends a comment by "caller" to a video and returns it with its user populated.
	AddComment(ctx context.Context, caller identity.Identity, id int, req *models.CommentRequest) (*models.Comment, error)
}

// VideoHandler handles video HTTP requests
type VideoHandler struct {
	BaseHandler
	videoService VideoService
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videoService VideoService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		BaseHandler:  newBaseHandler(logger),
		videoService: videoService,
	}
}

// RegisterRoutes registers all video handler routes
func (h *VideoHandler) RegisterRoutes(r chi.Router, guards Guards) {
	r.Route("/videos", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/categories/{slug}", h.ListByCategory)

		r.Group(func(r chi.Router) {
			r.Use(guards.Protect)
			r.Post("/{id}/comments", h.AddComment)

			r.Group(func(r chi.Router) {
				r.Use(authmw.Authorize(identity.RoleAdmin, identity.RoleCreator))
				r.Post("/", h.Create)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
			})
		})
	})
}

// List handles GET /api/videos
// @Summary List videos
// @Description Filters are conjunctive. Without status and author only published videos are listed.
// @Tags videos
// @Produce json
// @Param category query int false "Category ID"
// @Param tag query string false "Tag"
// @Param status query string false "processing, published or archived"
// @Param author query int false "Author ID"
// @Success 200 {object} ListResponse{data=[]models.Video}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/videos [get]
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.contentFilter(w, r)
	if !ok {
		return
	}

	videos, err := h.videoService.List(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to list videos")
		return
	}

	h.RespondList(w, len(videos), videos)
}

// ListByCategory handles GET /api/videos/categories/{slug}
// @Summary List published videos of a category
// @Tags videos
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} CategoryListResponse
// @Failure 404 {object} ErrorResponse "Category not found"
// @Router /api/videos/categories/{slug} [get]
func (h *VideoHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category, videos, err := h.videoService.ListByCategorySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.respondServiceError(w, r, err, "failed to list videos by category")
		return
	}

	h.RespondJSON(w, http.StatusOK, CategoryListResponse{Success: true, Count: len(videos), Data: videos, Category: category})
}

// Get handles GET /api/videos/{id}
// @Summary Get a video
// @Description Returns the video with its comments and increments its view count
// @Tags videos
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {object} DataResponse{data=models.Video}
// @Failure 404 {object} ErrorResponse "Video not found"
// @Router /api/videos/{id} [get]
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	video, err := h.videoService.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get video")
		return
	}

	h.RespondData(w, http.StatusOK, video)
}

// Create handles POST /api/videos
// @Summary Create a video
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.VideoRequest true "Video"
// @Success 201 {object} DataResponse{data=models.Video}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/videos [post]
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.VideoRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	video, err := h.videoService.Create(r.Context(), caller, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to create video")
		return
	}

	h.RespondData(w, http.StatusCreated, video)
}

// Update handles PUT /api/videos/{id}
// @Summary Update a video
// @Description Only the author or an admin may update a video
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Param request body models.UpdateVideoRequest true "Changed fields"
// @Success 200 {object} DataResponse{data=models.Video}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/videos/{id} [put]
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateVideoRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	video, err := h.videoService.Update(r.Context(), caller, id, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to update video")
		return
	}

	h.RespondData(w, http.StatusOK, video)
}

// Delete handles DELETE /api/videos/{id}
// @Summary Delete a video
// @Description Only the author or an admin may delete a video. Uploaded files are removed as well.
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} DataResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/videos/{id} [delete]
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.videoService.Delete(r.Context(), caller, id); err != nil {
		h.respondServiceError(w, r, err, "failed to delete video")
		return
	}

	h.RespondData(w, http.StatusOK, struct{}{})
}

// AddComment handles POST /api/videos/{id}/comments
// @Summary Comment on a video
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Param request body models.CommentRequest true "Comment"
// @Success 201 {object} DataResponse{data=models.Comment}
// @Failure 400 {object} ErrorResponse "Comment content is required"
// @Failure 404 {object} ErrorResponse
// @Router /api/videos/{id}/comments [post]
func (h *VideoHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CommentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.videoService.AddComment(r.Context(), caller, id, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to add video comment")
		return
	}

	h.RespondData(w, http.StatusCreated, comment)
}
