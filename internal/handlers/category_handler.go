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

// CategoryService is the interface that wraps methods for Categories business logic.
type CategoryService interface {
	// Method List retrieves categories sorted by name.
	//
	// "contentType" parameter keeps categories of that type or of type "both", empty value keeps all.
	// If the content type is unknown, a validation error will be returned.
	List(ctx context.Context, contentType string) ([]models.Category, error)
	// Method Get retrieves a category with its parent summary.
	Get(ctx context.Context, id int) (*models.Category, error)
	// Method Create stores a new category, deriving the slug from the name when it is omitted.
	//
	// If the slug is taken, a duplicate slug error will be returned together with "nil" value.
	Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	// Method Update applies a partial update. A new name without a slug regenerates the slug.
	Update(ctx context.Context, id int, req *models.UpdateCategoryRequest) (*models.Category, error)
	// Method Delete removes a category. Its children lose their parent.
	Delete(ctx context.Context, id int) error
}

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	BaseHandler
	categoryService CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     newBaseHandler(logger),
		categoryService: categoryService,
	}
}

// RegisterRoutes registers all category handler routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router, guards Guards) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(guards.Protect, authmw.Authorize(identity.RoleAdmin))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles GET /api/categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Param contentType query string false "blog, video or both"
// @Success 200 {object} ListResponse{data=[]models.Category}
// @Failure 400 {object} ErrorResponse
// @Router /api/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context(), r.URL.Query().Get("contentType"))
	if err != nil {
		h.respondServiceError(w, r, err, "failed to list categories")
		return
	}

	h.RespondList(w, len(categories), categories)
}

// Get handles GET /api/categories/{id}
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} DataResponse{data=models.Category}
// @Failure 404 {object} ErrorResponse "Category not found"
// @Router /api/categories/{id} [get]
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get category")
		return
	}

	h.RespondData(w, http.StatusOK, category)
}

// Create handles POST /api/categories
// @Summary Create a category
// @Description Admin only. The slug is derived from the name when omitted.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCategoryRequest true "Category"
// @Success 201 {object} DataResponse{data=models.Category}
// @Failure 400 {object} ErrorResponse "Validation failed or slug already exists"
// @Failure 403 {object} ErrorResponse
// @Router /api/categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	category, err := h.categoryService.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to create category")
		return
	}

	h.RespondData(w, http.StatusCreated, category)
}

// Update handles PUT /api/categories/{id}
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body models.UpdateCategoryRequest true "Changed fields"
// @Success 200 {object} DataResponse{data=models.Category}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateCategoryRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	category, err := h.categoryService.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to update category")
		return
	}

	h.RespondData(w, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id}
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err, "failed to delete category")
		return
	}

	h.RespondData(w, http.StatusOK, struct{}{})
}
