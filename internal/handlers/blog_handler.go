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

// BlogService is the interface that wraps methods for BlogPosts business logic.
type BlogService interface {
	// Method List retrieves blog posts matching every non-empty field of "filter".
	//
	// Without status and author filters only published posts are returned.
	List(ctx context.Context, filter models.ContentFilter) ([]models.BlogPost, error)
	// Method ListByCategorySlug retrieves the category with "slug" and its published posts.
	//
	// If category with such slug does not exist, a not found error will be returned.
	ListByCategorySlug(ctx context.Context, slug string) (*models.Category, []models.BlogPost, error)
	// Method Get increments the view count of a post and returns it with its comments.
	//
	// If post with such ID does not exist, a not found error will be returned together with "nil" value.
	Get(ctx context.Context, id int) (*models.BlogPost, error)
	// Method Create stores a new post authored by "caller".
	Create(ctx context.Context, caller identity.Identity, req *models.BlogPostRequest) (*models.BlogPost, error)
	// Method Update applies a partial update to a post of "caller", or any post for admins.
	Update(ctx context.Context, caller identity.Identity, id int, req *models.UpdateBlogPostRequest) (*models.BlogPost, error)
	// Method Delete removes a post of "caller", or any post for admins, together with its comments.
	Delete(ctx context.Context, caller identity.Identity, id int) error
	// Method AddComment appends a comment by "caller" to a post and returns it with its user populated.
	AddComment(ctx context.Context, caller identity.Identity, id int, req *models.CommentRequest) (*models.Comment, error)
}

// CategoryListResponse is the body of listings scoped to a category
type CategoryListResponse struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Data     any              `json:"data"`
	Category *models.Category `json:"category"`
}

// BlogHandler handles blog post HTTP requests
type BlogHandler struct {
	BaseHandler
	blogService BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		BaseHandler: newBaseHandler(logger),
		blogService: blogService,
	}
}

// RegisterRoutes registers all blog handler routes
func (h *BlogHandler) RegisterRoutes(r chi.Router, guards Guards) {
	r.Route("/blogs", func(r chi.Router) {
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

// List handles GET /api/blogs
// @Summary List blog posts
// @Description Filters are conjunctive. Without status and author only published posts are listed.
// @Tags blogs
// @Produce json
// @Param category query int false "Category ID"
// @Param tag query string false "Tag"
// @Param status query string false "draft, published or archived"
// @Param author query int false "Author ID"
// @Success 200 {object} ListResponse{data=[]models.BlogPost}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/blogs [get]
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.contentFilter(w, r)
	if !ok {
		return
	}

	posts, err := h.blogService.List(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to list blog posts")
		return
	}

	h.RespondList(w, len(posts), posts)
}

// ListByCategory handles GET /api/blogs/categories/{slug}
// @Summary List published blog posts of a category
// @Tags blogs
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} CategoryListResponse
// @Failure 404 {object} ErrorResponse "Category not found"
// @Router /api/blogs/categories/{slug} [get]
func (h *BlogHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category, posts, err := h.blogService.ListByCategorySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.respondServiceError(w, r, err, "failed to list blog posts by category")
		return
	}

	h.RespondJSON(w, http.StatusOK, CategoryListResponse{Success: true, Count: len(posts), Data: posts, Category: category})
}

// Get handles GET /api/blogs/{id}
// @Summary Get a blog post
// @Description Returns the post with its comments and increments its view count
// @Tags blogs
// @Produce json
// @Param id path int true "Blog post ID"
// @Success 200 {object} DataResponse{data=models.BlogPost}
// @Failure 404 {object} ErrorResponse "Blog post not found"
// @Router /api/blogs/{id} [get]
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.blogService.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get blog post")
		return
	}

	h.RespondData(w, http.StatusOK, post)
}

// Create handles POST /api/blogs
// @Summary Create a blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.BlogPostRequest true "Blog post"
// @Success 201 {object} DataResponse{data=models.BlogPost}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/blogs [post]
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.BlogPostRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.blogService.Create(r.Context(), caller, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to create blog post")
		return
	}

	h.RespondData(w, http.StatusCreated, post)
}

// Update handles PUT /api/blogs/{id}
// @Summary Update a blog post
// @Description Only the author or an admin may update a post
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blog post ID"
// @Param request body models.UpdateBlogPostRequest true "Changed fields"
// @Success 200 {object} DataResponse{data=models.BlogPost}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/blogs/{id} [put]
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateBlogPostRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.blogService.Update(r.Context(), caller, id, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to update blog post")
		return
	}

	h.RespondData(w, http.StatusOK, post)
}

// Delete handles DELETE /api/blogs/{id}
// @Summary Delete a blog post
// @Description Only the author or an admin may delete a post
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blog post ID"
// @Success 200 {object} DataResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/blogs/{id} [delete]
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.blogService.Delete(r.Context(), caller, id); err != nil {
		h.respondServiceError(w, r, err, "failed to delete blog post")
		return
	}

	h.RespondData(w, http.StatusOK, struct{}{})
}

// AddComment handles POST /api/blogs/{id}/comments
// @Summary Comment on a blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blog post ID"
// @Param request body models.CommentRequest true "Comment"
// @Success 201 {object} DataResponse{data=models.Comment}
// @Failure 400 {object} ErrorResponse "Comment content is required"
// @Failure 404 {object} ErrorResponse
// @Router /api/blogs/{id}/comments [post]
func (h *BlogHandler) AddComment(w http.ResponseWriter, r *http.Request) {
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

	comment, err := h.blogService.AddComment(r.Context(), caller, id, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to add blog comment")
		return
	}

	h.RespondData(w, http.StatusCreated, comment)
}

// contentFilter reads the list filters shared by blog posts and videos
func (h *BaseHandler) contentFilter(w http.ResponseWriter, r *http.Request) (models.ContentFilter, bool) {
	categoryID, ok := h.queryID(w, r, "category")
	if !ok {
		return models.ContentFilter{}, false
	}
	authorID, ok := h.queryID(w, r, "author")
	if !ok {
		return models.ContentFilter{}, false
	}

	query := r.URL.Query()
	return models.ContentFilter{
		CategoryID: categoryID,
		Tag:        query.Get("tag"),
		Status:     query.Get("status"),
		AuthorID:   authorID,
	}, true
}
