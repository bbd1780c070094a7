package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/libs/auth/identity"
	"go.uber.org/zap"
)

// BlogPostRepository is the interface that wraps methods for BlogPosts table data access
type BlogPostRepository interface {
	// Method GetAll retrieves blog posts with author and category summaries.
	//
	// "filter" parameter is used to narrow the result, every non-zero field must match.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	GetAll(ctx context.Context, filter models.ContentFilter) ([]models.BlogPost, error)
	// Method GetByID retrieves a blog post with author and category summaries.
	//
	// If blog post with such ID does not exist, a not found error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.BlogPost, error)
	// Method IncrementViewCount atomically adds one view to the blog post.
	//
	// If blog post with such ID does not exist, a not found error will be returned.
	IncrementViewCount(ctx context.Context, id int) error
	// Method Create inserts the blog post and its category links, then sets its ID.
	Create(ctx context.Context, post *models.BlogPost) error
	// Method Update overwrites the editable fields and category links of the blog post.
	Update(ctx context.Context, post *models.BlogPost) error
	// Method Delete removes the blog post together with its comments.
	Delete(ctx context.Context, id int) error
}

// blogService implements BlogService
type blogService struct {
	repo       BlogPostRepository
	comments   CommentRepository
	categories CategoryLookup
	logger     *zap.Logger
}

// NewBlogService creates a new blog post service
func NewBlogService(repo BlogPostRepository, comments CommentRepository, categories CategoryLookup, logger *zap.Logger) *blogService {
	return &blogService{
		repo:       repo,
		comments:   comments,
		categories: categories,
		logger:     logger,
	}
}

// List retrieves blog posts matching the filter.
// Without a status or author filter only published posts are listed.
func (s *blogService) List(ctx context.Context, filter models.ContentFilter) ([]models.BlogPost, error) {
	if filter.Status == "" && filter.AuthorID == 0 {
		filter.Status = string(models.BlogStatusPublished)
	}

	posts, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog posts: %w", err)
	}

	return posts, nil
}

// ListByCategorySlug retrieves the published posts of the category named by slug
func (s *blogService) ListByCategorySlug(ctx context.Context, slug string) (*models.Category, []models.BlogPost, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.repo.GetAll(ctx, models.ContentFilter{
		CategoryID: category.ID,
		Status:     string(models.BlogStatusPublished),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get blog posts by category: %w", err)
	}

	return category, posts, nil
}

// Get counts a view and returns the blog post with its comments
func (s *blogService) Get(ctx context.Context, id int) (*models.BlogPost, error) {
	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByTarget(ctx, models.CommentTargetBlog, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog post comments: %w", err)
	}
	post.Comments = comments

	return post, nil
}

// Create stores a new blog post authored by the caller
func (s *blogService) Create(ctx context.Context, caller identity.Identity, req *models.BlogPostRequest) (*models.BlogPost, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := checkCategories(ctx, s.categories, req.Categories); err != nil {
		return nil, err
	}

	status := models.BlogStatusDraft
	if req.Status != "" {
		status = models.BlogStatus(req.Status)
	}

	post := &models.BlogPost{
		Title:               req.Title,
		Content:             richTextPolicy.Sanitize(req.Content),
		FeaturedImage:       strings.TrimSpace(req.FeaturedImage),
		AuthorID:            caller.UserID,
		CategoryIDs:         req.Categories,
		Tags:                cleanTags(req.Tags),
		ScriptureReferences: req.ScriptureReferences,
		Status:              status,
	}
	post.PublishDate = publishTime(nil, false, status == models.BlogStatusPublished)

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("blog post created", zap.Int("id", post.ID), zap.Int("authorId", caller.UserID))
	return s.repo.GetByID(ctx, post.ID)
}

// Update applies a partial update to a blog post owned by the caller, or any post for admins
func (s *blogService) Update(ctx context.Context, caller identity.Identity, id int, req *models.UpdateBlogPostRequest) (*models.BlogPost, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanManage(post.AuthorID) {
		return nil, models.Forbidden("Not authorized to update this blog post")
	}

	if req.Categories != nil {
		if err := checkCategories(ctx, s.categories, *req.Categories); err != nil {
			return nil, err
		}
		post.CategoryIDs = *req.Categories
	}
	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		post.Content = richTextPolicy.Sanitize(*req.Content)
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = strings.TrimSpace(*req.FeaturedImage)
	}
	if req.Tags != nil {
		post.Tags = cleanTags(*req.Tags)
	}
	if req.ScriptureReferences != nil {
		post.ScriptureReferences = *req.ScriptureReferences
	}
	if req.Status != nil {
		wasPublished := post.Status == models.BlogStatusPublished
		post.Status = models.BlogStatus(*req.Status)
		post.PublishDate = publishTime(post.PublishDate, wasPublished, post.Status == models.BlogStatusPublished)
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes a blog post owned by the caller, or any post for admins
func (s *blogService) Delete(ctx context.Context, caller identity.Identity, id int) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanManage(post.AuthorID) {
		return models.Forbidden("Not authorized to delete this blog post")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blog post deleted", zap.Int("id", id), zap.Int("callerId", caller.UserID))
	return nil
}

// AddComment appends a comment of the caller to a blog post and returns it with its author
func (s *blogService) AddComment(ctx context.Context, caller identity.Identity, id int, req *models.CommentRequest) (*models.Comment, error) {
	content := sanitizeComment(req.Content)
	if content == "" {
		return nil, models.BadRequest("Comment content is required")
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TargetType: models.CommentTargetBlog,
		TargetID:   id,
		UserID:     caller.UserID,
		Content:    content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.comments.GetByID(ctx, comment.ID)
}
