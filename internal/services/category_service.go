package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/promiseroad/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CategoryRepository is the interface that wraps methods for Categories table data access
type CategoryRepository interface {
	CategoryLookup
	// Method GetAll retrieves categories sorted by name.
	//
	// "contentType" parameter, when not empty, keeps categories of that type or of type "both".
	GetAll(ctx context.Context, contentType string) ([]models.Category, error)
	// Method GetByID retrieves a category with its parent summary.
	//
	// If category with such ID does not exist, a not found error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Category, error)
	// Method Create inserts a category and sets its ID.
	//
	// If the slug is taken, a duplicate slug error will be returned.
	Create(ctx context.Context, category *models.Category) error
	// Method Update overwrites the editable fields of the category.
	//
	// If the slug is taken, a duplicate slug error will be returned.
	Update(ctx context.Context, category *models.Category) error
	// Method Delete removes a category, its children lose their parent.
	Delete(ctx context.Context, id int) error
}

// maxCategoryDepth bounds the parent chain walked when checking for cycles
const maxCategoryDepth = 32

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify folds accents, lowercases s and joins its alphanumeric runs with "-"
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	slug := slugSeparators.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(slug, "-")
}

// categoryService implements CategoryService
type categoryService struct {
	repo   CategoryRepository
	logger *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(repo CategoryRepository, logger *zap.Logger) *categoryService {
	return &categoryService{
		repo:   repo,
		logger: logger,
	}
}

// List retrieves categories, optionally limited to a content type
func (s *categoryService) List(ctx context.Context, contentType string) ([]models.Category, error) {
	switch models.ContentType(contentType) {
	case "", models.ContentTypeBlog, models.ContentTypeVideo, models.ContentTypeBoth:
	default:
		return nil, models.NewValidationError("contentType must be one of [blog video both]")
	}

	categories, err := s.repo.GetAll(ctx, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

// Get retrieves a category by id
func (s *categoryService) Get(ctx context.Context, id int) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new category. The slug is derived from the name when omitted.
func (s *categoryService) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	slug, err := categorySlug(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ParentCategoryID != nil {
		if err := s.checkParent(ctx, 0, *req.ParentCategoryID); err != nil {
			return nil, err
		}
	}

	contentType := models.ContentTypeBoth
	if req.ContentType != "" {
		contentType = models.ContentType(req.ContentType)
	}

	category := &models.Category{
		Name:             req.Name,
		Slug:             slug,
		Description:      strings.TrimSpace(req.Description),
		ParentCategoryID: req.ParentCategoryID,
		ContentType:      contentType,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", zap.Int("id", category.ID), zap.String("slug", slug))
	return s.repo.GetByID(ctx, category.ID)
}

// Update applies a partial update. A new name without a slug regenerates the slug.
func (s *categoryService) Update(ctx context.Context, id int, req *models.UpdateCategoryRequest) (*models.Category, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	switch {
	case req.Slug != nil && strings.TrimSpace(*req.Slug) != "":
		if category.Slug, err = categorySlug(*req.Slug, category.Name); err != nil {
			return nil, err
		}
	case req.Name != nil:
		if category.Slug, err = categorySlug("", category.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}
	if req.ContentType != nil {
		category.ContentType = models.ContentType(*req.ContentType)
	}
	if req.ParentCategoryID != nil {
		if err := s.checkParent(ctx, id, *req.ParentCategoryID); err != nil {
			return nil, err
		}
		category.ParentCategoryID = req.ParentCategoryID
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes a category
func (s *categoryService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("category deleted", zap.Int("id", id))
	return nil
}

// checkParent verifies that parentID exists and that linking it to id creates no cycle.
// id is zero for categories that do not exist yet.
func (s *categoryService) checkParent(ctx context.Context, id, parentID int) error {
	if id != 0 && parentID == id {
		return models.NewValidationError("parentCategory cannot be the category itself")
	}

	next := &parentID
	for depth := 0; next != nil && depth < maxCategoryDepth; depth++ {
		parent, err := s.repo.GetByID(ctx, *next)
		if errors.Is(err, models.ErrNotFound) {
			if *next == parentID {
				return models.NewValidationError("parentCategory must reference an existing category")
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to check parent category: %w", err)
		}
		if id != 0 && parent.ParentCategoryID != nil && *parent.ParentCategoryID == id {
			return models.NewValidationError("parentCategory cannot be a descendant of the category")
		}
		next = parent.ParentCategoryID
	}

	return nil
}

// categorySlug normalizes the requested slug or derives one from name
func categorySlug(requested, name string) (string, error) {
	source := requested
	if strings.TrimSpace(source) == "" {
		source = name
	}

	slug := Slugify(source)
	if slug == "" {
		return "", models.NewValidationError("slug must contain at least one letter or digit")
	}
	return slug, nil
}
