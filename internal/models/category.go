package models

import "time"

// ContentType enumerates what kind of content a category groups
type ContentType string

const (
	ContentTypeBlog  ContentType = "blog"
	ContentTypeVideo ContentType = "video"
	ContentTypeBoth  ContentType = "both"
)

// Category groups blog posts and videos
type Category struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	Description      string           `json:"description,omitempty"`
	ParentCategoryID *int             `json:"-"`
	ParentCategory   *CategorySummary `json:"parentCategory,omitempty"`
	ContentType      ContentType      `json:"contentType"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// CategorySummary is the populated form of a category reference
type CategorySummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name             string `json:"name" validate:"notblank,max=100"`
	Slug             string `json:"slug" validate:"max=120"`
	Description      string `json:"description" validate:"max=1000"`
	ParentCategoryID *int   `json:"parentCategory" validate:"omitempty,gt=0"`
	ContentType      string `json:"contentType" validate:"omitempty,oneof=blog video both"`
}

// UpdateCategoryRequest represents a partial category update. Nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Name             *string `json:"name" validate:"omitempty,notblank,max=100"`
	Slug             *string `json:"slug" validate:"omitempty,max=120"`
	Description      *string `json:"description" validate:"omitempty,max=1000"`
	ParentCategoryID *int    `json:"parentCategory" validate:"omitempty,gt=0"`
	ContentType      *string `json:"contentType" validate:"omitempty,oneof=blog video both"`
}
