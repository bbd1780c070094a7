package models

import "time"

// BlogStatus enumerates the publication states of a blog post
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusArchived  BlogStatus = "archived"
)

// ScriptureReference points at a bible passage quoted by a post
type ScriptureReference struct {
	Book        string `json:"book" validate:"notblank"`
	Chapter     int    `json:"chapter" validate:"required,gt=0"`
	Verse       string `json:"verse" validate:"notblank"`
	Translation string `json:"translation" validate:"notblank"`
	Text        string `json:"text" validate:"notblank"`
}

// BlogPost represents a blog post
type BlogPost struct {
	ID                  int                  `json:"id"`
	Title               string               `json:"title"`
	Content             string               `json:"content"`
	FeaturedImage       string               `json:"featuredImage,omitempty"`
	AuthorID            int                  `json:"-"`
	Author              *UserSummary         `json:"author,omitempty"`
	CategoryIDs         []int                `json:"-"`
	Categories          []CategorySummary    `json:"categories"`
	Tags                []string             `json:"tags"`
	ScriptureReferences []ScriptureReference `json:"scriptureReferences"`
	Status              BlogStatus           `json:"status"`
	PublishDate         *time.Time           `json:"publishDate,omitempty"`
	ViewCount           int                  `json:"viewCount"`
	Comments            []Comment            `json:"comments,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// BlogPostRequest is the body of blog post creation. Author is never taken from the body.
type BlogPostRequest struct {
	Title               string               `json:"title" validate:"notblank,max=200"`
	Content             string               `json:"content" validate:"notblank"`
	FeaturedImage       string               `json:"featuredImage" validate:"max=500"`
	Categories          []int                `json:"categories" validate:"dive,gt=0"`
	Tags                []string             `json:"tags" validate:"max=30,dive,notblank,max=50"`
	ScriptureReferences []ScriptureReference `json:"scriptureReferences" validate:"dive"`
	Status              string               `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// UpdateBlogPostRequest is a partial blog post update. Nil fields are left unchanged.
type UpdateBlogPostRequest struct {
	Title               *string               `json:"title" validate:"omitempty,notblank,max=200"`
	Content             *string               `json:"content" validate:"omitempty,notblank"`
	FeaturedImage       *string               `json:"featuredImage" validate:"omitempty,max=500"`
	Categories          *[]int                `json:"categories" validate:"omitempty,dive,gt=0"`
	Tags                *[]string             `json:"tags" validate:"omitempty,max=30,dive,notblank,max=50"`
	ScriptureReferences *[]ScriptureReference `json:"scriptureReferences" validate:"omitempty,dive"`
	Status              *string               `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// ContentFilter holds the conjunctive list filters shared by blog posts and videos
type ContentFilter struct {
	CategoryID int
	Tag        string
	Status     string
	AuthorID   int
}
