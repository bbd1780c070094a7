package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/libs/validation"
)

var (
	// richTextPolicy keeps formatting markup of authored content and drops scripts, handlers and unsafe URLs
	richTextPolicy = bluemonday.UGCPolicy()
	// plainTextPolicy strips every tag from short user input such as comments
	plainTextPolicy = bluemonday.StrictPolicy()
)

// CategoryLookup is the interface that wraps the category queries shared by content services
type CategoryLookup interface {
	// Method GetBySlug retrieves a category by its slug.
	//
	// "slug" parameter is used to find the category.
	//
	// If the category does not exist, a not found error will be returned together with "nil" value.
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	// Method CountExisting counts how many of the given ids reference existing categories.
	//
	// "ids" parameter may contain duplicates, they are counted once.
	CountExisting(ctx context.Context, ids []int) (int, error)
}

// CommentRepository is the interface that wraps methods for Comments table data access
type CommentRepository interface {
	// Method Create appends a comment and sets its ID.
	Create(ctx context.Context, comment *models.Comment) error
	// Method GetByID retrieves a comment together with its author.
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	// Method ListByTarget retrieves every comment of a blog post or a video in insertion order.
	//
	// "target" and "targetID" parameters identify the commented content.
	ListByTarget(ctx context.Context, target models.CommentTarget, targetID int) ([]models.Comment, error)
}

// validate runs the struct tag rules of req and returns a ValidationError listing every failure
func validate(req any) error {
	return models.NewValidationError(validation.Default().Messages(req)...)
}

// checkCategories verifies that every referenced category exists
func checkCategories(ctx context.Context, lookup CategoryLookup, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	unique := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	count, err := lookup.CountExisting(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check categories: %w", err)
	}
	if count != len(unique) {
		return models.NewValidationError("categories must reference existing categories")
	}

	return nil
}

// cleanTags trims every tag and drops empty ones
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// publishTime returns the publish date to store after a status change.
// It is set to now only when the content enters the published state.
func publishTime(current *time.Time, wasPublished, isPublished bool) *time.Time {
	if isPublished && !wasPublished {
		t := time.Now().UTC()
		return &t
	}
	return current
}

// sanitizeComment trims the comment and removes any markup
func sanitizeComment(content string) string {
	return strings.TrimSpace(plainTextPolicy.Sanitize(strings.TrimSpace(content)))
}
