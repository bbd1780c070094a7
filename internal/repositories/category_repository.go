package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promiseroad/backend/internal/models"
	"go.uber.org/zap"
)

const categorySelect = `
	SELECT c.id, c.name, c.slug, COALESCE(c.description, ''), c.parent_category_id, c.content_type,
		c.created_at, c.updated_at, p.id, p.name, p.slug
	FROM categories c
	LEFT JOIN categories p ON p.id = c.parent_category_id
`

// categoryRepository implements CategoryRepository
type categoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB, logger *zap.Logger) *categoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

func scanCategory(row rowScanner) (*models.Category, error) {
	category := &models.Category{}
	var parentID sql.NullInt64
	var parentRefID sql.NullInt64
	var parentName, parentSlug sql.NullString

	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&parentID,
		&category.ContentType,
		&category.CreatedAt,
		&category.UpdatedAt,
		&parentRefID,
		&parentName,
		&parentSlug,
	)
	if err != nil {
		return nil, err
	}

	category.ParentCategoryID = intPtr(parentID)
	if parentRefID.Valid {
		category.ParentCategory = &models.CategorySummary{
			ID:   int(parentRefID.Int64),
			Name: parentName.String,
			Slug: parentSlug.String,
		}
	}

	return category, nil
}

// GetAll retrieves categories sorted by name.
// A non-empty contentType matches that exact type or "both".
func (r *categoryRepository) GetAll(ctx context.Context, contentType string) ([]models.Category, error) {
	query := categorySelect
	var args []any
	if contentType != "" {
		query += ` WHERE c.content_type IN (?, ?)`
		args = append(args, contentType, models.ContentTypeBoth)
	}
	query += ` ORDER BY c.name, c.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query categories", zap.Error(err))
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			r.logger.Error("failed to scan category", zap.Error(err))
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a category by id
func (r *categoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	category, err := scanCategory(r.db.QueryRowContext(ctx, categorySelect+` WHERE c.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("Category not found")
	}
	if err != nil {
		r.logger.Error("failed to get category by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return category, nil
}

// GetBySlug retrieves a category by slug
func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := scanCategory(r.db.QueryRowContext(ctx, categorySelect+` WHERE c.slug = ?`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("Category not found")
	}
	if err != nil {
		r.logger.Error("failed to get category by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return category, nil
}

// CountExisting returns how many of the given ids name existing categories
func (r *categoryRepository) CountExisting(ctx context.Context, ids []int) (int, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM categories WHERE id IN (%s)`, placeholders(len(ids)))

	var count int
	if err := r.db.QueryRowContext(ctx, query, intArgs(ids)...).Scan(&count); err != nil {
		r.logger.Error("failed to count categories", zap.Error(err))
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}

	return count, nil
}

// Create inserts a new category
func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, description, parent_category_id, content_type)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		category.Name, category.Slug, category.Description, nullableInt(category.ParentCategoryID), category.ContentType)
	if err != nil {
		if isDuplicateKey(err) {
			return &models.Error{Kind: models.ErrDuplicateSlug, Message: "Category with this slug already exists"}
		}
		r.logger.Error("failed to create category", zap.Error(err))
		return fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	category.ID = int(id)
	return nil
}

// Update overwrites every editable column of the category
func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = ?, slug = ?, description = ?, parent_category_id = ?, content_type = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		category.Name, category.Slug, category.Description, nullableInt(category.ParentCategoryID),
		category.ContentType, category.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return &models.Error{Kind: models.ErrDuplicateSlug, Message: "Category with this slug already exists"}
		}
		r.logger.Error("failed to update category", zap.Error(err), zap.Int("id", category.ID))
		return fmt.Errorf("failed to update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFound("Category not found")
	}

	return nil
}

// Delete removes a category. Children keep existing with a NULL parent.
func (r *categoryRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete category", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFound("Category not found")
	}

	return nil
}
