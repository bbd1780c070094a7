package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/promiseroad/backend/internal/models"
	"go.uber.org/zap"
)

const blogPostSelect = `
	SELECT bp.id, bp.title, bp.content, bp.featured_image, bp.author_id, bp.tags, bp.scripture_references,
		bp.status, bp.publish_date, bp.view_count, bp.created_at, bp.updated_at,
		u.id, u.username, u.first_name, u.last_name, u.profile_image
	FROM blog_posts bp
	JOIN users u ON u.id = bp.author_id
`

// blogPostRepository implements BlogPostRepository
type blogPostRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBlogPostRepository creates a new blog post repository
func NewBlogPostRepository(db *sql.DB, logger *zap.Logger) *blogPostRepository {
	return &blogPostRepository{
		db:     db,
		logger: logger,
	}
}

func scanBlogPost(row rowScanner) (*models.BlogPost, error) {
	post := &models.BlogPost{Author: &models.UserSummary{}}
	var tags, references []byte
	var publishDate sql.NullTime

	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.FeaturedImage,
		&post.AuthorID,
		&tags,
		&references,
		&post.Status,
		&publishDate,
		&post.ViewCount,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Author.ID,
		&post.Author.Username,
		&post.Author.FirstName,
		&post.Author.LastName,
		&post.Author.ProfileImage,
	)
	if err != nil {
		return nil, err
	}

	if post.Tags, err = unmarshalJSONColumn[string](tags); err != nil {
		return nil, err
	}
	if post.ScriptureReferences, err = unmarshalJSONColumn[models.ScriptureReference](references); err != nil {
		return nil, err
	}
	post.PublishDate = timePtr(publishDate)

	return post, nil
}

// GetAll retrieves blog posts matching every set filter, newest first
func (r *blogPostRepository) GetAll(ctx context.Context, filter models.ContentFilter) ([]models.BlogPost, error) {
	whereClauses := []string{}
	args := []any{}

	if filter.CategoryID != 0 {
		whereClauses = append(whereClauses, "bp.id IN (SELECT blog_post_id FROM blog_post_categories WHERE category_id = ?)")
		args = append(args, filter.CategoryID)
	}
	if filter.Tag != "" {
		whereClauses = append(whereClauses, "JSON_CONTAINS(bp.tags, JSON_QUOTE(?))")
		args = append(args, filter.Tag)
	}
	if filter.Status != "" {
		whereClauses = append(whereClauses, "bp.status = ?")
		args = append(args, filter.Status)
	}
	if filter.AuthorID != 0 {
		whereClauses = append(whereClauses, "bp.author_id = ?")
		args = append(args, filter.AuthorID)
	}

	query := blogPostSelect
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY bp.created_at DESC, bp.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query blog posts", zap.Error(err))
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	ids := []int{}
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			r.logger.Error("failed to scan blog post", zap.Error(err))
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, *post)
		ids = append(ids, post.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog posts: %w", err)
	}

	categories, err := blogPostCategoryLinks.load(ctx, r.db, ids)
	if err != nil {
		r.logger.Error("failed to load blog post categories", zap.Error(err))
		return nil, err
	}
	for i := range posts {
		posts[i].Categories = nonNilCategories(categories[posts[i].ID])
	}

	return posts, nil
}

// GetByID retrieves a blog post with its author and categories
func (r *blogPostRepository) GetByID(ctx context.Context, id int) (*models.BlogPost, error) {
	post, err := scanBlogPost(r.db.QueryRowContext(ctx, blogPostSelect+" WHERE bp.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("Blog post not found")
	}
	if err != nil {
		r.logger.Error("failed to get blog post", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}

	categories, err := blogPostCategoryLinks.load(ctx, r.db, []int{post.ID})
	if err != nil {
		r.logger.Error("failed to load blog post categories", zap.Error(err))
		return nil, err
	}
	post.Categories = nonNilCategories(categories[post.ID])
	post.CategoryIDs = categoryIDs(post.Categories)

	return post, nil
}

// IncrementViewCount atomically adds one view to the blog post
func (r *blogPostRepository) IncrementViewCount(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE blog_posts SET view_count = view_count + 1 WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to increment blog post views", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to increment blog post views: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFound("Blog post not found")
	}

	return nil
}

// Create inserts a blog post together with its category links
func (r *blogPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	tags, err := marshalJSONColumn(post.Tags)
	if err != nil {
		return err
	}
	references, err := marshalJSONColumn(post.ScriptureReferences)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO blog_posts (title, content, featured_image, author_id, tags, scripture_references, status, publish_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query,
		post.Title, post.Content, post.FeaturedImage, post.AuthorID, tags, references, post.Status, nullableTime(post.PublishDate))
	if err != nil {
		r.logger.Error("failed to create blog post", zap.Error(err))
		return fmt.Errorf("failed to create blog post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := blogPostCategoryLinks.insert(ctx, tx, int(id), uniqueIDs(post.CategoryIDs)); err != nil {
		r.logger.Error("failed to link blog post categories", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	post.ID = int(id)
	return nil
}

// Update overwrites the editable columns and category links of the blog post
func (r *blogPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	tags, err := marshalJSONColumn(post.Tags)
	if err != nil {
		return err
	}
	references, err := marshalJSONColumn(post.ScriptureReferences)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE blog_posts
		SET title = ?, content = ?, featured_image = ?, tags = ?, scripture_references = ?, status = ?, publish_date = ?
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, query,
		post.Title, post.Content, post.FeaturedImage, tags, references, post.Status, nullableTime(post.PublishDate), post.ID)
	if err != nil {
		r.logger.Error("failed to update blog post", zap.Error(err), zap.Int("id", post.ID))
		return fmt.Errorf("failed to update blog post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFound("Blog post not found")
	}

	if err := blogPostCategoryLinks.replace(ctx, tx, post.ID, uniqueIDs(post.CategoryIDs)); err != nil {
		r.logger.Error("failed to relink blog post categories", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes a blog post. Links and comments are removed with it.
func (r *blogPostRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE content_type = ? AND content_id = ?`,
		models.CommentTargetBlog, id); err != nil {
		r.logger.Error("failed to delete blog post comments", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete blog post comments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete blog post", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFound("Blog post not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func nonNilCategories(categories []models.CategorySummary) []models.CategorySummary {
	if categories == nil {
		return []models.CategorySummary{}
	}
	return categories
}

func categoryIDs(categories []models.CategorySummary) []int {
	ids := make([]int, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}
