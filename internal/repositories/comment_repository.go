package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promiseroad/backend/internal/models"
	"go.uber.org/zap"
)

const commentSelect = `
	SELECT c.id, c.content_type, c.content_id, c.user_id, c.content, c.created_at,
		u.id, u.username, u.first_name, u.last_name, u.profile_image
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

// commentRepository implements CommentRepository
type commentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB, logger *zap.Logger) *commentRepository {
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

func scanComment(row rowScanner) (*models.Comment, error) {
	comment := &models.Comment{User: &models.UserSummary{}}
	err := row.Scan(
		&comment.ID,
		&comment.TargetType,
		&comment.TargetID,
		&comment.UserID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.User.ID,
		&comment.User.Username,
		&comment.User.FirstName,
		&comment.User.LastName,
		&comment.User.ProfileImage,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// Create appends a comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (content_type, content_id, user_id, content) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, comment.TargetType, comment.TargetID, comment.UserID, comment.Content)
	if err != nil {
		r.logger.Error("failed to create comment", zap.Error(err))
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	comment.ID = int(id)
	return nil
}

// GetByID retrieves a comment with its author
func (r *commentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	comment, err := scanComment(r.db.QueryRowContext(ctx, commentSelect+" WHERE c.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("Comment not found")
	}
	if err != nil {
		r.logger.Error("failed to get comment", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// ListByTarget retrieves the comments of one blog post or video in insertion order
func (r *commentRepository) ListByTarget(ctx context.Context, target models.CommentTarget, targetID int) ([]models.Comment, error) {
	query := commentSelect + " WHERE c.content_type = ? AND c.content_id = ? ORDER BY c.id"

	rows, err := r.db.QueryContext(ctx, query, target, targetID)
	if err != nil {
		r.logger.Error("failed to query comments", zap.Error(err))
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}
