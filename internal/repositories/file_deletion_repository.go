package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/promiseroad/backend/internal/models"
	"go.uber.org/zap"
)

// fileDeletionRepository implements FileDeletionRepository
type fileDeletionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFileDeletionRepository creates a new file deletion repository
func NewFileDeletionRepository(db *sql.DB, logger *zap.Logger) *fileDeletionRepository {
	return &fileDeletionRepository{
		db:     db,
		logger: logger,
	}
}

// GetPending retrieves at most limit scheduled deletions, oldest first
func (r *fileDeletionRepository) GetPending(ctx context.Context, limit int) ([]models.FileDeletion, error) {
	query := `SELECT id, path, created_at FROM file_deletions ORDER BY id LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("failed to query file deletions", zap.Error(err))
		return nil, fmt.Errorf("failed to query file deletions: %w", err)
	}
	defer rows.Close()

	deletions := []models.FileDeletion{}
	for rows.Next() {
		var d models.FileDeletion
		if err := rows.Scan(&d.ID, &d.Path, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file deletion: %w", err)
		}
		deletions = append(deletions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file deletions: %w", err)
	}

	return deletions, nil
}

// DeleteByIDs removes handled deletions and returns how many rows were removed
func (r *fileDeletionRepository) DeleteByIDs(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM file_deletions WHERE id IN (%s)`, placeholders(len(ids)))

	result, err := r.db.ExecContext(ctx, query, intArgs(ids)...)
	if err != nil {
		r.logger.Error("failed to delete file deletions", zap.Error(err))
		return 0, fmt.Errorf("failed to delete file deletions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
