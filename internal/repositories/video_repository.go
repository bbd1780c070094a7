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

const videoSelect = `
	SELECT v.id, v.title, v.description, v.video_url, v.video_type, v.external_id, v.thumbnail_url,
		v.author_id, v.tags, v.duration, v.status, v.publish_date, v.view_count, v.created_at, v.updated_at,
		u.id, u.username, u.first_name, u.last_name, u.profile_image
	FROM videos v
	JOIN users u ON u.id = v.author_id
`

// videoRepository implements VideoRepository
type videoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *sql.DB, logger *zap.Logger) *videoRepository {
	return &videoRepository{
		db:     db,
		logger: logger,
	}
}

func scanVideo(row rowScanner) (*models.Video, error) {
	video := &models.Video{Author: &models.UserSummary{}}
	var tags []byte
	var duration sql.NullInt64
	var publishDate sql.NullTime

	err := row.Scan(
		&video.ID,
		&video.Title,
		&video.Description,
		&video.VideoURL,
		&video.VideoType,
		&video.ExternalID,
		&video.ThumbnailURL,
		&video.AuthorID,
		&tags,
		&duration,
		&video.Status,
		&publishDate,
		&video.ViewCount,
		&video.CreatedAt,
		&video.UpdatedAt,
		&video.Author.ID,
		&video.Author.Username,
		&video.Author.FirstName,
		&video.Author.LastName,
		&video.Author.ProfileImage,
	)
	if err != nil {
		return nil, err
	}

	if video.Tags, err = unmarshalJSONColumn[string](tags); err != nil {
		return nil, err
	}
	video.Duration = intPtr(duration)
	video.PublishDate = timePtr(publishDate)

	return video, nil
}

// GetAll retrieves videos matching every set filter, newest first
func (r *videoRepository) GetAll(ctx context.Context, filter models.ContentFilter) ([]models.Video, error) {
	whereClauses := []string{}
	args := []any{}

	if filter.CategoryID != 0 {
		whereClauses = append(whereClauses, "v.id IN (SELECT video_id FROM video_categories WHERE category_id = ?)")
		args = append(args, filter.CategoryID)
	}
	if filter.Tag != "" {
		whereClauses = append(whereClauses, "JSON_CONTAINS(v.tags, JSON_QUOTE(?))")
		args = append(args, filter.Tag)
	}
	if filter.Status != "" {
		whereClauses = append(whereClauses, "v.status = ?")
		args = append(args, filter.Status)
	}
	if filter.AuthorID != 0 {
		whereClauses = append(whereClauses, "v.author_id = ?")
		args = append(args, filter.AuthorID)
	}

	query := videoSelect
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY v.created_at DESC, v.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query videos", zap.Error(err))
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	videos := []models.Video{}
	ids := []int{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			r.logger.Error("failed to scan video", zap.Error(err))
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, *video)
		ids = append(ids, video.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}

	categories, err := videoCategoryLinks.load(ctx, r.db, ids)
	if err != nil {
		r.logger.Error("failed to load video categories", zap.Error(err))
		return nil, err
	}
	for i := range videos {
		videos[i].Categories = nonNilCategories(categories[videos[i].ID])
	}

	return videos, nil
}

// GetByID retrieves a video with its author and categories
func (r *videoRepository) GetByID(ctx context.Context, id int) (*models.Video, error) {
	video, err := scanVideo(r.db.QueryRowContext(ctx, videoSelect+" WHERE v.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("Video not found")
	}
	if err != nil {
		r.logger.Error("failed to get video", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	categories, err := videoCategoryLinks.load(ctx, r.db, []int{video.ID})
	if err != nil {
		r.logger.Error("failed to load video categories", zap.Error(err))
		return nil, err
	}
	video.Categories = nonNilCategories(categories[video.ID])
	video.CategoryIDs = categoryIDs(video.Categories)

	return video, nil
}

// IncrementViewCount atomically adds one view to the video
func (r *videoRepository) IncrementViewCount(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE videos SET view_count = view_count + 1 WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to increment video views", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to increment video views: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFound("Video not found")
	}

	return nil
}

// Create inserts a video together with its category links
func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	tags, err := marshalJSONColumn(video.Tags)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO videos (title, description, video_url, video_type, external_id, thumbnail_url, author_id,
			tags, duration, status, publish_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query,
		video.Title, video.Description, video.VideoURL, video.VideoType, video.ExternalID, video.ThumbnailURL,
		video.AuthorID, tags, nullableInt(video.Duration), video.Status, nullableTime(video.PublishDate))
	if err != nil {
		r.logger.Error("failed to create video", zap.Error(err))
		return fmt.Errorf("failed to create video: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := videoCategoryLinks.insert(ctx, tx, int(id), uniqueIDs(video.CategoryIDs)); err != nil {
		r.logger.Error("failed to link video categories", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	video.ID = int(id)
	return nil
}

// Update overwrites the editable columns and category links of the video
func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	tags, err := marshalJSONColumn(video.Tags)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE videos
		SET title = ?, description = ?, video_url = ?, video_type = ?, external_id = ?, thumbnail_url = ?,
			tags = ?, duration = ?, status = ?, publish_date = ?
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, query,
		video.Title, video.Description, video.VideoURL, video.VideoType, video.ExternalID, video.ThumbnailURL,
		tags, nullableInt(video.Duration), video.Status, nullableTime(video.PublishDate), video.ID)
	if err != nil {
		r.logger.Error("failed to update video", zap.Error(err), zap.Int("id", video.ID))
		return fmt.Errorf("failed to update video: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFound("Video not found")
	}

	if err := videoCategoryLinks.replace(ctx, tx, video.ID, uniqueIDs(video.CategoryIDs)); err != nil {
		r.logger.Error("failed to relink video categories", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes a video and, in the same transaction, schedules filePaths for removal from disk
func (r *videoRepository) Delete(ctx context.Context, id int, filePaths []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE content_type = ? AND content_id = ?`,
		models.CommentTargetVideo, id); err != nil {
		r.logger.Error("failed to delete video comments", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete video comments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete video", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFound("Video not found")
	}

	for _, path := range filePaths {
		if _, err := tx.ExecContext(ctx, `INSERT INTO file_deletions (path) VALUES (?)`, path); err != nil {
			r.logger.Error("failed to schedule file deletion", zap.Error(err), zap.String("path", path))
			return fmt.Errorf("failed to schedule file deletion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
