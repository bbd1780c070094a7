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

const playlistSelect = `
	SELECT p.id, p.title, COALESCE(p.description, ''), p.thumbnail_url, p.creator_id, p.is_public,
		p.created_at, p.updated_at,
		u.id, u.username, u.first_name, u.last_name, u.profile_image
	FROM playlists p
	JOIN users u ON u.id = p.creator_id
`

// playlistRepository implements PlaylistRepository
type playlistRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPlaylistRepository creates a new playlist repository
func NewPlaylistRepository(db *sql.DB, logger *zap.Logger) *playlistRepository {
	return &playlistRepository{
		db:     db,
		logger: logger,
	}
}

func scanPlaylist(row rowScanner) (*models.Playlist, error) {
	playlist := &models.Playlist{Creator: &models.UserSummary{}, Videos: []models.VideoSummary{}}

	err := row.Scan(
		&playlist.ID,
		&playlist.Title,
		&playlist.Description,
		&playlist.ThumbnailURL,
		&playlist.CreatorID,
		&playlist.IsPublic,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
		&playlist.Creator.ID,
		&playlist.Creator.Username,
		&playlist.Creator.FirstName,
		&playlist.Creator.LastName,
		&playlist.Creator.ProfileImage,
	)
	if err != nil {
		return nil, err
	}

	return playlist, nil
}

// GetAll retrieves playlists matching the filter, newest first.
// Video summaries only include published videos.
func (r *playlistRepository) GetAll(ctx context.Context, filter models.PlaylistFilter) ([]models.Playlist, error) {
	whereClauses := []string{}
	args := []any{}

	if filter.CreatorID != 0 {
		whereClauses = append(whereClauses, "p.creator_id = ?")
		args = append(args, filter.CreatorID)
	}
	if filter.IsPublic != nil {
		whereClauses = append(whereClauses, "p.is_public = ?")
		args = append(args, *filter.IsPublic)
	}

	query := playlistSelect
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY p.created_at DESC, p.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query playlists", zap.Error(err))
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []models.Playlist{}
	ids := []int{}
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			r.logger.Error("failed to scan playlist", zap.Error(err))
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, *playlist)
		ids = append(ids, playlist.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating playlists: %w", err)
	}

	videos, err := r.loadVideoSummaries(ctx, ids, true)
	if err != nil {
		return nil, err
	}
	for i := range playlists {
		if v, ok := videos[playlists[i].ID]; ok {
			playlists[i].Videos = v
		}
	}

	return playlists, nil
}

// GetByID retrieves a playlist with its creator and every video in order
func (r *playlistRepository) GetByID(ctx context.Context, id int) (*models.Playlist, error) {
	playlist, err := scanPlaylist(r.db.QueryRowContext(ctx, playlistSelect+" WHERE p.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("Playlist not found")
	}
	if err != nil {
		r.logger.Error("failed to get playlist", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	videos, err := r.loadVideoSummaries(ctx, []int{playlist.ID}, false)
	if err != nil {
		return nil, err
	}
	if v, ok := videos[playlist.ID]; ok {
		playlist.Videos = v
	}

	return playlist, nil
}

// loadVideoSummaries returns the ordered videos of every playlist, keyed by playlist id
func (r *playlistRepository) loadVideoSummaries(ctx context.Context, playlistIDs []int, publishedOnly bool) (map[int][]models.VideoSummary, error) {
	result := make(map[int][]models.VideoSummary, len(playlistIDs))
	if len(playlistIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT pv.playlist_id, v.id, v.title, v.description, v.video_url, v.video_type, v.thumbnail_url,
			v.duration, v.view_count, v.status,
			u.id, u.username, u.first_name, u.last_name, u.profile_image
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		JOIN users u ON u.id = v.author_id
		WHERE pv.playlist_id IN (%s)
	`, placeholders(len(playlistIDs)))
	args := intArgs(playlistIDs)
	if publishedOnly {
		query += " AND v.status = ?"
		args = append(args, models.VideoStatusPublished)
	}
	query += " ORDER BY pv.playlist_id, pv.position"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query playlist videos", zap.Error(err))
		return nil, fmt.Errorf("failed to query playlist videos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var playlistID int
		var duration sql.NullInt64
		summary := models.VideoSummary{Author: &models.UserSummary{}}
		if err := rows.Scan(
			&playlistID,
			&summary.ID,
			&summary.Title,
			&summary.Description,
			&summary.VideoURL,
			&summary.VideoType,
			&summary.ThumbnailURL,
			&duration,
			&summary.ViewCount,
			&summary.Status,
			&summary.Author.ID,
			&summary.Author.Username,
			&summary.Author.FirstName,
			&summary.Author.LastName,
			&summary.Author.ProfileImage,
		); err != nil {
			return nil, fmt.Errorf("failed to scan playlist video: %w", err)
		}
		summary.Duration = intPtr(duration)
		result[playlistID] = append(result[playlistID], summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating playlist videos: %w", err)
	}

	return result, nil
}

// Create inserts a new playlist
func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	query := `
		INSERT INTO playlists (title, description, thumbnail_url, creator_id, is_public)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		playlist.Title, playlist.Description, playlist.ThumbnailURL, playlist.CreatorID, playlist.IsPublic)
	if err != nil {
		r.logger.Error("failed to create playlist", zap.Error(err))
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	playlist.ID = int(id)
	return nil
}

// Update applies the non-nil fields of the request to the playlist
func (r *playlistRepository) Update(ctx context.Context, id int, req *models.UpdatePlaylistRequest) error {
	var setParts []string
	var args []any

	if req.Title != nil {
		setParts = append(setParts, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Description != nil {
		setParts = append(setParts, "description = ?")
		args = append(args, *req.Description)
	}
	if req.ThumbnailURL != nil {
		setParts = append(setParts, "thumbnail_url = ?")
		args = append(args, *req.ThumbnailURL)
	}
	if req.IsPublic != nil {
		setParts = append(setParts, "is_public = ?")
		args = append(args, *req.IsPublic)
	}

	if len(setParts) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE playlists
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to update playlist", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFound("Playlist not found")
	}

	return nil
}

// Delete removes a playlist and its video links
func (r *playlistRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete playlist", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFound("Playlist not found")
	}

	return nil
}

// HasVideo reports whether the video is already part of the playlist
func (r *playlistRepository) HasVideo(ctx context.Context, playlistID, videoID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM playlist_videos WHERE playlist_id = ? AND video_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, playlistID, videoID).Scan(&exists); err != nil {
		r.logger.Error("failed to check playlist video", zap.Error(err))
		return false, fmt.Errorf("failed to check playlist video: %w", err)
	}

	return exists, nil
}

// AppendVideo adds the video at the end of the playlist
func (r *playlistRepository) AppendVideo(ctx context.Context, playlistID, videoID int) error {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id, position)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1
		FROM playlist_videos
		WHERE playlist_id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, playlistID, videoID, playlistID); err != nil {
		if isDuplicateKey(err) {
			return models.Conflict("Video is already in playlist")
		}
		r.logger.Error("failed to append playlist video", zap.Error(err))
		return fmt.Errorf("failed to append playlist video: %w", err)
	}

	return nil
}

// RemoveVideo drops the video from the playlist. Removing an absent video is not an error.
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int) error {
	query := `DELETE FROM playlist_videos WHERE playlist_id = ? AND video_id = ?`

	if _, err := r.db.ExecContext(ctx, query, playlistID, videoID); err != nil {
		r.logger.Error("failed to remove playlist video", zap.Error(err))
		return fmt.Errorf("failed to remove playlist video: %w", err)
	}

	return nil
}
