package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/libs/auth/identity"
	"go.uber.org/zap"
)

// PlaylistRepository is the interface that wraps methods for Playlists table data access
type PlaylistRepository interface {
	// Method GetAll retrieves playlists with creator and published video summaries.
	//
	// "filter" parameter is used to narrow the result, nil IsPublic matches both visibilities.
	GetAll(ctx context.Context, filter models.PlaylistFilter) ([]models.Playlist, error)
	// Method GetByID retrieves a playlist with its creator and every video in playlist order.
	//
	// If playlist with such ID does not exist, a not found error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Playlist, error)
	// Method Create inserts a playlist and sets its ID.
	Create(ctx context.Context, playlist *models.Playlist) error
	// Method Update applies the non-nil fields of "req" to the playlist with "id".
	Update(ctx context.Context, id int, req *models.UpdatePlaylistRequest) error
	// Method Delete removes the playlist with its video links.
	Delete(ctx context.Context, id int) error
	// Method HasVideo reports whether the video is part of the playlist.
	HasVideo(ctx context.Context, playlistID, videoID int) (bool, error)
	// Method AppendVideo adds the video after the last one of the playlist.
	//
	// If the video is already part of the playlist, a conflict error will be returned.
	AppendVideo(ctx context.Context, playlistID, videoID int) error
	// Method RemoveVideo drops the video from the playlist. Absent videos are ignored.
	RemoveVideo(ctx context.Context, playlistID, videoID int) error
}

// VideoLookup is the interface that wraps the video query used by playlists
type VideoLookup interface {
	// Method GetByID retrieves a video.
	//
	// If video with such ID does not exist, a not found error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Video, error)
}

// playlistService implements PlaylistService
type playlistService struct {
	repo   PlaylistRepository
	videos VideoLookup
	logger *zap.Logger
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(repo PlaylistRepository, videos VideoLookup, logger *zap.Logger) *playlistService {
	return &playlistService{
		repo:   repo,
		videos: videos,
		logger: logger,
	}
}

// List retrieves playlists visible to the caller.
//
// The isPublic filter is honoured only when the caller is the requested creator,
// everyone else sees public playlists only.
func (s *playlistService) List(ctx context.Context, caller *identity.Identity, filter models.PlaylistFilter) ([]models.Playlist, error) {
	ownLists := caller != nil && filter.CreatorID != 0 && filter.CreatorID == caller.UserID
	if !ownLists {
		if filter.IsPublic != nil && !*filter.IsPublic {
			return []models.Playlist{}, nil
		}
		public := true
		filter.IsPublic = &public
	}

	playlists, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlists: %w", err)
	}

	return playlists, nil
}

// Get retrieves a playlist. Private playlists are visible to their creator only.
func (s *playlistService) Get(ctx context.Context, caller *identity.Identity, id int) (*models.Playlist, error) {
	playlist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !playlist.IsPublic && (caller == nil || caller.UserID != playlist.CreatorID) {
		return nil, models.Forbidden("This playlist is private")
	}

	return playlist, nil
}

// Create stores a new playlist owned by the caller
func (s *playlistService) Create(ctx context.Context, caller identity.Identity, req *models.PlaylistRequest) (*models.Playlist, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate(req); err != nil {
		return nil, err
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	playlist := &models.Playlist{
		Title:        req.Title,
		Description:  strings.TrimSpace(req.Description),
		ThumbnailURL: strings.TrimSpace(req.ThumbnailURL),
		CreatorID:    caller.UserID,
		IsPublic:     isPublic,
	}
	if err := s.repo.Create(ctx, playlist); err != nil {
		return nil, err
	}

	s.logger.Info("playlist created", zap.Int("id", playlist.ID), zap.Int("creatorId", caller.UserID))
	return s.repo.GetByID(ctx, playlist.ID)
}

// Update applies a partial update to a playlist of the caller, or any playlist for admins
func (s *playlistService) Update(ctx context.Context, caller identity.Identity, id int, req *models.UpdatePlaylistRequest) (*models.Playlist, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	playlist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanManage(playlist.CreatorID) {
		return nil, models.Forbidden("Not authorized to update this playlist")
	}

	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes a playlist of the caller, or any playlist for admins
func (s *playlistService) Delete(ctx context.Context, caller identity.Identity, id int) error {
	playlist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanManage(playlist.CreatorID) {
		return models.Forbidden("Not authorized to delete this playlist")
	}

	return s.repo.Delete(ctx, id)
}

// AddVideo appends a video to a playlist of the caller.
// Unpublished videos may only be added by their author.
func (s *playlistService) AddVideo(ctx context.Context, caller identity.Identity, id int, req *models.AddVideoRequest) (*models.Playlist, error) {
	if req.VideoID <= 0 {
		return nil, models.BadRequest("Video ID is required")
	}

	video, err := s.videos.GetByID(ctx, req.VideoID)
	if err != nil {
		return nil, err
	}
	if video.Status != models.VideoStatusPublished && video.AuthorID != caller.UserID {
		return nil, models.BadRequest("Video is not published")
	}

	playlist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.CreatorID != caller.UserID {
		return nil, models.Forbidden("Not authorized to modify this playlist")
	}

	exists, err := s.repo.HasVideo(ctx, id, req.VideoID)
	if err != nil {
		return nil, fmt.Errorf("failed to check playlist video: %w", err)
	}
	if exists {
		return nil, models.Conflict("Video is already in playlist")
	}

	if err := s.repo.AppendVideo(ctx, id, req.VideoID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// RemoveVideo drops a video from a playlist of the caller
func (s *playlistService) RemoveVideo(ctx context.Context, caller identity.Identity, id, videoID int) (*models.Playlist, error) {
	playlist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.CreatorID != caller.UserID {
		return nil, models.Forbidden("Not authorized to modify this playlist")
	}

	if err := s.repo.RemoveVideo(ctx, id, videoID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}
