package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/internal/storage"
	"github.com/promiseroad/backend/libs/auth/identity"
	"go.uber.org/zap"
)

// VideoRepository is the interface that wraps methods for Videos table data access
type VideoRepository interface {
	// Method GetAll retrieves videos with author and category summaries.
	//
	// "filter" parameter is used to narrow the result, every non-zero field must match.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	GetAll(ctx context.Context, filter models.ContentFilter) ([]models.Video, error)
	// Method GetByID retrieves a video with author and category summaries.
	//
	// If video with such ID does not exist, a not found error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Video, error)
	// Method IncrementViewCount atomically adds one view to the video.
	IncrementViewCount(ctx context.Context, id int) error
	// Method Create inserts the video and its category links, then sets its ID.
	Create(ctx context.Context, video *models.Video) error
	// Method Update overwrites the editable fields and category links of the video.
	Update(ctx context.Context, video *models.Video) error
	// Method Delete removes the video with its comments.
	//
	// "filePaths" parameter lists upload relative paths scheduled for removal in the same transaction.
	Delete(ctx context.Context, id int, filePaths []string) error
}

// Reaper removes files scheduled for deletion
type Reaper interface {
	// Method Reap removes pending files and returns how many were handled.
	Reap(ctx context.Context) (int, error)
}

// videoService implements VideoService
type videoService struct {
	repo            VideoRepository
	comments        CommentRepository
	categories      CategoryLookup
	reaper          Reaper
	uploadURLPrefix string
	logger          *zap.Logger
}

// NewVideoService creates a new video service.
// "uploadURLPrefix" is the public path under which uploaded files are served.
func NewVideoService(
	repo VideoRepository,
	comments CommentRepository,
	categories CategoryLookup,
	reaper Reaper,
	uploadURLPrefix string,
	logger *zap.Logger,
) *videoService {
	return &videoService{
		repo:            repo,
		comments:        comments,
		categories:      categories,
		reaper:          reaper,
		uploadURLPrefix: uploadURLPrefix,
		logger:          logger,
	}
}

// List retrieves videos matching the filter.
// Without a status or author filter only published videos are listed.
func (s *videoService) List(ctx context.Context, filter models.ContentFilter) ([]models.Video, error) {
	if filter.Status == "" && filter.AuthorID == 0 {
		filter.Status = string(models.VideoStatusPublished)
	}

	videos, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}

	return videos, nil
}

// ListByCategorySlug retrieves the published videos of the category named by slug
func (s *videoService) ListByCategorySlug(ctx context.Context, slug string) (*models.Category, []models.Video, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	videos, err := s.repo.GetAll(ctx, models.ContentFilter{
		CategoryID: category.ID,
		Status:     string(models.VideoStatusPublished),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get videos by category: %w", err)
	}

	return category, videos, nil
}

// Get counts a view and returns the video with its comments
func (s *videoService) Get(ctx context.Context, id int) (*models.Video, error) {
	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		return nil, err
	}

	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByTarget(ctx, models.CommentTargetVideo, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get video comments: %w", err)
	}
	video.Comments = comments

	return video, nil
}

// Create stores a new video authored by the caller
func (s *videoService) Create(ctx context.Context, caller identity.Identity, req *models.VideoRequest) (*models.Video, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.VideoURL = strings.TrimSpace(req.VideoURL)
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := checkCategories(ctx, s.categories, req.Categories); err != nil {
		return nil, err
	}

	status := models.VideoStatusProcessing
	if req.Status != "" {
		status = models.VideoStatus(req.Status)
	}

	video := &models.Video{
		Title:        req.Title,
		Description:  strings.TrimSpace(req.Description),
		VideoURL:     req.VideoURL,
		VideoType:    models.VideoType(req.VideoType),
		ExternalID:   strings.TrimSpace(req.ExternalID),
		ThumbnailURL: strings.TrimSpace(req.ThumbnailURL),
		AuthorID:     caller.UserID,
		CategoryIDs:  req.Categories,
		Tags:         cleanTags(req.Tags),
		Duration:     req.Duration,
		Status:       status,
	}
	video.PublishDate = publishTime(nil, false, status == models.VideoStatusPublished)

	if err := s.repo.Create(ctx, video); err != nil {
		return nil, err
	}

	s.logger.Info("video created", zap.Int("id", video.ID), zap.Int("authorId", caller.UserID))
	return s.repo.GetByID(ctx, video.ID)
}

// Update applies a partial update to a video owned by the caller, or any video for admins
func (s *videoService) Update(ctx context.Context, caller identity.Identity, id int, req *models.UpdateVideoRequest) (*models.Video, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanManage(video.AuthorID) {
		return nil, models.Forbidden("Not authorized to update this video")
	}

	if req.Categories != nil {
		if err := checkCategories(ctx, s.categories, *req.Categories); err != nil {
			return nil, err
		}
		video.CategoryIDs = *req.Categories
	}
	if req.Title != nil {
		video.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		video.Description = strings.TrimSpace(*req.Description)
	}
	if req.VideoURL != nil {
		video.VideoURL = strings.TrimSpace(*req.VideoURL)
	}
	if req.VideoType != nil {
		video.VideoType = models.VideoType(*req.VideoType)
	}
	if req.ExternalID != nil {
		video.ExternalID = strings.TrimSpace(*req.ExternalID)
	}
	if req.ThumbnailURL != nil {
		video.ThumbnailURL = strings.TrimSpace(*req.ThumbnailURL)
	}
	if req.Tags != nil {
		video.Tags = cleanTags(*req.Tags)
	}
	if req.Duration != nil {
		video.Duration = req.Duration
	}
	if req.Status != nil {
		wasPublished := video.Status == models.VideoStatusPublished
		video.Status = models.VideoStatus(*req.Status)
		video.PublishDate = publishTime(video.PublishDate, wasPublished, video.Status == models.VideoStatusPublished)
	}

	if err := s.repo.Update(ctx, video); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes a video owned by the caller, or any video for admins.
// Files of uploaded videos are scheduled with the row delete and reaped right after.
func (s *videoService) Delete(ctx context.Context, caller identity.Identity, id int) error {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanManage(video.AuthorID) {
		return models.Forbidden("Not authorized to delete this video")
	}

	filePaths := s.uploadedFiles(video)
	if err := s.repo.Delete(ctx, id, filePaths); err != nil {
		return err
	}

	s.logger.Info("video deleted", zap.Int("id", id), zap.Int("callerId", caller.UserID), zap.Int("files", len(filePaths)))

	if len(filePaths) > 0 && s.reaper != nil {
		if _, err := s.reaper.Reap(ctx); err != nil {
			s.logger.Warn("failed to reap video files, they stay scheduled", zap.Int("id", id), zap.Error(err))
		}
	}

	return nil
}

// uploadedFiles returns the upload relative paths of the files owned by an uploaded video
func (s *videoService) uploadedFiles(video *models.Video) []string {
	if video.VideoType != models.VideoTypeUpload {
		return nil
	}

	var paths []string
	for _, url := range []string{video.VideoURL, video.ThumbnailURL} {
		if rel, ok := storage.RelativeToPrefix(url, s.uploadURLPrefix); ok {
			paths = append(paths, rel)
		}
	}
	return paths
}

// AddComment appends a comment of the caller to a video and returns it with its author
func (s *videoService) AddComment(ctx context.Context, caller identity.Identity, id int, req *models.CommentRequest) (*models.Comment, error) {
	content := sanitizeComment(req.Content)
	if content == "" {
		return nil, models.BadRequest("Comment content is required")
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TargetType: models.CommentTargetVideo,
		TargetID:   id,
		UserID:     caller.UserID,
		Content:    content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.comments.GetByID(ctx, comment.ID)
}
