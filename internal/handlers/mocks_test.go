package handlers

import (
	"context"
	"io"

	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/libs/auth/identity"
)

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	registerFn      func(req *models.RegisterRequest) (*models.AuthResult, error)
	loginFn         func(req *models.LoginRequest) (*models.AuthResult, error)
	getMeFn         func(userID int) (*models.User, error)
	updateProfileFn func(userID int, req *models.UpdateProfileRequest) (*models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResult, error) {
	return m.registerFn(req)
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResult, error) {
	return m.loginFn(req)
}

func (m *mockAuthService) GetMe(ctx context.Context, userID int) (*models.User, error) {
	return m.getMeFn(userID)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	return m.updateProfileFn(userID, req)
}

// mockBlogService is a mock implementation of BlogService
type mockBlogService struct {
	listFn       func(filter models.ContentFilter) ([]models.BlogPost, error)
	bySlugFn     func(slug string) (*models.Category, []models.BlogPost, error)
	getFn        func(id int) (*models.BlogPost, error)
	createFn     func(caller identity.Identity, req *models.BlogPostRequest) (*models.BlogPost, error)
	updateFn     func(caller identity.Identity, id int, req *models.UpdateBlogPostRequest) (*models.BlogPost, error)
	deleteFn     func(caller identity.Identity, id int) error
	addCommentFn func(caller identity.Identity, id int, req *models.CommentRequest) (*models.Comment, error)
}

func (m *mockBlogService) List(ctx context.Context, filter models.ContentFilter) ([]models.BlogPost, error) {
	return m.listFn(filter)
}

func (m *mockBlogService) ListByCategorySlug(ctx context.Context, slug string) (*models.Category, []models.BlogPost, error) {
	return m.bySlugFn(slug)
}

func (m *mockBlogService) Get(ctx context.Context, id int) (*models.BlogPost, error) {
	return m.getFn(id)
}

func (m *mockBlogService) Create(ctx context.Context, caller identity.Identity, req *models.BlogPostRequest) (*models.BlogPost, error) {
	return m.createFn(caller, req)
}

func (m *mockBlogService) Update(ctx context.Context, caller identity.Identity, id int, req *models.UpdateBlogPostRequest) (*models.BlogPost, error) {
	return m.updateFn(caller, id, req)
}

func (m *mockBlogService) Delete(ctx context.Context, caller identity.Identity, id int) error {
	return m.deleteFn(caller, id)
}

func (m *mockBlogService) AddComment(ctx context.Context, caller identity.Identity, id int, req *models.CommentRequest) (*models.Comment, error) {
	return m.addCommentFn(caller, id, req)
}

// mockVideoService is a mock implementation of VideoService
type mockVideoService struct {
	listFn   func(filter models.ContentFilter) ([]models.Video, error)
	deleteFn func(caller identity.Identity, id int) error
}

func (m *mockVideoService) List(ctx context.Context, filter models.ContentFilter) ([]models.Video, error) {
	return m.listFn(filter)
}

func (m *mockVideoService) ListByCategorySlug(ctx context.Context, slug string) (*models.Category, []models.Video, error) {
	return nil, nil, models.NotFound("Category not found")
}

func (m *mockVideoService) Get(ctx context.Context, id int) (*models.Video, error) {
	return nil, models.NotFound("Video not found")
}

func (m *mockVideoService) Create(ctx context.Context, caller identity.Identity, req *models.VideoRequest) (*models.Video, error) {
	return &models.Video{ID: 1, Title: req.Title, AuthorID: caller.UserID}, nil
}

func (m *mockVideoService) Update(ctx context.Context, caller identity.Identity, id int, req *models.UpdateVideoRequest) (*models.Video, error) {
	return nil, models.Forbidden("Not authorized to update this video")
}

func (m *mockVideoService) Delete(ctx context.Context, caller identity.Identity, id int) error {
	return m.deleteFn(caller, id)
}

func (m *mockVideoService) AddComment(ctx context.Context, caller identity.Identity, id int, req *models.CommentRequest) (*models.Comment, error) {
	return nil, models.BadRequest("Comment content is required")
}

// mockCategoryService is a mock implementation of CategoryService
type mockCategoryService struct {
	listFn   func(contentType string) ([]models.Category, error)
	createFn func(req *models.CreateCategoryRequest) (*models.Category, error)
}

func (m *mockCategoryService) List(ctx context.Context, contentType string) ([]models.Category, error) {
	return m.listFn(contentType)
}

func (m *mockCategoryService) Get(ctx context.Context, id int) (*models.Category, error) {
	return nil, models.NotFound("Category not found")
}

func (m *mockCategoryService) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	return m.createFn(req)
}

func (m *mockCategoryService) Update(ctx context.Context, id int, req *models.UpdateCategoryRequest) (*models.Category, error) {
	return &models.Category{ID: id}, nil
}

func (m *mockCategoryService) Delete(ctx context.Context, id int) error {
	return nil
}

// mockPlaylistService is a mock implementation of PlaylistService
type mockPlaylistService struct {
	lastCaller *identity.Identity
	lastFilter models.PlaylistFilter
	removed    []int
}

func (m *mockPlaylistService) List(ctx context.Context, caller *identity.Identity, filter models.PlaylistFilter) ([]models.Playlist, error) {
	m.lastCaller = caller
	m.lastFilter = filter
	return []models.Playlist{{ID: 1, Title: "Morning", IsPublic: true}}, nil
}

func (m *mockPlaylistService) Get(ctx context.Context, caller *identity.Identity, id int) (*models.Playlist, error) {
	m.lastCaller = caller
	if caller == nil {
		return nil, models.Forbidden("This playlist is private")
	}
	return &models.Playlist{ID: id, CreatorID: caller.UserID}, nil
}

func (m *mockPlaylistService) Create(ctx context.Context, caller identity.Identity, req *models.PlaylistRequest) (*models.Playlist, error) {
	return &models.Playlist{ID: 1, Title: req.Title, CreatorID: caller.UserID, IsPublic: true}, nil
}

func (m *mockPlaylistService) Update(ctx context.Context, caller identity.Identity, id int, req *models.UpdatePlaylistRequest) (*models.Playlist, error) {
	return &models.Playlist{ID: id}, nil
}

func (m *mockPlaylistService) Delete(ctx context.Context, caller identity.Identity, id int) error {
	return nil
}

func (m *mockPlaylistService) AddVideo(ctx context.Context, caller identity.Identity, id int, req *models.AddVideoRequest) (*models.Playlist, error) {
	if req.VideoID <= 0 {
		return nil, models.BadRequest("Video ID is required")
	}
	return nil, models.Conflict("Video is already in playlist")
}

func (m *mockPlaylistService) RemoveVideo(ctx context.Context, caller identity.Identity, id, videoID int) (*models.Playlist, error) {
	m.removed = append(m.removed, videoID)
	return &models.Playlist{ID: id}, nil
}

// mockUploadService is a mock implementation of UploadService
type mockUploadService struct {
	maxSize  int64
	received []byte
}

func (m *mockUploadService) Upload(ctx context.Context, kind models.UploadKind, reader io.Reader, contentType, originalName string) (*models.UploadedFile, error) {
	if contentType != "image/png" && kind != models.UploadKindVideo {
		return nil, models.BadRequest("Only image files are allowed!")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	m.received = data
	return &models.UploadedFile{FileName: originalName, FilePath: "/uploads/" + originalName}, nil
}

func (m *mockUploadService) MaxSize(kind models.UploadKind) int64 {
	return m.maxSize
}

func (m *mockUploadService) MissingFileMessage(kind models.UploadKind) string {
	if kind == models.UploadKindVideo {
		return "Please upload a video file"
	}
	return "Please upload a file"
}

// mockPinger is a mock implementation of Pinger
type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

// mockFileReaper is a mock implementation of FileReaper
type mockFileReaper struct {
	removed int
	err     error
}

func (m *mockFileReaper) Reap(ctx context.Context) (int, error) {
	return m.removed, m.err
}
