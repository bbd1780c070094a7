package services

import (
	"context"
	"slices"

	"github.com/promiseroad/backend/internal/models"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	users        map[int]*models.User
	existsResult bool
	err          error
	createErr    error
	updated      *models.UpdateProfileRequest
}

func newMockUserRepository(users ...*models.User) *mockUserRepository {
	m := &mockUserRepository{users: map[int]*models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = len(m.users) + 1
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, models.NotFound("User not found")
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.NotFound("User not found")
}

func (m *mockUserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.existsResult, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id int, req *models.UpdateProfileRequest) error {
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[id]
	if !ok {
		return models.NotFound("User not found")
	}
	m.updated = req
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	return nil
}

// mockBlogPostRepository is a mock implementation of BlogPostRepository
type mockBlogPostRepository struct {
	posts      map[int]*models.BlogPost
	lastFilter models.ContentFilter
	viewed     []int
	deleted    []int
	err        error
	nextID     int
}

func newMockBlogPostRepository(posts ...*models.BlogPost) *mockBlogPostRepository {
	m := &mockBlogPostRepository{posts: map[int]*models.BlogPost{}, nextID: 100}
	for _, p := range posts {
		m.posts[p.ID] = p
	}
	return m
}

func (m *mockBlogPostRepository) GetAll(ctx context.Context, filter models.ContentFilter) ([]models.BlogPost, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	out := []models.BlogPost{}
	for _, p := range m.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockBlogPostRepository) GetByID(ctx context.Context, id int) (*models.BlogPost, error) {
	if p, ok := m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, models.NotFound("Blog post not found")
}

func (m *mockBlogPostRepository) IncrementViewCount(ctx context.Context, id int) error {
	p, ok := m.posts[id]
	if !ok {
		return models.NotFound("Blog post not found")
	}
	p.ViewCount++
	m.viewed = append(m.viewed, id)
	return nil
}

func (m *mockBlogPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if m.err != nil {
		return m.err
	}
	post.ID = m.nextID
	m.nextID++
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *mockBlogPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	if m.err != nil {
		return m.err
	}
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *mockBlogPostRepository) Delete(ctx context.Context, id int) error {
	delete(m.posts, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// mockVideoRepository is a mock implementation of VideoRepository
type mockVideoRepository struct {
	videos       map[int]*models.Video
	lastFilter   models.ContentFilter
	deletedPaths []string
	deleted      []int
	updated      []int
	nextID       int
}

func newMockVideoRepository(videos ...*models.Video) *mockVideoRepository {
	m := &mockVideoRepository{videos: map[int]*models.Video{}, nextID: 200}
	for _, v := range videos {
		m.videos[v.ID] = v
	}
	return m
}

func (m *mockVideoRepository) GetAll(ctx context.Context, filter models.ContentFilter) ([]models.Video, error) {
	m.lastFilter = filter
	out := []models.Video{}
	for _, v := range m.videos {
		out = append(out, *v)
	}
	return out, nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id int) (*models.Video, error) {
	if v, ok := m.videos[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, models.NotFound("Video not found")
}

func (m *mockVideoRepository) IncrementViewCount(ctx context.Context, id int) error {
	v, ok := m.videos[id]
	if !ok {
		return models.NotFound("Video not found")
	}
	v.ViewCount++
	return nil
}

func (m *mockVideoRepository) Create(ctx context.Context, video *models.Video) error {
	video.ID = m.nextID
	m.nextID++
	cp := *video
	m.videos[video.ID] = &cp
	return nil
}

func (m *mockVideoRepository) Update(ctx context.Context, video *models.Video) error {
	m.updated = append(m.updated, video.ID)
	cp := *video
	m.videos[video.ID] = &cp
	return nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, id int, filePaths []string) error {
	delete(m.videos, id)
	m.deleted = append(m.deleted, id)
	m.deletedPaths = append(m.deletedPaths, filePaths...)
	return nil
}

// mockCommentRepository is a mock implementation of CommentRepository
type mockCommentRepository struct {
	comments []models.Comment
	err      error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.err != nil {
		return m.err
	}
	comment.ID = len(m.comments) + 1
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	for _, c := range m.comments {
		if c.ID == id {
			c.User = &models.UserSummary{ID: c.UserID, Username: "commenter"}
			return &c, nil
		}
	}
	return nil, models.NotFound("Comment not found")
}

func (m *mockCommentRepository) ListByTarget(ctx context.Context, target models.CommentTarget, targetID int) ([]models.Comment, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Comment{}
	for _, c := range m.comments {
		if c.TargetType == target && c.TargetID == targetID {
			out = append(out, c)
		}
	}
	return out, nil
}

// mockCategoryRepository is a mock implementation of CategoryRepository
type mockCategoryRepository struct {
	categories map[int]*models.Category
	createErr  error
	lastType   string
	nextID     int
}

func newMockCategoryRepository(categories ...*models.Category) *mockCategoryRepository {
	m := &mockCategoryRepository{categories: map[int]*models.Category{}, nextID: 50}
	for _, c := range categories {
		m.categories[c.ID] = c
	}
	return m
}

func (m *mockCategoryRepository) GetAll(ctx context.Context, contentType string) ([]models.Category, error) {
	m.lastType = contentType
	out := []models.Category{}
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	if c, ok := m.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, models.NotFound("Category not found")
}

func (m *mockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.NotFound("Category not found")
}

func (m *mockCategoryRepository) CountExisting(ctx context.Context, ids []int) (int, error) {
	seen := map[int]bool{}
	for _, id := range ids {
		if _, ok := m.categories[id]; ok {
			seen[id] = true
		}
	}
	return len(seen), nil
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	category.ID = m.nextID
	m.nextID++
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int) error {
	if _, ok := m.categories[id]; !ok {
		return models.NotFound("Category not found")
	}
	delete(m.categories, id)
	return nil
}

// mockPlaylistRepository is a mock implementation of PlaylistRepository
type mockPlaylistRepository struct {
	playlists  map[int]*models.Playlist
	videoIDs   map[int][]int
	lastFilter *models.PlaylistFilter
	nextID     int
}

func newMockPlaylistRepository(playlists ...*models.Playlist) *mockPlaylistRepository {
	m := &mockPlaylistRepository{playlists: map[int]*models.Playlist{}, videoIDs: map[int][]int{}, nextID: 300}
	for _, p := range playlists {
		m.playlists[p.ID] = p
	}
	return m
}

func (m *mockPlaylistRepository) GetAll(ctx context.Context, filter models.PlaylistFilter) ([]models.Playlist, error) {
	m.lastFilter = &filter
	out := []models.Playlist{}
	for _, p := range m.playlists {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPlaylistRepository) GetByID(ctx context.Context, id int) (*models.Playlist, error) {
	p, ok := m.playlists[id]
	if !ok {
		return nil, models.NotFound("Playlist not found")
	}
	cp := *p
	cp.Videos = []models.VideoSummary{}
	for _, videoID := range m.videoIDs[id] {
		cp.Videos = append(cp.Videos, models.VideoSummary{ID: videoID})
	}
	return &cp, nil
}

func (m *mockPlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	playlist.ID = m.nextID
	m.nextID++
	cp := *playlist
	m.playlists[playlist.ID] = &cp
	return nil
}

func (m *mockPlaylistRepository) Update(ctx context.Context, id int, req *models.UpdatePlaylistRequest) error {
	p, ok := m.playlists[id]
	if !ok {
		return models.NotFound("Playlist not found")
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}
	return nil
}

func (m *mockPlaylistRepository) Delete(ctx context.Context, id int) error {
	delete(m.playlists, id)
	return nil
}

func (m *mockPlaylistRepository) HasVideo(ctx context.Context, playlistID, videoID int) (bool, error) {
	return slices.Contains(m.videoIDs[playlistID], videoID), nil
}

func (m *mockPlaylistRepository) AppendVideo(ctx context.Context, playlistID, videoID int) error {
	m.videoIDs[playlistID] = append(m.videoIDs[playlistID], videoID)
	return nil
}

func (m *mockPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int) error {
	m.videoIDs[playlistID] = slices.DeleteFunc(m.videoIDs[playlistID], func(id int) bool { return id == videoID })
	return nil
}

// mockReaper is a mock implementation of Reaper
type mockReaper struct {
	calls int
	err   error
}

func (m *mockReaper) Reap(ctx context.Context) (int, error) {
	m.calls++
	return 0, m.err
}
