package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/libs/auth/identity"
	authmw "github.com/promiseroad/backend/libs/auth/middleware"
	"github.com/promiseroad/backend/libs/auth/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "test-api-key"

// testServices holds the mocks behind a test router
type testServices struct {
	auth       *mockAuthService
	blogs      *mockBlogService
	videos     *mockVideoService
	categories *mockCategoryService
	playlists  *mockPlaylistService
	uploads    *mockUploadService
	db         *mockPinger
	reaper     *mockFileReaper
}

func newTestServices() *testServices {
	return &testServices{
		auth:       &mockAuthService{},
		blogs:      &mockBlogService{},
		videos:     &mockVideoService{},
		categories: &mockCategoryService{},
		playlists:  &mockPlaylistService{},
		uploads:    &mockUploadService{maxSize: 5 << 20},
		db:         &mockPinger{},
		reaper:     &mockFileReaper{},
	}
}

var testTokens = service.NewTokenGenerator("handler-test-secret", time.Hour)

// setupTestRouter mounts every handler the way the server does
func setupTestRouter(s *testServices) chi.Router {
	logger := zap.NewNop()
	api := &API{
		Auth:        NewAuthHandler(s.auth, logger),
		Blogs:       NewBlogHandler(s.blogs, logger),
		Videos:      NewVideoHandler(s.videos, logger),
		Categories:  NewCategoryHandler(s.categories, logger),
		Playlists:   NewPlaylistHandler(s.playlists, logger),
		Uploads:     NewUploadHandler(s.uploads, logger),
		Health:      NewHealthHandler(s.db, "test", logger),
		Maintenance: NewMaintenanceHandler(s.reaper, logger),
		Guards: Guards{
			Protect:  authmw.Protect(testTokens),
			Optional: authmw.OptionalAuth(testTokens),
		},
		APIKey: authmw.APIKeyMiddleware(testAPIKey),
	}

	r := chi.NewRouter()
	api.Mount(r)
	return r
}

func tokenFor(t *testing.T, userID int, role identity.Role) string {
	t.Helper()
	token, err := testTokens.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// doRequest sends a JSON request, body may be nil
func doRequest(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(encoded)
		}
		reader = bytes.NewReader([]byte(raw))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestAuthHandler(t *testing.T) {
	s := newTestServices()
	s.auth.registerFn = func(req *models.RegisterRequest) (*models.AuthResult, error) {
		if req.Username == "" {
			return nil, models.NewValidationError("username is required", "password is required")
		}
		if req.Username == "taken" {
			return nil, models.Conflict("User with this email or username already exists")
		}
		return &models.AuthResult{Token: "tok", User: &models.User{ID: 1, Username: req.Username, PasswordHash: "secret-hash"}}, nil
	}
	s.auth.loginFn = func(req *models.LoginRequest) (*models.AuthResult, error) {
		return nil, &models.Error{Kind: models.ErrInvalidCredentials, Message: "Invalid credentials"}
	}
	s.auth.getMeFn = func(userID int) (*models.User, error) {
		return &models.User{ID: userID, Username: "grace"}, nil
	}
	router := setupTestRouter(s)

	t.Run("register", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/register", map[string]string{"username": "grace"}, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "tok", body["token"])
		assert.NotContains(t, w.Body.String(), "secret-hash")
	})

	t.Run("register validation errors", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/register", map[string]string{}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []any{"username is required", "password is required"}, decodeBody(t, w)["error"])
	})

	t.Run("register existing user", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/register", map[string]string{"username": "taken"}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User with this email or username already exists", decodeBody(t, w)["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/register", "{", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, w)["error"])
	})

	t.Run("login with invalid credentials", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.c", "password": "x"}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])
	})

	t.Run("me requires a token", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/auth/me", nil, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/auth/me", nil, tokenFor(t, 4, identity.RoleViewer))

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, float64(4), data["id"])
	})
}

func TestBlogHandler(t *testing.T) {
	s := newTestServices()
	var lastFilter models.ContentFilter
	var lastCaller identity.Identity
	s.blogs.listFn = func(filter models.ContentFilter) ([]models.BlogPost, error) {
		lastFilter = filter
		return []models.BlogPost{{ID: 1}, {ID: 2}}, nil
	}
	s.blogs.bySlugFn = func(slug string) (*models.Category, []models.BlogPost, error) {
		if slug != "faith" {
			return nil, nil, models.NotFound("Category not found")
		}
		return &models.Category{ID: 3, Slug: slug}, []models.BlogPost{{ID: 1}}, nil
	}
	s.blogs.getFn = func(id int) (*models.BlogPost, error) {
		switch id {
		case 1:
			return &models.BlogPost{ID: 1, Title: "Grace"}, nil
		case 500:
			return nil, errors.New("connection reset")
		}
		return nil, models.NotFound("Blog post not found")
	}
	s.blogs.createFn = func(caller identity.Identity, req *models.BlogPostRequest) (*models.BlogPost, error) {
		lastCaller = caller
		return &models.BlogPost{ID: 10, Title: req.Title, AuthorID: caller.UserID}, nil
	}
	s.blogs.updateFn = func(caller identity.Identity, id int, req *models.UpdateBlogPostRequest) (*models.BlogPost, error) {
		return nil, models.Forbidden("Not authorized to update this blog post")
	}
	s.blogs.deleteFn = func(caller identity.Identity, id int) error {
		return nil
	}
	s.blogs.addCommentFn = func(caller identity.Identity, id int, req *models.CommentRequest) (*models.Comment, error) {
		return &models.Comment{ID: 1, Content: req.Content, UserID: caller.UserID}, nil
	}
	router := setupTestRouter(s)
	creator := tokenFor(t, 1, identity.RoleCreator)
	viewer := tokenFor(t, 5, identity.RoleViewer)

	tests := []struct {
		name            string
		method          string
		path            string
		body            any
		token           string
		expectedStatus  int
		expectedMessage string
	}{
		{name: "list", method: http.MethodGet, path: "/api/blogs?category=3&tag=hope&author=2", expectedStatus: http.StatusOK},
		{name: "list with bad category", method: http.MethodGet, path: "/api/blogs?category=abc", expectedStatus: http.StatusBadRequest, expectedMessage: "invalid category parameter"},
		{name: "by category slug", method: http.MethodGet, path: "/api/blogs/categories/faith", expectedStatus: http.StatusOK},
		{name: "by unknown category slug", method: http.MethodGet, path: "/api/blogs/categories/none", expectedStatus: http.StatusNotFound, expectedMessage: "Category not found"},
		{name: "get", method: http.MethodGet, path: "/api/blogs/1", expectedStatus: http.StatusOK},
		{name: "get missing", method: http.MethodGet, path: "/api/blogs/2", expectedStatus: http.StatusNotFound, expectedMessage: "Blog post not found"},
		{name: "get malformed id", method: http.MethodGet, path: "/api/blogs/abc", expectedStatus: http.StatusBadRequest, expectedMessage: "invalid id parameter"},
		{name: "unexpected error is hidden", method: http.MethodGet, path: "/api/blogs/500", expectedStatus: http.StatusInternalServerError, expectedMessage: "Server Error"},
		{name: "create anonymously", method: http.MethodPost, path: "/api/blogs", body: map[string]string{"title": "T"}, expectedStatus: http.StatusUnauthorized, expectedMessage: "Not authorized to access this route"},
		{name: "create as viewer", method: http.MethodPost, path: "/api/blogs", body: map[string]string{"title": "T"}, token: viewer, expectedStatus: http.StatusForbidden, expectedMessage: "User role viewer is not authorized to access this route"},
		{name: "create as creator", method: http.MethodPost, path: "/api/blogs", body: map[string]string{"title": "T"}, token: creator, expectedStatus: http.StatusCreated},
		{name: "update post of another author", method: http.MethodPut, path: "/api/blogs/1", body: map[string]string{"title": "T"}, token: creator, expectedStatus: http.StatusForbidden, expectedMessage: "Not authorized to update this blog post"},
		{name: "delete", method: http.MethodDelete, path: "/api/blogs/1", token: creator, expectedStatus: http.StatusOK},
		{name: "comment as viewer", method: http.MethodPost, path: "/api/blogs/1/comments", body: map[string]string{"content": "Amen"}, token: viewer, expectedStatus: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, tt.method, tt.path, tt.body, tt.token)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedMessage != "" {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.expectedMessage, body["error"])
			} else {
				assert.Equal(t, true, body["success"])
			}
		})
	}

	assert.Equal(t, models.ContentFilter{CategoryID: 3, Tag: "hope", AuthorID: 2}, lastFilter)
	assert.Equal(t, identity.Identity{UserID: 1, Role: identity.RoleCreator}, lastCaller)
}

func TestBlogHandler_ListEnvelope(t *testing.T) {
	s := newTestServices()
	s.blogs.listFn = func(filter models.ContentFilter) ([]models.BlogPost, error) {
		return []models.BlogPost{{ID: 1}, {ID: 2}}, nil
	}
	s.blogs.bySlugFn = func(slug string) (*models.Category, []models.BlogPost, error) {
		return &models.Category{ID: 3, Slug: slug}, []models.BlogPost{{ID: 1}}, nil
	}
	router := setupTestRouter(s)

	body := decodeBody(t, doRequest(t, router, http.MethodGet, "/api/blogs", nil, ""))
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["data"], 2)

	body = decodeBody(t, doRequest(t, router, http.MethodGet, "/api/blogs/categories/faith", nil, ""))
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "faith", body["category"].(map[string]any)["slug"])
}

func TestVideoHandler(t *testing.T) {
	s := newTestServices()
	var deletedBy identity.Identity
	s.videos.listFn = func(filter models.ContentFilter) ([]models.Video, error) {
		return []models.Video{}, nil
	}
	s.videos.deleteFn = func(caller identity.Identity, id int) error {
		deletedBy = caller
		return nil
	}
	router := setupTestRouter(s)
	admin := tokenFor(t, 9, identity.RoleAdmin)

	w := doRequest(t, router, http.MethodGet, "/api/videos", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])

	w = doRequest(t, router, http.MethodGet, "/api/videos/7", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/videos", map[string]string{"title": "Sermon"}, admin)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodPut, "/api/videos/7", map[string]string{"title": "Sermon"}, admin)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/videos/7", nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9, deletedBy.UserID)

	w = doRequest(t, router, http.MethodPost, "/api/videos/7/comments", map[string]string{"content": ""}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Comment content is required", decodeBody(t, w)["error"])
}

func TestCategoryHandler(t *testing.T) {
	s := newTestServices()
	var lastType string
	s.categories.listFn = func(contentType string) ([]models.Category, error) {
		lastType = contentType
		if contentType == "podcast" {
			return nil, models.NewValidationError("contentType must be one of [blog video both]")
		}
		return []models.Category{{ID: 1}}, nil
	}
	s.categories.createFn = func(req *models.CreateCategoryRequest) (*models.Category, error) {
		if req.Name == "Faith" {
			return nil, &models.Error{Kind: models.ErrDuplicateSlug, Message: "Category with this slug already exists"}
		}
		return &models.Category{ID: 2, Name: req.Name, Slug: "hope"}, nil
	}
	router := setupTestRouter(s)
	admin := tokenFor(t, 9, identity.RoleAdmin)
	creator := tokenFor(t, 1, identity.RoleCreator)

	w := doRequest(t, router, http.MethodGet, "/api/categories?contentType=video", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "video", lastType)

	w = doRequest(t, router, http.MethodGet, "/api/categories?contentType=podcast", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"contentType must be one of [blog video both]"}, decodeBody(t, w)["error"])

	w = doRequest(t, router, http.MethodPost, "/api/categories", map[string]string{"name": "Hope"}, creator)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/categories", map[string]string{"name": "Hope"}, admin)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/categories", map[string]string{"name": "Faith"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category with this slug already exists", decodeBody(t, w)["error"])

	w = doRequest(t, router, http.MethodDelete, "/api/categories/2", nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlaylistHandler(t *testing.T) {
	s := newTestServices()
	router := setupTestRouter(s)
	creator := tokenFor(t, 1, identity.RoleCreator)
	viewer := tokenFor(t, 5, identity.RoleViewer)

	t.Run("anonymous list", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/playlists?creator=1&isPublic=false", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, s.playlists.lastCaller)
		require.NotNil(t, s.playlists.lastFilter.IsPublic)
		assert.False(t, *s.playlists.lastFilter.IsPublic)
		assert.Equal(t, 1, s.playlists.lastFilter.CreatorID)
	})

	t.Run("list with token", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/playlists", nil, creator)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, s.playlists.lastCaller)
		assert.Equal(t, 1, s.playlists.lastCaller.UserID)
		assert.Nil(t, s.playlists.lastFilter.IsPublic)
	})

	t.Run("invalid visibility", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/playlists?isPublic=maybe", nil, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid isPublic parameter", decodeBody(t, w)["error"])
	})

	t.Run("private playlist", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/playlists/3", nil, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "This playlist is private", decodeBody(t, w)["error"])

		w = doRequest(t, router, http.MethodGet, "/api/playlists/3", nil, creator)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("create as viewer", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/playlists", map[string]string{"title": "Morning"}, viewer)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("add video", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/playlists/3/videos", map[string]int{}, creator)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Video ID is required", decodeBody(t, w)["error"])

		w = doRequest(t, router, http.MethodPost, "/api/playlists/3/videos", map[string]int{"videoId": 7}, creator)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Video is already in playlist", decodeBody(t, w)["error"])
	})

	t.Run("remove video", func(t *testing.T) {
		w := doRequest(t, router, http.MethodDelete, "/api/playlists/3/videos/7", nil, creator)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []int{7}, s.playlists.removed)

		w = doRequest(t, router, http.MethodDelete, "/api/playlists/3/videos/x", nil, creator)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid videoId parameter", decodeBody(t, w)["error"])
	})
}

// multipartBody builds a form with a single file part
func multipartBody(t *testing.T, field, fileName, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("note", "ignored"))
	if field != "" {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + fileName + `"`}
		header["Content-Type"] = []string{contentType}
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadHandler(t *testing.T) {
	s := newTestServices()
	router := setupTestRouter(s)
	creator := tokenFor(t, 1, identity.RoleCreator)
	viewer := tokenFor(t, 5, identity.RoleViewer)

	tests := []struct {
		name            string
		path            string
		field           string
		contentType     string
		content         []byte
		token           string
		maxSize         int64
		expectedStatus  int
		expectedMessage string
	}{
		{name: "image", path: "/api/upload/image", field: "image", contentType: "image/png", content: []byte("png"), token: viewer, expectedStatus: http.StatusOK},
		{name: "missing file", path: "/api/upload/image", token: viewer, expectedStatus: http.StatusBadRequest, expectedMessage: "Please upload a file"},
		{name: "wrong field", path: "/api/upload/image", field: "file", contentType: "image/png", content: []byte("png"), token: viewer, expectedStatus: http.StatusBadRequest, expectedMessage: "Please upload a file"},
		{name: "rejected type", path: "/api/upload/image", field: "image", contentType: "text/plain", content: []byte("txt"), token: viewer, expectedStatus: http.StatusBadRequest, expectedMessage: "Only image files are allowed!"},
		{name: "anonymous", path: "/api/upload/image", field: "image", contentType: "image/png", content: []byte("png"), expectedStatus: http.StatusUnauthorized, expectedMessage: "Not authorized to access this route"},
		{name: "video as viewer", path: "/api/video-upload/video", field: "video", contentType: "video/mp4", content: []byte("mp4"), token: viewer, expectedStatus: http.StatusForbidden, expectedMessage: "User role viewer is not authorized to access this route"},
		{name: "video missing file", path: "/api/video-upload/video", token: creator, expectedStatus: http.StatusBadRequest, expectedMessage: "Please upload a video file"},
		{
			name:            "body over the limit",
			path:            "/api/video-upload/video",
			field:           "video",
			contentType:     "video/mp4",
			content:         bytes.Repeat([]byte("v"), 2*multipartOverhead+2<<10),
			token:           creator,
			maxSize:         1 << 20,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "File size exceeds the 1 MB limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.uploads.maxSize = 5 << 20
			if tt.maxSize != 0 {
				s.uploads.maxSize = tt.maxSize
			}
			body, contentType := multipartBody(t, tt.field, "file.bin", tt.contentType, tt.content)
			req := httptest.NewRequest(http.MethodPost, tt.path, body)
			req.Header.Set("Content-Type", contentType)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeBody(t, w)
			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, response["error"])
				return
			}
			assert.Equal(t, tt.content, s.uploads.received)
			assert.Equal(t, "/uploads/file.bin", response["data"].(map[string]any)["filePath"])
		})
	}
}

func TestHealthHandler(t *testing.T) {
	s := newTestServices()
	router := setupTestRouter(s)

	w := doRequest(t, router, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "API is running", body["message"])
	assert.Equal(t, "test", body["environment"])
	assert.Equal(t, "up", body["database"])

	s.db.err = errors.New("connection refused")
	w = doRequest(t, router, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "down", decodeBody(t, w)["database"])
}

func TestUnknownRoute(t *testing.T) {
	router := setupTestRouter(newTestServices())

	for _, path := range []string{"/api/sermons", "/nothing/here"} {
		w := doRequest(t, router, http.MethodGet, path, nil, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, map[string]any{"success": false, "error": "Route not found"}, decodeBody(t, w))
	}
}

func TestMaintenanceHandler(t *testing.T) {
	s := newTestServices()
	s.reaper.removed = 3
	router := setupTestRouter(s)

	w := doRequest(t, router, http.MethodPost, "/api/maintenance/files/reap", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/maintenance/files/reap", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeBody(t, w)["data"].(map[string]any)["removed"])
}
