package services

import (
	"context"
	"testing"

	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/libs/auth/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPlaylistService(playlists ...*models.Playlist) (*playlistService, *mockPlaylistRepository) {
	repo := newMockPlaylistRepository(playlists...)
	videos := newMockVideoRepository(
		&models.Video{ID: 7, AuthorID: 1, Status: models.VideoStatusPublished},
		&models.Video{ID: 8, AuthorID: 1, Status: models.VideoStatusProcessing},
	)
	return NewPlaylistService(repo, videos, zap.NewNop()), repo
}

func TestPlaylistService_List(t *testing.T) {
	public := true
	private := false

	tests := []struct {
		name             string
		caller           *identity.Identity
		filter           models.PlaylistFilter
		expectedIsPublic *bool
		expectQuery      bool
	}{
		{name: "anonymous sees public only", caller: nil, filter: models.PlaylistFilter{}, expectedIsPublic: &public, expectQuery: true},
		{name: "creator filter from another user", caller: &creatorB, filter: models.PlaylistFilter{CreatorID: 1}, expectedIsPublic: &public, expectQuery: true},
		{name: "own playlists of every visibility", caller: &creatorA, filter: models.PlaylistFilter{CreatorID: 1}, expectedIsPublic: nil, expectQuery: true},
		{name: "own private playlists", caller: &creatorA, filter: models.PlaylistFilter{CreatorID: 1, IsPublic: &private}, expectedIsPublic: &private, expectQuery: true},
		{name: "private playlists of another user", caller: &admin, filter: models.PlaylistFilter{CreatorID: 1, IsPublic: &private}, expectQuery: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestPlaylistService(&models.Playlist{ID: 1, CreatorID: 1, IsPublic: true})

			playlists, err := svc.List(context.Background(), tt.caller, tt.filter)

			require.NoError(t, err)
			if !tt.expectQuery {
				assert.Empty(t, playlists)
				assert.Nil(t, repo.lastFilter)
				return
			}
			require.NotNil(t, repo.lastFilter)
			assert.Equal(t, tt.expectedIsPublic, repo.lastFilter.IsPublic)
		})
	}
}

func TestPlaylistService_Get(t *testing.T) {
	svc, _ := newTestPlaylistService(
		&models.Playlist{ID: 1, CreatorID: 1, IsPublic: true},
		&models.Playlist{ID: 2, CreatorID: 1, IsPublic: false},
	)

	_, err := svc.Get(context.Background(), nil, 1)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), &creatorA, 2)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), nil, 2)
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.EqualError(t, err, "This playlist is private")

	_, err = svc.Get(context.Background(), &admin, 2)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.Get(context.Background(), nil, 3)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPlaylistService_Create(t *testing.T) {
	svc, _ := newTestPlaylistService()

	playlist, err := svc.Create(context.Background(), viewer, &models.PlaylistRequest{Title: "  Morning  "})
	require.NoError(t, err)
	assert.Equal(t, "Morning", playlist.Title)
	assert.Equal(t, viewer.UserID, playlist.CreatorID)
	assert.True(t, playlist.IsPublic)

	private := false
	playlist, err = svc.Create(context.Background(), viewer, &models.PlaylistRequest{Title: "Private", IsPublic: &private})
	require.NoError(t, err)
	assert.False(t, playlist.IsPublic)

	_, err = svc.Create(context.Background(), viewer, &models.PlaylistRequest{Title: " "})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"title is required"}, validationErr.Messages)
}

func TestPlaylistService_UpdateAndDelete(t *testing.T) {
	title := "Renamed"

	tests := []struct {
		name         string
		caller       identity.Identity
		expectedKind error
	}{
		{name: "creator", caller: creatorA},
		{name: "admin", caller: admin},
		{name: "other creator", caller: creatorB, expectedKind: models.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestPlaylistService(&models.Playlist{ID: 1, Title: "Old", CreatorID: 1, IsPublic: true})

			playlist, err := svc.Update(context.Background(), tt.caller, 1, &models.UpdatePlaylistRequest{Title: &title})
			if tt.expectedKind != nil {
				assert.ErrorIs(t, err, tt.expectedKind)
				assert.EqualError(t, err, "Not authorized to update this playlist")
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Renamed", playlist.Title)
			}

			err = svc.Delete(context.Background(), tt.caller, 1)
			if tt.expectedKind != nil {
				assert.ErrorIs(t, err, tt.expectedKind)
				assert.Contains(t, repo.playlists, 1)
			} else {
				require.NoError(t, err)
				assert.NotContains(t, repo.playlists, 1)
			}
		})
	}
}

func TestPlaylistService_AddVideo(t *testing.T) {
	tests := []struct {
		name            string
		caller          identity.Identity
		playlistID      int
		videoID         int
		existing        []int
		expectedKind    error
		expectedMessage string
	}{
		{name: "published video", caller: creatorA, playlistID: 1, videoID: 7},
		{name: "own unpublished video", caller: creatorA, playlistID: 1, videoID: 8},
		{name: "missing video id", caller: creatorA, playlistID: 1, videoID: 0, expectedKind: models.ErrBadRequest, expectedMessage: "Video ID is required"},
		{name: "unknown video", caller: creatorA, playlistID: 1, videoID: 99, expectedKind: models.ErrNotFound, expectedMessage: "Video not found"},
		{name: "unpublished video of another author", caller: creatorB, playlistID: 2, videoID: 8, expectedKind: models.ErrBadRequest, expectedMessage: "Video is not published"},
		{name: "video checked before playlist", caller: creatorB, playlistID: 99, videoID: 8, expectedKind: models.ErrBadRequest, expectedMessage: "Video is not published"},
		{name: "unknown playlist", caller: creatorA, playlistID: 99, videoID: 7, expectedKind: models.ErrNotFound, expectedMessage: "Playlist not found"},
		{name: "playlist of another user", caller: creatorB, playlistID: 1, videoID: 7, expectedKind: models.ErrForbidden, expectedMessage: "Not authorized to modify this playlist"},
		{name: "admin is not the creator", caller: admin, playlistID: 1, videoID: 7, expectedKind: models.ErrForbidden, expectedMessage: "Not authorized to modify this playlist"},
		{name: "duplicate video", caller: creatorA, playlistID: 1, videoID: 7, existing: []int{7}, expectedKind: models.ErrConflict, expectedMessage: "Video is already in playlist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestPlaylistService(
				&models.Playlist{ID: 1, CreatorID: 1, IsPublic: true},
				&models.Playlist{ID: 2, CreatorID: 2, IsPublic: true},
			)
			repo.videoIDs[tt.playlistID] = tt.existing

			playlist, err := svc.AddVideo(context.Background(), tt.caller, tt.playlistID, &models.AddVideoRequest{VideoID: tt.videoID})

			if tt.expectedKind != nil {
				assert.ErrorIs(t, err, tt.expectedKind)
				assert.EqualError(t, err, tt.expectedMessage)
				return
			}
			require.NoError(t, err)
			require.Len(t, playlist.Videos, 1)
			assert.Equal(t, tt.videoID, playlist.Videos[0].ID)
		})
	}
}

func TestPlaylistService_RemoveVideo(t *testing.T) {
	svc, repo := newTestPlaylistService(&models.Playlist{ID: 1, CreatorID: 1, IsPublic: true})
	repo.videoIDs[1] = []int{7, 8}

	_, err := svc.RemoveVideo(context.Background(), creatorB, 1, 7)
	assert.ErrorIs(t, err, models.ErrForbidden)

	playlist, err := svc.RemoveVideo(context.Background(), creatorA, 1, 7)
	require.NoError(t, err)
	require.Len(t, playlist.Videos, 1)
	assert.Equal(t, 8, playlist.Videos[0].ID)

	playlist, err = svc.RemoveVideo(context.Background(), creatorA, 1, 42)
	require.NoError(t, err)
	assert.Len(t, playlist.Videos, 1)
}
