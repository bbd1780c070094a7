package models

import "time"

// Playlist is an ordered collection of videos owned by a creator
type Playlist struct {
	ID           int            `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	ThumbnailURL string         `json:"thumbnailUrl,omitempty"`
	CreatorID    int            `json:"-"`
	Creator      *UserSummary   `json:"creator,omitempty"`
	Videos       []VideoSummary `json:"videos"`
	IsPublic     bool           `json:"isPublic"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// PlaylistRequest is the body of playlist creation. Creator is never taken from the body.
type PlaylistRequest struct {
	Title        string `json:"title" validate:"notblank,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"max=500"`
	IsPublic     *bool  `json:"isPublic"`
}

// UpdatePlaylistRequest is a partial playlist update. Nil fields are left unchanged.
type UpdatePlaylistRequest struct {
	Title        *string `json:"title" validate:"omitempty,notblank,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	ThumbnailURL *string `json:"thumbnailUrl" validate:"omitempty,max=500"`
	IsPublic     *bool   `json:"isPublic"`
}

// PlaylistFilter holds list filters. IsPublic is nil when not requested.
type PlaylistFilter struct {
	CreatorID int
	IsPublic  *bool
}

// AddVideoRequest is the body of adding a video to a playlist
type AddVideoRequest struct {
	VideoID int `json:"videoId"`
}
