package models

import "time"

// VideoStatus enumerates the publication states of a video
type VideoStatus string

const (
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusPublished  VideoStatus = "published"
	VideoStatusArchived   VideoStatus = "archived"
)

// VideoType tells where the video is hosted
type VideoType string

const (
	VideoTypeUpload  VideoType = "upload"
	VideoTypeYoutube VideoType = "youtube"
	VideoTypeVimeo   VideoType = "vimeo"
)

// Video represents a video
type Video struct {
	ID           int               `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	VideoURL     string            `json:"videoUrl"`
	VideoType    VideoType         `json:"videoType"`
	ExternalID   string            `json:"externalId,omitempty"`
	ThumbnailURL string            `json:"thumbnailUrl,omitempty"`
	AuthorID     int               `json:"-"`
	Author       *UserSummary      `json:"author,omitempty"`
	CategoryIDs  []int             `json:"-"`
	Categories   []CategorySummary `json:"categories"`
	Tags         []string          `json:"tags"`
	Duration     *int              `json:"duration,omitempty"` // Seconds
	Status       VideoStatus       `json:"status"`
	PublishDate  *time.Time        `json:"publishDate,omitempty"`
	ViewCount    int               `json:"viewCount"`
	Comments     []Comment         `json:"comments,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// VideoRequest is the body of video creation. Author is never taken from the body.
type VideoRequest struct {
	Title        string   `json:"title" validate:"notblank,max=200"`
	Description  string   `json:"description" validate:"notblank"`
	VideoURL     string   `json:"videoUrl" validate:"notblank,max=500"`
	VideoType    string   `json:"videoType" validate:"required,oneof=upload youtube vimeo"`
	ExternalID   string   `json:"externalId" validate:"max=100"`
	ThumbnailURL string   `json:"thumbnailUrl" validate:"max=500"`
	Categories   []int    `json:"categories" validate:"dive,gt=0"`
	Tags         []string `json:"tags" validate:"max=30,dive,notblank,max=50"`
	Duration     *int     `json:"duration" validate:"omitempty,gte=0"`
	Status       string   `json:"status" validate:"omitempty,oneof=processing published archived"`
}

// UpdateVideoRequest is a partial video update. Nil fields are left unchanged.
type UpdateVideoRequest struct {
	Title        *string   `json:"title" validate:"omitempty,notblank,max=200"`
	Description  *string   `json:"description" validate:"omitempty,notblank"`
	VideoURL     *string   `json:"videoUrl" validate:"omitempty,notblank,max=500"`
	VideoType    *string   `json:"videoType" validate:"omitempty,oneof=upload youtube vimeo"`
	ExternalID   *string   `json:"externalId" validate:"omitempty,max=100"`
	ThumbnailURL *string   `json:"thumbnailUrl" validate:"omitempty,max=500"`
	Categories   *[]int    `json:"categories" validate:"omitempty,dive,gt=0"`
	Tags         *[]string `json:"tags" validate:"omitempty,max=30,dive,notblank,max=50"`
	Duration     *int      `json:"duration" validate:"omitempty,gte=0"`
	Status       *string   `json:"status" validate:"omitempty,oneof=processing published archived"`
}

// VideoSummary is the populated form of a video inside a playlist
type VideoSummary struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	VideoURL     string       `json:"videoUrl,omitempty"`
	VideoType    VideoType    `json:"videoType,omitempty"`
	ThumbnailURL string       `json:"thumbnailUrl,omitempty"`
	Duration     *int         `json:"duration,omitempty"`
	ViewCount    int          `json:"viewCount"`
	Status       VideoStatus  `json:"-"`
	Author       *UserSummary `json:"author,omitempty"`
}
