package models

import "time"

// CommentTarget names the kind of content a comment belongs to
type CommentTarget string

const (
	CommentTargetBlog  CommentTarget = "blog"
	CommentTargetVideo CommentTarget = "video"
)

// Comment is an append-only remark on a blog post or video
type Comment struct {
	ID         int           `json:"id"`
	TargetType CommentTarget `json:"-"`
	TargetID   int           `json:"-"`
	UserID     int           `json:"-"`
	User       *UserSummary  `json:"user,omitempty"`
	Content    string        `json:"content"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// CommentRequest is the body of a new comment
type CommentRequest struct {
	Content string `json:"content"`
}
