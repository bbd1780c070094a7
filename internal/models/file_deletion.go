package models

import "time"

// FileDeletion is a stored file scheduled for removal from the upload directory
type FileDeletion struct {
	ID        int
	Path      string // Relative to the upload directory
	CreatedAt time.Time
}
