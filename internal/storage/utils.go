package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// GenerateFileName builds "<prefix>-<uuid><extension>".
// The extension gets a leading dot if it lacks one.
func GenerateFileName(prefix, extension string) string {
	name := prefix + "-" + uuid.New().String()
	if extension == "" {
		return name
	}
	if extension[0] != '.' {
		return name + "." + extension
	}
	return name + extension
}

// RelativeToPrefix turns a public URL path such as "/uploads/videos/a.mp4" into
// the storage relative path "videos/a.mp4". It returns false for external URLs
// and for paths outside urlPrefix.
func RelativeToPrefix(urlPath, urlPrefix string) (string, bool) {
	prefix := "/" + strings.Trim(urlPrefix, "/") + "/"
	if !strings.HasPrefix(urlPath, prefix) {
		return "", false
	}

	rel := path.Clean(strings.TrimPrefix(urlPath, prefix))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// sizeWriter counts the bytes written through it
type sizeWriter struct {
	size int64
}

// Write implements io.Writer interface
func (sw *sizeWriter) Write(p []byte) (int, error) {
	n := len(p)
	sw.size += int64(n)
	return n, nil
}

// Size returns the total number of bytes written
func (sw *sizeWriter) Size() int64 {
	return sw.size
}

// NewSizeWriter creates a new SizeWriter instance
func NewSizeWriter() *sizeWriter {
	return &sizeWriter{}
}
