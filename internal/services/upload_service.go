package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/internal/storage"
	"go.uber.org/zap"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Create creates a new file at the slash separated path relative to the storage root
	Create(relPath string) (io.WriteCloser, error)

	// Delete removes a file. Missing files are not an error.
	Delete(relPath string) error
}

const (
	megabyte = 1 << 20
	// Thumbnails larger than this box are downscaled to fit inside it
	thumbnailMaxWidth  = 1280
	thumbnailMaxHeight = 720
)

var videoContentTypes = []string{"video/mp4", "video/webm", "video/ogg", "video/quicktime"}

// uploadRule holds the acceptance rules and target location of an upload kind
type uploadRule struct {
	folder        string
	prefix        string
	maxSize       int64
	accepts       func(contentType string) bool
	rejectMessage string
	missingFile   string
	resize        bool
}

// isImage accepts raster image types only; SVG and other scriptable formats are rejected
func isImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") && InferExtensionFromContentType(contentType) != ""
}

func isVideo(contentType string) bool {
	return slices.Contains(videoContentTypes, contentType)
}

var uploadRules = map[models.UploadKind]uploadRule{
	models.UploadKindImage: {
		prefix:        "image",
		maxSize:       5 * megabyte,
		accepts:       isImage,
		rejectMessage: "Only image files are allowed!",
		missingFile:   "Please upload a file",
	},
	models.UploadKindVideo: {
		folder:        "videos",
		prefix:        "video",
		maxSize:       500 * megabyte,
		accepts:       isVideo,
		rejectMessage: "Only video files are allowed!",
		missingFile:   "Please upload a video file",
	},
	models.UploadKindThumbnail: {
		folder:        "thumbnails",
		prefix:        "thumbnail",
		maxSize:       5 * megabyte,
		accepts:       isImage,
		rejectMessage: "Only image files are allowed for thumbnails!",
		missingFile:   "Please upload a thumbnail image",
		resize:        true,
	},
}

// uploadService stores multipart uploads on disk
type uploadService struct {
	storage   Storage
	urlPrefix string
	logger    *zap.Logger
}

// NewUploadService creates a new upload service.
// "urlPrefix" is the public path under which the storage root is served.
func NewUploadService(storage Storage, urlPrefix string, logger *zap.Logger) *uploadService {
	return &uploadService{
		storage:   storage,
		urlPrefix: urlPrefix,
		logger:    logger,
	}
}

// MaxSize returns the size limit in bytes of an upload kind, or zero for unknown kinds
func (s *uploadService) MaxSize(kind models.UploadKind) int64 {
	return uploadRules[kind].maxSize
}

// MissingFileMessage returns the client message used when the form carries no file
func (s *uploadService) MissingFileMessage(kind models.UploadKind) string {
	if rule, ok := uploadRules[kind]; ok {
		return rule.missingFile
	}
	return "Please upload a file"
}

// Upload validates and stores a file of the given kind.
//
// "contentType" is the part's declared MIME type and decides the stored extension.
// "originalName" is the client file name and is only logged.
func (s *uploadService) Upload(ctx context.Context, kind models.UploadKind, reader io.Reader, contentType, originalName string) (*models.UploadedFile, error) {
	rule, ok := uploadRules[kind]
	if !ok {
		return nil, models.BadRequest(fmt.Sprintf("unknown upload kind %q", kind))
	}
	contentType = normalizeContentType(contentType)
	if !rule.accepts(contentType) {
		return nil, models.BadRequest(rule.rejectMessage)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The stored extension follows the accepted content type so the file server never
	// serves an upload under a type the client did not declare
	extension := InferExtensionFromContentType(contentType)

	fileName := storage.GenerateFileName(rule.prefix, extension)
	relPath := path.Join(rule.folder, fileName)

	var size int64
	var err error
	if rule.resize {
		size, err = s.writeThumbnail(relPath, reader, extension, rule.maxSize)
	} else {
		size, err = s.write(relPath, reader, rule.maxSize)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("file uploaded",
		zap.String("kind", string(kind)),
		zap.String("original_name", filepath.Base(originalName)),
		zap.String("path", relPath),
		zap.Int64("size", size),
	)

	return &models.UploadedFile{
		FileName: fileName,
		FilePath: path.Join("/", s.urlPrefix, relPath),
	}, nil
}

// write copies reader into storage, enforcing maxSize
func (s *uploadService) write(relPath string, reader io.Reader, maxSize int64) (int64, error) {
	sizeWriter := storage.NewSizeWriter()
	teeReader := io.TeeReader(io.LimitReader(reader, maxSize+1), sizeWriter)

	writeCloser, err := s.storage.Create(relPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	_, copyErr := io.Copy(writeCloser, teeReader)
	closeErr := writeCloser.Close()

	var writeErr error
	switch {
	case copyErr != nil:
		writeErr = fmt.Errorf("failed to write file: %w", copyErr)
	case closeErr != nil:
		writeErr = fmt.Errorf("failed to close file: %w", closeErr)
	case sizeWriter.Size() > maxSize:
		writeErr = fileTooLarge(maxSize)
	}

	if writeErr != nil {
		if err := s.storage.Delete(relPath); err != nil {
			s.logger.Warn("failed to remove partial upload", zap.String("path", relPath), zap.Error(err))
		}
		return 0, writeErr
	}

	return sizeWriter.Size(), nil
}

// writeThumbnail stores an image, downscaling decodable images that exceed the thumbnail box
func (s *uploadService) writeThumbnail(relPath string, reader io.Reader, extension string, maxSize int64) (int64, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return 0, fmt.Errorf("failed to read thumbnail: %w", err)
	}
	if int64(len(data)) > maxSize {
		return 0, fileTooLarge(maxSize)
	}

	format, formatErr := imaging.FormatFromExtension(extension)
	img, decodeErr := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if formatErr != nil || decodeErr != nil {
		return s.write(relPath, bytes.NewReader(data), maxSize)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= thumbnailMaxWidth && bounds.Dy() <= thumbnailMaxHeight {
		return s.write(relPath, bytes.NewReader(data), maxSize)
	}

	resized := imaging.Fit(img, thumbnailMaxWidth, thumbnailMaxHeight, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return 0, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return s.write(relPath, &buf, maxSize)
}

// normalizeContentType drops parameters such as "; charset=" and lowercases the media type
func normalizeContentType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func fileTooLarge(maxSize int64) error {
	return models.BadRequest(fmt.Sprintf("File size exceeds the %d MB limit", maxSize/megabyte))
}

// InferExtensionFromContentType infers the extension from the content type
//
// "contentType" parameter is the content type to infer the extension from.
//
// Returns the inferred extension, or empty string if the extension cannot be inferred.
func InferExtensionFromContentType(contentType string) string {
	contentTypeMap := map[string]string{
		"image/jpeg":      ".jpg",
		"image/jpg":       ".jpg",
		"image/pjpeg":     ".jpg",
		"image/png":       ".png",
		"image/gif":       ".gif",
		"image/webp":      ".webp",
		"image/bmp":       ".bmp",
		"image/tiff":      ".tiff",
		"video/mp4":       ".mp4",
		"video/webm":      ".webm",
		"video/ogg":       ".ogv",
		"video/quicktime": ".mov",
	}

	if ext, ok := contentTypeMap[contentType]; ok {
		return ext
	}
	return ""
}
