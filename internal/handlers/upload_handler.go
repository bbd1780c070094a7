package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/libs/auth/identity"
	authmw "github.com/promiseroad/backend/libs/auth/middleware"
	"go.uber.org/zap"
)

// UploadService is the interface that wraps methods for storing uploaded files.
type UploadService interface {
	// Method Upload validates the content type and size of a file and stores it.
	//
	// "kind" parameter selects the rules and target folder, please reference UploadKind constants.
	// "contentType" and "originalName" parameters are taken from the multipart part, only the extension of the name is kept.
	//
	// If the file is rejected, a bad request error will be returned together with "nil" value.
	Upload(ctx context.Context, kind models.UploadKind, reader io.Reader, contentType, originalName string) (*models.UploadedFile, error)
	// Method MaxSize returns the size limit in bytes of "kind".
	MaxSize(kind models.UploadKind) int64
	// Method MissingFileMessage returns the client message used when the form carries no file of "kind".
	MissingFileMessage(kind models.UploadKind) string
}

// multipartOverhead is the allowance for multipart headers and boundaries on top of the file size limit
const multipartOverhead = 1 << 20

// UploadHandler handles multipart file uploads
type UploadHandler struct {
	BaseHandler
	uploadService UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   newBaseHandler(logger),
		uploadService: uploadService,
	}
}

// RegisterRoutes registers all upload handler routes
func (h *UploadHandler) RegisterRoutes(r chi.Router, guards Guards) {
	r.Group(func(r chi.Router) {
		r.Use(guards.Protect)
		r.Post("/upload/image", h.UploadImage)

		r.Group(func(r chi.Router) {
			r.Use(authmw.Authorize(identity.RoleAdmin, identity.RoleCreator))
			r.Post("/video-upload/video", h.UploadVideo)
			r.Post("/video-upload/thumbnail", h.UploadThumbnail)
		})
	})
}

// UploadImage handles POST /api/upload/image
// @Summary Upload an image
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image, at most 5MB"
// @Success 200 {object} DataResponse{data=models.UploadedFile}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/upload/image [post]
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, models.UploadKindImage, "image")
}

// UploadVideo handles POST /api/video-upload/video
// @Summary Upload a video file
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param video formData file true "MP4, WebM, Ogg or QuickTime video, at most 500MB"
// @Success 200 {object} DataResponse{data=models.UploadedFile}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/video-upload/video [post]
func (h *UploadHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, models.UploadKindVideo, "video")
}

// UploadThumbnail handles POST /api/video-upload/thumbnail
// @Summary Upload a video thumbnail
// @Description Images larger than 1280x720 are downscaled to fit
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param thumbnail formData file true "Image, at most 5MB"
// @Success 200 {object} DataResponse{data=models.UploadedFile}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/video-upload/thumbnail [post]
func (h *UploadHandler) UploadThumbnail(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, models.UploadKindThumbnail, "thumbnail")
}

// upload streams the part named "field" into the upload service
func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request, kind models.UploadKind, field string) {
	maxSize := h.uploadService.MaxSize(kind)
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	reader, err := r.MultipartReader()
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, h.uploadService.MissingFileMessage(kind))
		return
	}

	part, err := findFilePart(reader, field)
	if err != nil {
		if h.isTooLarge(w, err, maxSize) {
			return
		}
		if !errors.Is(err, http.ErrMissingFile) {
			h.Logger.Warn("failed to read multipart form", zap.Error(err))
		}
		h.RespondError(w, http.StatusBadRequest, h.uploadService.MissingFileMessage(kind))
		return
	}
	defer part.Close()

	uploaded, err := h.uploadService.Upload(r.Context(), kind, part, part.Header.Get("Content-Type"), part.FileName())
	if err != nil {
		if h.isTooLarge(w, err, maxSize) {
			return
		}
		h.respondServiceError(w, r, err, "failed to upload file")
		return
	}

	h.RespondData(w, http.StatusOK, uploaded)
}

// isTooLarge responds 400 when err was caused by the request body limit
func (h *UploadHandler) isTooLarge(w http.ResponseWriter, err error, maxSize int64) bool {
	var maxBytesErr *http.MaxBytesError
	if !errors.As(err, &maxBytesErr) {
		return false
	}
	h.RespondError(w, http.StatusBadRequest, fmt.Sprintf("File size exceeds the %d MB limit", maxSize>>20))
	return true
}

// findFilePart skips form parts until the file part named field
func findFilePart(reader *multipart.Reader, field string) (*multipart.Part, error) {
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, http.ErrMissingFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == field && part.FileName() != "" {
			return part, nil
		}
		part.Close()
	}
}
