package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FileReaper removes stored files whose owning rows were deleted
type FileReaper interface {
	// Method Reap removes every pending file and returns how many deletions were completed.
	Reap(ctx context.Context) (int, error)
}

// ReapResult is the body of a completed reap run
type ReapResult struct {
	Removed int `json:"removed"`
}

// MaintenanceHandler exposes maintenance jobs to external schedulers
type MaintenanceHandler struct {
	BaseHandler
	reaper FileReaper
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(reaper FileReaper, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		BaseHandler: newBaseHandler(logger),
		reaper:      reaper,
	}
}

// RegisterRoutes registers maintenance handler routes. The caller guards them with an API key.
func (h *MaintenanceHandler) RegisterRoutes(r chi.Router) {
	r.Post("/maintenance/files/reap", h.ReapFiles)
}

// ReapFiles handles POST /api/maintenance/files/reap
// @Summary Remove files of deleted videos
// @Description Removes every file scheduled for deletion. Files that cannot be removed are retried on the next run.
// @Tags maintenance
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} DataResponse{data=ReapResult}
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/maintenance/files/reap [post]
func (h *MaintenanceHandler) ReapFiles(w http.ResponseWriter, r *http.Request) {
	removed, err := h.reaper.Reap(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "failed to reap files")
		return
	}

	h.RespondData(w, http.StatusOK, ReapResult{Removed: removed})
}
