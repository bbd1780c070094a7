package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger checks that the database is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
}

const pingTimeout = 2 * time.Second

// HealthHandler reports liveness of the API
type HealthHandler struct {
	BaseHandler
	db          Pinger
	environment string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger, environment string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: newBaseHandler(logger),
		db:          db,
		environment: environment,
	}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health handles GET /api/health
// @Summary Health check
// @Description Always 200 while the process serves requests. The database field reports the ping result.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	database := "up"
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		h.Logger.Warn("database ping failed", zap.Error(err))
		database = "down"
	}

	h.RespondJSON(w, http.StatusOK, HealthResponse{
		Success:     true,
		Message:     "API is running",
		Environment: h.environment,
		Database:    database,
	})
}

// NotFound responds to unknown routes
func (h *HealthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.RespondError(w, http.StatusNotFound, "Route not found")
}
