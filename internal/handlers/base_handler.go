package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/libs/auth/identity"
	"github.com/promiseroad/backend/libs/handlers"
	"github.com/promiseroad/backend/libs/middlewares"
	"go.uber.org/zap"
)

// Middleware is a standard net/http middleware
type Middleware = func(http.Handler) http.Handler

// Guards holds the authentication middlewares handlers attach to their routes
type Guards struct {
	// Protect rejects requests without a valid bearer token
	Protect Middleware
	// Optional decodes the bearer token when present
	Optional Middleware
}

// Response envelopes, re-exported for the API documentation
type (
	ErrorResponse = handlers.ErrorResponse
	DataResponse  = handlers.DataResponse
	ListResponse  = handlers.ListResponse
)

// BaseHandler adds domain error mapping to the shared response helpers
type BaseHandler struct {
	handlers.BaseHandler
}

func newBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{BaseHandler: handlers.BaseHandler{Logger: logger}}
}

// respondServiceError maps an error returned by a service to the client response.
// Unknown errors are logged and hidden behind a generic 500.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		h.RespondErrors(w, http.StatusBadRequest, validationErr.Messages)
		return
	}

	var domainErr *models.Error
	if errors.As(err, &domainErr) {
		if status := statusFor(domainErr.Kind); status != http.StatusInternalServerError {
			h.RespondError(w, status, domainErr.Message)
			return
		}
	}

	h.Logger.Error(action,
		zap.Error(err),
		zap.String("request_id", middlewares.GetRequestID(r.Context())),
	)
	h.RespondError(w, http.StatusInternalServerError, "Server Error")
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, models.ErrUnauthenticated), errors.Is(kind, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(kind, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, models.ErrConflict), errors.Is(kind, models.ErrDuplicateSlug), errors.Is(kind, models.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the request body into dst, responding 400 on malformed input
func (h *BaseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// pathID parses a positive integer path parameter, responding 400 when it is malformed
func (h *BaseHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive integer query parameter. Absent parameters yield zero.
func (h *BaseHandler) queryID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// caller returns the identity stored by the Protect middleware
func (h *BaseHandler) caller(w http.ResponseWriter, r *http.Request) (identity.Identity, bool) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
	}
	return id, ok
}

// optionalCaller returns the identity stored by the OptionalAuth middleware, or nil for anonymous requests
func optionalCaller(r *http.Request) *identity.Identity {
	if id, ok := identity.FromContext(r.Context()); ok {
		return &id
	}
	return nil
}
