package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse is the envelope returned for every failed request.
// Error holds either a single message or a list of validation messages.
type ErrorResponse struct {
	Success bool `json:"success"`
	Error   any  `json:"error"`
}

// DataResponse is the envelope returned for single-resource responses
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ListResponse is the envelope returned for collection responses
type ListResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil && h.Logger != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondData wraps data into the success envelope
func (h *BaseHandler) RespondData(w http.ResponseWriter, status int, data any) {
	h.RespondJSON(w, status, DataResponse{Success: true, Data: data})
}

// RespondList wraps a collection into the success envelope with its count
func (h *BaseHandler) RespondList(w http.ResponseWriter, count int, data any) {
	h.RespondJSON(w, http.StatusOK, ListResponse{Success: true, Count: count, Data: data})
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, ErrorResponse{Success: false, Error: message})
}

// RespondErrors sends an error JSON response carrying several messages
func (h *BaseHandler) RespondErrors(w http.ResponseWriter, status int, messages []string) {
	h.RespondJSON(w, status, ErrorResponse{Success: false, Error: messages})
}

// WriteError writes the error envelope without a handler, for use in middlewares
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: message})
}
