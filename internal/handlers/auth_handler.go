package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/promiseroad/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Register validates the request, creates a user and returns it together with an access token.
	//
	// "req" parameter contains username, email, password and optional names and role.
	// Self-registration as admin is rejected.
	//
	// If the request is invalid, or such user already exists, or some other error occurs, the error will be returned together with "nil" value.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResult, error)
	// Method Login checks the credentials and returns the user together with an access token.
	//
	// Unknown email and wrong password return the same invalid credentials error.
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResult, error)
	// Method GetMe retrieves the user with "userID".
	GetMe(ctx context.Context, userID int) (*models.User, error)
	// Method UpdateProfile applies a partial update to the profile of the user with "userID" and returns the updated user.
	UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error)
}

// AuthResponse is the body returned by register and login
type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: newBaseHandler(logger),
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, guards Guards) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(guards.Protect)
			r.Get("/me", h.GetMe)
			r.Put("/profile", h.UpdateProfile)
		})
	})
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Create a viewer or creator account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse "Validation failed or user already exists"
// @Failure 500 {object} ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to register user")
		return
	}

	h.RespondJSON(w, http.StatusCreated, AuthResponse{Success: true, Token: result.Token, User: result.User})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Exchange email and password for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} ErrorResponse "Missing email or password"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to log in")
		return
	}

	h.RespondJSON(w, http.StatusOK, AuthResponse{Success: true, Token: result.Token, User: result.User})
}

// GetMe handles GET /api/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse{data=models.User}
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	user, err := h.authService.GetMe(r.Context(), caller.UserID)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get current user")
		return
	}

	h.RespondData(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/auth/profile
// @Summary Update profile
// @Description Update names, bio, profile image and social links of the current user
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} DataResponse{data=models.User}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), caller.UserID, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to update profile")
		return
	}

	h.RespondData(w, http.StatusOK, user)
}
