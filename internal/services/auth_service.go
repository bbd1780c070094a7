package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/libs/auth/identity"
	"github.com/promiseroad/backend/libs/auth/service"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for Users table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user, its ID is set on success.
	//
	// If the username or email is already taken, a conflict error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByID retrieves a user by ID.
	//
	// "id" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, a not found error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// Method GetByEmail retrieves a user by email.
	//
	// "email" parameter must already be lowercased.
	//
	// If user with such email does not exist, a not found error will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method ExistsByEmailOrUsername checks if a user with such email or username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	// Method UpdateProfile applies the non-nil fields of "req" to the user with "id".
	//
	// If user with such ID does not exist, a not found error will be returned.
	UpdateProfile(ctx context.Context, id int, req *models.UpdateProfileRequest) error
}

var errInvalidCredentials = &models.Error{Kind: models.ErrInvalidCredentials, Message: "Invalid credentials"}

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenGenerator *service.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Register creates a creator or viewer account and signs a token for it
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResult, error) {
	role := identity.RoleViewer
	if req.Role != "" {
		role = identity.Role(req.Role)
	}

	user, err := s.createUser(ctx, req, role)
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// CreateAdmin creates an administrator account. Admins cannot self-register over HTTP.
func (s *authService) CreateAdmin(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	req.Role = ""
	return s.createUser(ctx, req, identity.RoleAdmin)
}

const maxPasswordBytes = 72

func (s *authService) createUser(ctx context.Context, req *models.RegisterRequest, role identity.Role) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := validate(req); err != nil {
		return nil, err
	}
	// bcrypt input is capped in bytes, validator counts runes
	if len(req.Password) > maxPasswordBytes {
		return nil, models.NewValidationError(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, models.Conflict("User with this email or username already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int("userId", user.ID), zap.String("role", string(role)))
	return user, nil
}

// Login authenticates a user by email and password.
// Unknown emails and wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, models.BadRequest("Please provide email and password")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	return s.issue(user)
}

// GetMe returns the account of the caller
func (s *authService) GetMe(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile changes the editable profile fields of the caller and returns the updated account
func (s *authService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if req.Bio != nil {
		bio := plainTextPolicy.Sanitize(strings.TrimSpace(*req.Bio))
		req.Bio = &bio
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) issue(user *models.User) (*models.AuthResult, error) {
	token, err := s.tokenGenerator.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResult{Token: token, User: user}, nil
}
