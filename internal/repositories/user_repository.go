package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/promiseroad/backend/internal/models"
	"go.uber.org/zap"
)

const userColumns = `
	id, username, email, password_hash, first_name, last_name, profile_image, COALESCE(bio, ''), role,
	social_facebook, social_twitter, social_instagram, social_youtube, created_at, updated_at
`

// userRepository implements UserRepository
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.ProfileImage,
		&user.Bio,
		&user.Role,
		&user.SocialLinks.Facebook,
		&user.SocialLinks.Twitter,
		&user.SocialLinks.Instagram,
		&user.SocialLinks.Youtube,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, first_name, last_name, role)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role)
	if err != nil {
		if isDuplicateKey(err) {
			return models.Conflict("User with this email or username already exists")
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByID retrieves a user by id
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("User not found")
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? LIMIT 1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("User not found")
	}
	if err != nil {
		r.logger.Error("failed to get user by email", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// ExistsByEmailOrUsername checks if a user exists with the given email or username
func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? OR username = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email, username).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check user existence", zap.Error(err))
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// UpdateProfile applies the non-nil fields of the request to the user's row
func (r *userRepository) UpdateProfile(ctx context.Context, id int, req *models.UpdateProfileRequest) error {
	var setParts []string
	var args []any

	if req.FirstName != nil {
		setParts = append(setParts, "first_name = ?")
		args = append(args, *req.FirstName)
	}
	if req.LastName != nil {
		setParts = append(setParts, "last_name = ?")
		args = append(args, *req.LastName)
	}
	if req.Bio != nil {
		setParts = append(setParts, "bio = ?")
		args = append(args, *req.Bio)
	}
	if req.ProfileImage != nil {
		setParts = append(setParts, "profile_image = ?")
		args = append(args, *req.ProfileImage)
	}
	if req.SocialLinks != nil {
		setParts = append(setParts,
			"social_facebook = ?", "social_twitter = ?", "social_instagram = ?", "social_youtube = ?")
		args = append(args,
			req.SocialLinks.Facebook, req.SocialLinks.Twitter, req.SocialLinks.Instagram, req.SocialLinks.Youtube)
	}

	if len(setParts) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to update user profile", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update user profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NotFound("User not found")
	}

	return nil
}
