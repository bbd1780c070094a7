package models

import (
	"time"

	"github.com/promiseroad/backend/libs/auth/identity"
)

// SocialLinks holds optional links to the user's social profiles
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
	Twitter   string `json:"twitter,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
	Youtube   string `json:"youtube,omitempty" validate:"omitempty,url"`
}

// User represents a user in the system
type User struct {
	ID           int           `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"` // Never serialize password hash
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	ProfileImage string        `json:"profileImage,omitempty"`
	Bio          string        `json:"bio,omitempty"`
	Role         identity.Role `json:"role"`
	SocialLinks  SocialLinks   `json:"socialLinks"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// UserSummary is the populated form of a user reference
type UserSummary struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username  string `json:"username" validate:"notblank,min=3,max=50"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Role      string `json:"role" validate:"omitempty,oneof=creator viewer"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a partial update of the caller's profile.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName    *string      `json:"firstName" validate:"omitempty,max=100"`
	LastName     *string      `json:"lastName" validate:"omitempty,max=100"`
	Bio          *string      `json:"bio" validate:"omitempty,max=2000"`
	ProfileImage *string      `json:"profileImage" validate:"omitempty,max=500"`
	SocialLinks  *SocialLinks `json:"socialLinks"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
