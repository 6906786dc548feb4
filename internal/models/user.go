package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"id"`                 // Primary key
	Email        string    `json:"email" db:"email"`           // Unique, lower-cased email
	Name         string    `json:"name" db:"name"`             // Display name
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash, never serialized
	IsActive     bool      `json:"is_active" db:"is_active"`   // Inactive users cannot log in
	IsStaff      bool      `json:"is_staff" db:"is_staff"`     // Staff flag
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email" validate:"required,email,max=255"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password" validate:"required,min=5"`

	// Display name
	// required: true
	// example: John Doe
	Name string `json:"name" validate:"required,notblank,max=255"`
}

// TokenRequest represents the JSON body for exchanging credentials for a token
// swagger:model TokenRequest
type TokenRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email" validate:"required"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents a successful token response
// swagger:model TokenResponse
type TokenResponse struct {
	// Bearer token
	// example: JWT_TOKEN
	Token string `json:"token"`
}

// ProfileUpdateRequest represents a partial profile update
// swagger:model ProfileUpdateRequest
type ProfileUpdateRequest struct {
	// New display name
	// example: John Smith
	Name *string `json:"name" validate:"omitempty,notblank,max=255"`

	// New password
	// example: newsecret123
	Password *string `json:"password" validate:"omitempty,min=5"`
}

// UserResponse is the public representation of a user
// swagger:model UserResponse
type UserResponse struct {
	// Email
	// example: john@example.com
	Email string `json:"email"`

	// Display name
	// example: John Doe
	Name string `json:"name"`
}

// NewUserResponse hides everything but the public user fields.
func NewUserResponse(u *UserDB) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// ErrorResponse represents an error body returned by every endpoint
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: validation failed
	Error string `json:"error"`

	// Per-field details for validation errors
	Fields map[string]string `json:"fields,omitempty"`
}
