package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/recipe-app-api/internal/jwt"
	"github.com/sbilibin2017/recipe-app-api/internal/logger"
	"github.com/sbilibin2017/recipe-app-api/internal/models"
	"github.com/sbilibin2017/recipe-app-api/internal/repositories"
	"github.com/sbilibin2017/recipe-app-api/internal/validation"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 5

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) error
	Update(ctx context.Context, user *models.UserDB) error
}

// TokenGenerator issues and parses signed tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, tokenID string) (string, error)
	GetClaims(ctx context.Context, token string) (*jwt.Claims, error)
}

// TokenStore tracks the live token id of each user.
type TokenStore interface {
	SetToken(ctx context.Context, userID uuid.UUID, tokenID string) error
	GetToken(ctx context.Context, userID uuid.UUID) (string, error)
}

// AuthService handles registration, login, token checks and the user profile.
type AuthService struct {
	reader UserReader
	writer UserWriter
	tokens TokenGenerator
	store  TokenStore
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenGenerator, store TokenStore) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		tokens: tokens,
		store:  store,
	}
}

func validatePassword(password string) error {
	return validation.Var("password", password, fmt.Sprintf("required,min=%d", MinPasswordLength))
}

// NormalizeEmail trims the address and lower-cases it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an active user with a hashed password.
func (svc *AuthService) Register(ctx context.Context, email, password, name string) (*models.UserDB, error) {
	email = NormalizeEmail(email)
	if err := validation.Var("email", email, "required,email,max=255"); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("user already exists", "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user := &models.UserDB{
		UserID:       uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}
	if err := svc.writer.Save(ctx, user); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	logger.Log.Infow("user registered", "user_id", user.UserID)
	return user, nil
}

// Login checks the credentials and issues a token, superseding the user's previous one.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil || !user.IsActive {
		logger.Log.Infow("login rejected", "email", email)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "email", email)
		return "", ErrInvalidCredentials
	}

	tokenID := uuid.NewString()
	token, err := svc.tokens.Generate(ctx, user.UserID, tokenID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	if err := svc.store.SetToken(ctx, user.UserID, tokenID); err != nil {
		logger.Log.Errorw("failed to store token", "err", err)
		return "", err
	}

	return token, nil
}

// Authenticate resolves a token to its active user.
func (svc *AuthService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := svc.tokens.GetClaims(ctx, token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	live, err := svc.store.GetToken(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return uuid.Nil, ErrInvalidToken
		}
		return uuid.Nil, fmt.Errorf("get live token: %w", err)
	}
	if live != claims.TokenID() {
		return uuid.Nil, fmt.Errorf("%w: superseded", ErrInvalidToken)
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		return uuid.Nil, err
	}
	if user == nil || !user.IsActive {
		return uuid.Nil, fmt.Errorf("%w: user inactive or removed", ErrInvalidToken)
	}

	return user.UserID, nil
}

// GetProfile returns the user.
func (svc *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile changes the name and/or password. Nil arguments are left unchanged.
func (svc *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, password *string) (*models.UserDB, error) {
	if password != nil {
		if err := validatePassword(*password); err != nil {
			return nil, err
		}
	}

	user, err := svc.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = strings.TrimSpace(*name)
	}
	if password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "err", err)
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if err := svc.writer.Update(ctx, user); err != nil {
		logger.Log.Errorw("failed to update user", "err", err)
		return nil, err
	}
	return user, nil
}
