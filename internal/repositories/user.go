package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/recipe-app-api/internal/models"
)

const userColumns = `id, email, name, password_hash, is_active, is_staff, created_at, updated_at`

// UserReadRepository handles user read operations
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByEmail returns the user with the given (already normalized) email, or nil if none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// GetByID returns the user with the given id, or nil if none.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, userID)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, arg)

	logQuery(query, []any{arg}, user.UserID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository handles user write operations
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new user. A duplicate email yields models.ErrConflict.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, is_active, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	args := []any{user.UserID, user.Email, user.Name, user.PasswordHash, user.IsActive, user.IsStaff}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&user.CreatedAt, &user.UpdatedAt)

	logQuery(query, []any{user.UserID, user.Email, user.Name}, user.CreatedAt, err)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", user.Email, models.ErrConflict)
		}
		return err
	}
	return nil
}

// Update persists the mutable profile fields (name, password hash).
func (r *UserWriteRepository) Update(ctx context.Context, user *models.UserDB) error {
	query := `
		UPDATE users
		SET name = $2, password_hash = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, user.UserID, user.Name, user.PasswordHash)
	err := row.Scan(&user.UpdatedAt)

	logQuery(query, []any{user.UserID, user.Name}, user.UpdatedAt, err)

	return err
}
