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

// TagReadRepository handles tag read operations
type TagReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTagReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TagReadRepository {
	return &TagReadRepository{db: db, txGetter: txGetter}
}

// List returns the user's tags ordered by name descending.
// With assignedOnly set, only tags attached to at least one of the user's recipes are returned;
// EXISTS keeps each tag at most once.
func (r *TagReadRepository) List(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.TagDB, error) {
	query := `SELECT t.id, t.user_id, t.name, t.created_at FROM tags t WHERE t.user_id = $1`
	if assignedOnly {
		query += `
			AND EXISTS (
				SELECT 1 FROM recipe_tags rt
				JOIN recipes r ON r.id = rt.recipe_id
				WHERE rt.tag_id = t.id AND r.user_id = $1
			)`
	}
	query += ` ORDER BY t.name DESC, t.id DESC`

	tags := []models.TagDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &tags, query, userID)

	logQuery(query, []any{userID, assignedOnly}, len(tags), err)

	if err != nil {
		return nil, err
	}
	return tags, nil
}

// TagWriteRepository handles tag write operations
type TagWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTagWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TagWriteRepository {
	return &TagWriteRepository{db: db, txGetter: txGetter}
}

// GetOrCreate returns the user's tag with exactly this name, inserting it when absent.
// The no-op DO UPDATE makes RETURNING yield the existing row on conflict, so concurrent
// callers always end up with the same single row.
func (r *TagWriteRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*models.TagDB, error) {
	query := `
		INSERT INTO tags (user_id, name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, name)
		DO UPDATE SET name = EXCLUDED.name
		RETURNING id, user_id, name, created_at
	`

	var tag models.TagDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &tag, query, userID, name)

	logQuery(query, []any{userID, name}, tag.ID, err)

	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update renames the user's tag. Returns nil when the tag does not exist or belongs to
// someone else, models.ErrConflict when the user already has a tag with that name.
func (r *TagWriteRepository) Update(ctx context.Context, userID uuid.UUID, tagID int64, name string) (*models.TagDB, error) {
	query := `
		UPDATE tags SET name = $3
		WHERE id = $2 AND user_id = $1
		RETURNING id, user_id, name, created_at
	`

	var tag models.TagDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &tag, query, userID, tagID, name)

	logQuery(query, []any{userID, tagID, name}, tag.ID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("tag %q: %w", name, models.ErrConflict)
		}
		return nil, err
	}
	return &tag, nil
}

// Delete removes the user's tag and its recipe associations.
// Reports false when no tag of this user has that id.
func (r *TagWriteRepository) Delete(ctx context.Context, userID uuid.UUID, tagID int64) (bool, error) {
	query := `DELETE FROM tags WHERE id = $2 AND user_id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, userID, tagID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{userID, tagID}, rowsAffected, err)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
