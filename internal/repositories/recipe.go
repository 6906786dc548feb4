package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/recipe-app-api/internal/models"
)

const recipeColumns = `r.id, r.user_id, r.title, r.time_minutes, r.price, r.link, r.description,
	r.image, r.image_blurhash, r.created_at, r.updated_at`

// RecipeReadRepository handles recipe read operations
type RecipeReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewRecipeReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *RecipeReadRepository {
	return &RecipeReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the user's recipe, or nil when it does not exist or belongs to another user.
func (r *RecipeReadRepository) GetByID(ctx context.Context, userID uuid.UUID, recipeID int64) (*models.RecipeDB, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes r WHERE r.id = $2 AND r.user_id = $1`

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &recipe, query, userID, recipeID)

	logQuery(query, []any{userID, recipeID}, recipe.ID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

// List returns the user's recipes ordered by id descending.
// A non-empty tagIDs keeps recipes carrying at least one of those tags, each recipe once.
func (r *RecipeReadRepository) List(ctx context.Context, userID uuid.UUID, tagIDs []int64) ([]models.RecipeDB, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes r WHERE r.user_id = $1`
	args := []any{userID}
	if len(tagIDs) > 0 {
		query += `
			AND EXISTS (
				SELECT 1 FROM recipe_tags rt
				WHERE rt.recipe_id = r.id AND rt.tag_id = ANY($2)
			)`
		args = append(args, tagIDs)
	}
	query += ` ORDER BY r.id DESC`

	recipes := []models.RecipeDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &recipes, query, args...)

	logQuery(query, args, len(recipes), err)

	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListTags returns the tag sets of the given recipes keyed by recipe id.
func (r *RecipeReadRepository) ListTags(ctx context.Context, recipeIDs []int64) (map[int64][]models.TagDB, error) {
	result := make(map[int64][]models.TagDB, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT rt.recipe_id, t.id, t.user_id, t.name, t.created_at
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1)
		ORDER BY rt.recipe_id, t.id
	`

	var rows []struct {
		RecipeID int64 `db:"recipe_id"`
		models.TagDB
	}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &rows, query, recipeIDs)

	logQuery(query, []any{recipeIDs}, len(rows), err)

	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], row.TagDB)
	}
	return result, nil
}

// RecipeWriteRepository handles recipe write operations
type RecipeWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewRecipeWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *RecipeWriteRepository {
	return &RecipeWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a recipe and fills in its id and timestamps.
func (r *RecipeWriteRepository) Save(ctx context.Context, recipe *models.RecipeDB) error {
	query := `
		INSERT INTO recipes (user_id, title, time_minutes, price, link, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	args := []any{recipe.UserID, recipe.Title, recipe.TimeMinutes, string(recipe.Price), recipe.Link, recipe.Description}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)

	logQuery(query, args, recipe.ID, err)

	return err
}

// Update merges the non-nil scalar fields into the user's recipe in one statement.
// Returns nil when the recipe does not exist or belongs to another user.
func (r *RecipeWriteRepository) Update(ctx context.Context, userID uuid.UUID, recipeID int64, fields models.RecipeFields) (*models.RecipeDB, error) {
	query := `
		UPDATE recipes r SET
			title = COALESCE($3, r.title),
			time_minutes = COALESCE($4, r.time_minutes),
			price = COALESCE($5::numeric, r.price),
			link = COALESCE($6, r.link),
			description = COALESCE($7, r.description),
			updated_at = NOW()
		WHERE r.id = $2 AND r.user_id = $1
		RETURNING ` + recipeColumns

	var price *string
	if fields.Price != nil {
		p := string(*fields.Price)
		price = &p
	}
	args := []any{userID, recipeID, fields.Title, fields.TimeMinutes, price, fields.Link, fields.Description}

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &recipe, query, args...)

	logQuery(query, args, recipe.ID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

// SetTags replaces the recipe's tag set. Callers run it inside a transaction
// so that readers never observe the cleared intermediate state.
func (r *RecipeWriteRepository) SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	exec := executor(ctx, r.db, r.txGetter)

	deleteQuery := `DELETE FROM recipe_tags WHERE recipe_id = $1`
	_, err := exec.ExecContext(ctx, deleteQuery, recipeID)
	logQuery(deleteQuery, []any{recipeID}, nil, err)
	if err != nil {
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	insertQuery := `
		INSERT INTO recipe_tags (recipe_id, tag_id)
		SELECT $1, UNNEST($2::bigint[])
		ON CONFLICT DO NOTHING
	`
	res, err := exec.ExecContext(ctx, insertQuery, recipeID, tagIDs)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(insertQuery, []any{recipeID, tagIDs}, rowsAffected, err)

	return err
}

// Delete removes the user's recipe and returns the removed row, or nil if there was none.
func (r *RecipeWriteRepository) Delete(ctx context.Context, userID uuid.UUID, recipeID int64) (*models.RecipeDB, error) {
	query := `DELETE FROM recipes r WHERE r.id = $2 AND r.user_id = $1 RETURNING ` + recipeColumns

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &recipe, query, userID, recipeID)

	logQuery(query, []any{userID, recipeID}, recipe.ID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

// UpdateImage points the user's recipe at a new image and returns the image it replaced.
// found is false when the recipe does not exist or belongs to another user.
func (r *RecipeWriteRepository) UpdateImage(ctx context.Context, userID uuid.UUID, recipeID int64, image, blurHash string) (previous *string, found bool, err error) {
	query := `
		WITH old AS (
			SELECT id, image FROM recipes
			WHERE id = $2 AND user_id = $1
			FOR UPDATE
		)
		UPDATE recipes r
		SET image = $3, image_blurhash = NULLIF($4, ''), updated_at = NOW()
		FROM old
		WHERE r.id = old.id
		RETURNING old.image
	`
	args := []any{userID, recipeID, image, blurHash}

	err = sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &previous, query, args...)

	logQuery(query, args, previous, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return previous, true, nil
}
