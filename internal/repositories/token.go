package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/recipe-app-api/internal/logger"
)

// ErrTokenNotFound is returned when no live token is registered for a user.
var ErrTokenNotFound = errors.New("token not found")

// TokenCacheRepository tracks the single live token id per user in Redis
type TokenCacheRepository struct {
	client *redis.Client
	exp    time.Duration // must match the token lifetime
}

// NewTokenCacheRepository creates a new repository instance with the given TTL
func NewTokenCacheRepository(client *redis.Client, expiration time.Duration) *TokenCacheRepository {
	return &TokenCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func tokenKey(userID uuid.UUID) string {
	return fmt.Sprintf("auth_token:%s", userID)
}

// SetToken registers tokenID as the user's live token, replacing any previous one.
func (r *TokenCacheRepository) SetToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	key := tokenKey(userID)
	err := r.client.Set(ctx, key, tokenID, r.exp).Err()

	logger.Log.Debugw("cache set",
		"key", key,
		"ttl", r.exp,
		"error", err,
	)

	return err
}

// GetToken returns the user's live token id.
func (r *TokenCacheRepository) GetToken(ctx context.Context, userID uuid.UUID) (string, error) {
	key := tokenKey(userID)

	val, err := r.client.Get(ctx, key).Result()

	logger.Log.Debugw("cache get",
		"key", key,
		"found", err == nil,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return val, nil
}
