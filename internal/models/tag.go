package models

import (
	"time"

	"github.com/google/uuid"
)

// TagDB represents a tag row. (user_id, name) is unique.
type TagDB struct {
	ID        int64     `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TagRequest is used both for tag updates and for nested tags on recipe writes
// swagger:model TagRequest
type TagRequest struct {
	// Tag name
	// required: true
	// example: Dessert
	Name string `json:"name" validate:"required,notblank,max=255"`
}

// TagResponse is the public representation of a tag
// swagger:model TagResponse
type TagResponse struct {
	// Tag ID
	// example: 1
	ID int64 `json:"id"`

	// Tag name
	// example: Dessert
	Name string `json:"name"`
}

// NewTagResponse converts a tag row.
func NewTagResponse(t TagDB) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

// NewTagResponses converts tag rows, never returning nil.
func NewTagResponses(tags []TagDB) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, NewTagResponse(t))
	}
	return out
}
