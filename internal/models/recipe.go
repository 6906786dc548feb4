package models

import (
	"time"

	"github.com/google/uuid"
)

// RecipeDB represents a recipe row in the database
type RecipeDB struct {
	ID            int64     `json:"id" db:"id"`                         // Primary key, ascending with creation
	UserID        uuid.UUID `json:"user_id" db:"user_id"`               // Owner
	Title         string    `json:"title" db:"title"`                   // Title
	TimeMinutes   int       `json:"time_minutes" db:"time_minutes"`     // Preparation time, positive
	Price         Decimal   `json:"price" db:"price"`                   // NUMERIC(5,2)
	Link          string    `json:"link" db:"link"`                     // Optional link, empty when unset
	Description   string    `json:"description" db:"description"`       // Optional description, empty when unset
	Image         *string   `json:"image" db:"image"`                   // Path relative to the media root
	ImageBlurHash *string   `json:"image_blurhash" db:"image_blurhash"` // BlurHash placeholder of the image
	CreatedAt     time.Time `json:"created_at" db:"created_at"`         // Creation timestamp
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`         // Last update timestamp
}

// Recipe is a recipe row together with its tag set.
type Recipe struct {
	RecipeDB
	Tags     []TagDB
	ImageURL *string
}

// RecipeFields carries the fields of a recipe write.
// A nil field is left unchanged on update. A nil Tags leaves the tag set untouched,
// a non-nil empty Tags clears it.
type RecipeFields struct {
	Title       *string
	TimeMinutes *int
	Price       *Decimal
	Link        *string
	Description *string
	Tags        *[]string
}

// RecipeCreateRequest represents the JSON body for creating a recipe
// swagger:model RecipeCreateRequest
type RecipeCreateRequest struct {
	// Title
	// required: true
	// example: Green curry
	Title string `json:"title" validate:"required,notblank,max=255"`

	// Preparation time in minutes
	// required: true
	// example: 30
	TimeMinutes int `json:"time_minutes" validate:"required,gt=0,lte=2147483647"`

	// Price
	// required: true
	// example: 5.50
	Price Decimal `json:"price" validate:"required,price"`

	// Link to the original recipe
	// example: http://example.com/recipe.pdf
	Link string `json:"link" validate:"omitempty,max=255,url"`

	// Description
	// example: A spicy Thai curry.
	Description string `json:"description"`

	// Tags, resolved by name for the current user
	Tags []TagRequest `json:"tags" validate:"dive"`
}

// Fields converts the request into recipe write fields.
func (r RecipeCreateRequest) Fields() RecipeFields {
	names := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		names = append(names, t.Name)
	}
	return RecipeFields{
		Title:       &r.Title,
		TimeMinutes: &r.TimeMinutes,
		Price:       &r.Price,
		Link:        &r.Link,
		Description: &r.Description,
		Tags:        &names,
	}
}

// RecipeUpdateRequest represents the JSON body for updating a recipe.
// Omitted fields are left unchanged.
// swagger:model RecipeUpdateRequest
type RecipeUpdateRequest struct {
	// Title
	// example: Red curry
	Title *string `json:"title" validate:"omitempty,notblank,max=255"`

	// Preparation time in minutes
	// example: 25
	TimeMinutes *int `json:"time_minutes" validate:"omitempty,gt=0,lte=2147483647"`

	// Price
	// example: 6.00
	Price *Decimal `json:"price" validate:"omitempty,price"`

	// Link to the original recipe
	// example: http://example.com/recipe.pdf
	Link *string `json:"link" validate:"omitempty,max=255,url|len=0"`

	// Description
	// example: Now with more chili.
	Description *string `json:"description"`

	// Tags; when present the recipe ends up with exactly these tags
	Tags *[]TagRequest `json:"tags" validate:"omitempty,dive"`
}

// Fields converts the request into recipe write fields.
func (r RecipeUpdateRequest) Fields() RecipeFields {
	f := RecipeFields{
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Description: r.Description,
	}
	if r.Tags != nil {
		names := make([]string, 0, len(*r.Tags))
		for _, t := range *r.Tags {
			names = append(names, t.Name)
		}
		f.Tags = &names
	}
	return f
}

// RecipeResponse is the list representation of a recipe
// swagger:model RecipeResponse
type RecipeResponse struct {
	// Recipe ID
	// example: 1
	ID int64 `json:"id"`

	// Title
	// example: Green curry
	Title string `json:"title"`

	// Preparation time in minutes
	// example: 30
	TimeMinutes int `json:"time_minutes"`

	// Price
	// example: 5.50
	Price Decimal `json:"price"`

	// Link
	// example: http://example.com/recipe.pdf
	Link string `json:"link"`

	// Tags
	Tags []TagResponse `json:"tags"`
}

// RecipeDetailResponse is the detail representation of a recipe
// swagger:model RecipeDetailResponse
type RecipeDetailResponse struct {
	RecipeResponse

	// Description
	// example: A spicy Thai curry.
	Description string `json:"description"`

	// Image URL
	// example: /media/recipe/0b6f1c1e.jpg
	Image *string `json:"image"`

	// BlurHash placeholder for the image
	// example: LEHV6nWB2yk8pyo0adR*.7kCMdnj
	ImageBlurHash *string `json:"image_blurhash,omitempty"`
}

// RecipeImageResponse is returned after an image upload
// swagger:model RecipeImageResponse
type RecipeImageResponse struct {
	// Recipe ID
	// example: 1
	ID int64 `json:"id"`

	// Image URL
	// example: /media/recipe/0b6f1c1e.jpg
	Image *string `json:"image"`
}

// NewRecipeResponse builds the list representation.
func NewRecipeResponse(r *Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        NewTagResponses(r.Tags),
	}
}

// NewRecipeDetailResponse builds the detail representation.
func NewRecipeDetailResponse(r *Recipe) RecipeDetailResponse {
	return RecipeDetailResponse{
		RecipeResponse: NewRecipeResponse(r),
		Description:    r.Description,
		Image:          r.ImageURL,
		ImageBlurHash:  r.ImageBlurHash,
	}
}
