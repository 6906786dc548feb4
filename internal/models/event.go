package models

// Recipe event types published after a committed change.
const (
	RecipeCreated       = "recipe.created"
	RecipeUpdated       = "recipe.updated"
	RecipeDeleted       = "recipe.deleted"
	RecipeImageUploaded = "recipe.image_uploaded"
)

// RecipeEvent describes a change to a recipe, published to Kafka.
type RecipeEvent struct {
	EventID   string `json:"event_id"`  // EventID is a unique identifier for the event.
	Type      string `json:"type"`      // Type is one of the Recipe* constants.
	RecipeID  int64  `json:"recipe_id"` // RecipeID is the affected recipe.
	UserID    string `json:"user_id"`   // UserID is the recipe owner.
	Timestamp int64  `json:"timestamp"` // Timestamp is the Unix time (seconds) of the change.
}
