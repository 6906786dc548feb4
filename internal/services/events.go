package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/recipe-app-api/internal/logger"
	"github.com/sbilibin2017/recipe-app-api/internal/models"
)

//go:generate mockgen -source=events.go -destination=mock_events.go -package=services

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// EventPublisher publishes recipe events. A nil writer disables publishing.
type EventPublisher struct {
	writer KafkaWriter
}

// NewEventPublisher creates a publisher. Pass a nil interface to disable publishing.
func NewEventPublisher(writer KafkaWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish sends an event about the recipe. Failures are logged and never returned,
// so a broker outage does not fail committed changes.
func (p *EventPublisher) Publish(ctx context.Context, eventType string, recipe *models.RecipeDB) {
	if p == nil || p.writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "type", eventType, "recipe_id", recipe.ID)
		return
	}

	event := models.RecipeEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		RecipeID:  recipe.ID,
		UserID:    recipe.UserID.String(),
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	// Keyed by owner so one user's events stay ordered within a partition.
	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", event.EventID, "type", eventType, "error", err)
	} else {
		logger.Log.Infow("Event published to Kafka", "event_id", event.EventID, "type", eventType, "recipe_id", recipe.ID)
	}
}
