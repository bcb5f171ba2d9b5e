package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/ports"
)

const sessionEventsCollection = "session_events"

// EventRepository implements ports.SessionEventRepository using MongoDB.
type EventRepository struct {
	coll *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.SessionEventRepository {
	return &EventRepository{coll: db.Collection(sessionEventsCollection)}
}

// InsertEvent appends a session lifecycle event to the audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.SessionEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"session_id":  event.SessionID,
		"kind":        string(event.Kind),
		"at":          event.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Role != "" {
		doc["role"] = string(event.Role)
	}
	if event.Reason != domain.ReasonNone {
		doc["reason"] = string(event.Reason)
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}
