package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// RawEvent 入站事件的原始归档，用于排查与回放
type RawEvent struct {
	TeamID     string    `bson:"team_id"`
	EventType  string    `bson:"event_type"`
	Payload    []byte    `bson:"payload"`
	TraceID    string    `bson:"trace_id,omitempty"`
	ReceivedAt time.Time `bson:"received_at"`
}

type EventArchiveRepo interface {
	SaveEvent(ctx context.Context, evt *RawEvent) error
}

type eventArchiveRepoImpl struct {
	col *mongo.Collection
}

func NewEventArchiveRepo(db *mongo.Database, collection string) EventArchiveRepo {
	return &eventArchiveRepoImpl{
		col: db.Collection(collection),
	}
}

func (s *eventArchiveRepoImpl) SaveEvent(ctx context.Context, evt *RawEvent) error {
	if evt.ReceivedAt.IsZero() {
		evt.ReceivedAt = time.Now()
	}
	_, err := s.col.InsertOne(ctx, evt)
	return err
}
