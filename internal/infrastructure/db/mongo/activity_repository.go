package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventsphere/registration-api/internal/core/domain"
)

// ActivityRepository persists attendance changes to the audit collection.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(collectionActivity)}
}

// Record appends one audit entry.
func (r *ActivityRepository) Record(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"event":        a.EventID,
		"user":         a.Participant,
		"action":       string(a.Action),
		"source":       a.Source,
		"at":           a.At.UTC(),
		"processed_at": time.Now().UTC(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}
