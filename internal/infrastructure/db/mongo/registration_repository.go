package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventsphere/registration-api/internal/core/domain"
)

// RegistrationRepository implements ports.RegistrationRepository using MongoDB.
type RegistrationRepository struct {
	coll *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{coll: db.Collection(collectionRegistrations)}
}

type registrationDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	User       string             `bson:"user"`
	Event      primitive.ObjectID `bson:"event"`
	QRCodeData string             `bson:"qrCodeData"`
	FullName   string             `bson:"fullName"`
	Phone      string             `bson:"phone"`
	Email      string             `bson:"email,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d registrationDocument) toDomain() *domain.Registration {
	return &domain.Registration{
		ID:          d.ID.Hex(),
		Participant: d.User,
		EventID:     d.Event.Hex(),
		QRCodeData:  d.QRCodeData,
		FullName:    d.FullName,
		Phone:       d.Phone,
		Email:       d.Email,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// Create inserts the ticket record. The unique (event, user) index turns a
// second ticket for the same pair into a duplicate registration.
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	eventOID, ok := objectID(reg.EventID)
	if !ok {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := registrationDocument{
		ID:         primitive.NewObjectID(),
		User:       reg.Participant,
		Event:      eventOID,
		QRCodeData: reg.QRCodeData,
		FullName:   reg.FullName,
		Phone:      reg.Phone,
		Email:      reg.Email,
		CreatedAt:  reg.CreatedAt.UTC(),
		UpdatedAt:  reg.UpdatedAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	reg.ID = doc.ID.Hex()
	return nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*domain.Registration, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc registrationDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RegistrationRepository) FindByParticipant(ctx context.Context, participant string) ([]*domain.Registration, error) {
	return r.find(ctx, bson.M{"user": participant})
}

func (r *RegistrationRepository) FindByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	oid, ok := objectID(eventID)
	if !ok {
		return []*domain.Registration{}, nil
	}
	return r.find(ctx, bson.M{"event": oid})
}

func (r *RegistrationRepository) find(ctx context.Context, filter bson.M) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []registrationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}

	out := make([]*domain.Registration, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *RegistrationRepository) DeleteByEventAndParticipant(ctx context.Context, eventID, participant string) (bool, error) {
	oid, ok := objectID(eventID)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"event": oid, "user": participant})
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *RegistrationRepository) DeleteByEvent(ctx context.Context, eventID string) (int64, error) {
	oid, ok := objectID(eventID)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"event": oid})
	if err != nil {
		return 0, fmt.Errorf("delete event registrations: %w", err)
	}
	return res.DeletedCount, nil
}
