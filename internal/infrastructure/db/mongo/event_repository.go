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
	"github.com/eventsphere/registration-api/internal/core/ports"
)

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		coll: db.Collection(collectionEvents),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type eventDocument struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	Title                 string             `bson:"title"`
	Description           string             `bson:"description,omitempty"`
	Date                  time.Time          `bson:"date"`
	Location              string             `bson:"location"`
	Organizer             string             `bson:"organizer"`
	Category              string             `bson:"category"`
	OrganizerContact      string             `bson:"organizerContact"`
	RegistrationStartDate time.Time          `bson:"registrationStartDate"`
	RegistrationEndDate   time.Time          `bson:"registrationEndDate"`
	Status                string             `bson:"status"`
	Attendees             []string           `bson:"attendees"`
	CreatedAt             time.Time          `bson:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt"`
}

func eventToDocument(e *domain.Event) eventDocument {
	attendees := e.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return eventDocument{
		Title:                 e.Title,
		Description:           e.Description,
		Date:                  e.Date.UTC(),
		Location:              e.Location,
		Organizer:             e.Organizer,
		Category:              e.Category,
		OrganizerContact:      e.OrganizerContact,
		RegistrationStartDate: e.RegistrationStartDate.UTC(),
		RegistrationEndDate:   e.RegistrationEndDate.UTC(),
		Status:                string(e.Status),
		Attendees:             attendees,
		CreatedAt:             e.CreatedAt.UTC(),
		UpdatedAt:             e.UpdatedAt.UTC(),
	}
}

func (d eventDocument) toDomain() *domain.Event {
	status := domain.EventStatus(d.Status)
	if status == "" {
		status = domain.EventOpen
	}
	attendees := d.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return &domain.Event{
		ID:                    d.ID.Hex(),
		Title:                 d.Title,
		Description:           d.Description,
		Date:                  d.Date,
		Location:              d.Location,
		Organizer:             d.Organizer,
		Category:              d.Category,
		OrganizerContact:      d.OrganizerContact,
		RegistrationStartDate: d.RegistrationStartDate,
		RegistrationEndDate:   d.RegistrationEndDate,
		Status:                status,
		Attendees:             attendees,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

// changesToSet builds the $set document for an organizer update.
func changesToSet(c ports.EventChanges, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if c.Title != nil {
		set["title"] = *c.Title
	}
	if c.Description != nil {
		set["description"] = *c.Description
	}
	if c.Date != nil {
		set["date"] = c.Date.UTC()
	}
	if c.Location != nil {
		set["location"] = *c.Location
	}
	if c.Category != nil {
		set["category"] = *c.Category
	}
	if c.OrganizerContact != nil {
		set["organizerContact"] = *c.OrganizerContact
	}
	if c.RegistrationStartDate != nil {
		set["registrationStartDate"] = c.RegistrationStartDate.UTC()
	}
	if c.RegistrationEndDate != nil {
		set["registrationEndDate"] = c.RegistrationEndDate.UTC()
	}
	return set
}

// Create inserts a new event document and assigns its id.
func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := eventToDocument(e)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	e.ID = doc.ID.Hex()
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc eventDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns events matching filter, soonest first.
func (r *EventRepository) List(ctx context.Context, filter ports.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.Organizer != "" {
		q["organizer"] = filter.Organizer
	}
	if filter.Attendee != "" {
		// equality on an array field matches membership
		q["attendees"] = filter.Attendee
	}

	cur, err := r.coll.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]*domain.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
	}
	return events, nil
}

// Update sets only the changed fields, so it never overwrites the attendee
// set written concurrently by registrations.
func (r *EventRepository) Update(ctx context.Context, id string, changes ports.EventChanges) (*domain.Event, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc eventDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": changesToSet(changes, r.now())}, opts).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EventRepository) SetStatus(ctx context.Context, id string, status domain.EventStatus) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"status": string(status), "updatedAt": r.now()},
	})
	if err != nil {
		return fmt.Errorf("set event status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// AddAttendee atomically adds identity to an open event that does not list
// it yet. A false result means no document matched the guard.
func (r *EventRepository) AddAttendee(ctx context.Context, id, identity string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":       oid,
		"status":    string(domain.EventOpen),
		"attendees": bson.M{"$ne": identity},
	}
	update := bson.M{
		"$addToSet": bson.M{"attendees": identity},
		"$set":      bson.M{"updatedAt": r.now()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("add attendee: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *EventRepository) RemoveAttendee(ctx context.Context, id, identity string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "attendees": identity},
		bson.M{
			"$pull": bson.M{"attendees": identity},
			"$set":  bson.M{"updatedAt": r.now()},
		})
	if err != nil {
		return false, fmt.Errorf("remove attendee: %w", err)
	}
	return res.ModifiedCount > 0, nil
}
