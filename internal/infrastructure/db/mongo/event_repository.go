package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

const collectionEvents = "events"

// EventRepository stores events with their attendees embedded.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

type mongoLocation struct {
	Address string   `bson:"address"`
	Lat     *float64 `bson:"lat"`
	Lng     *float64 `bson:"lng"`
}

type mongoAttendee struct {
	ID        string    `bson:"_id,omitempty"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
}

type mongoEvent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Date         time.Time          `bson:"date"`
	MaxAttendees int                `bson:"maxAttendees,omitempty"`
	Image        string             `bson:"image,omitempty"`
	Location     mongoLocation      `bson:"location"`
	Attendees    []mongoAttendee    `bson:"attendees"`
}

func toMongoAttendee(a domain.Attendee) mongoAttendee {
	return mongoAttendee{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Status:    string(a.Status),
		Timestamp: a.Timestamp.UTC(),
	}
}

func (m mongoEvent) toDomain() *domain.Event {
	attendees := make([]domain.Attendee, 0, len(m.Attendees))
	for _, a := range m.Attendees {
		status := domain.RSVPStatus(a.Status)
		if status == "" {
			status = domain.StatusGoing
		}
		attendees = append(attendees, domain.Attendee{
			ID:        a.ID,
			Name:      a.Name,
			Email:     a.Email,
			Status:    status,
			Timestamp: a.Timestamp,
		})
	}
	return &domain.Event{
		ID:           m.ID.Hex(),
		Title:        m.Title,
		Description:  m.Description,
		Date:         m.Date,
		MaxAttendees: m.MaxAttendees,
		Image:        m.Image,
		Location: domain.Location{
			Address: m.Location.Address,
			Lat:     m.Location.Lat,
			Lng:     m.Location.Lng,
		},
		Attendees: attendees,
	}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEvent{
		ID:           primitive.NewObjectID(),
		Title:        event.Title,
		Description:  event.Description,
		Date:         event.Date.UTC(),
		MaxAttendees: event.MaxAttendees,
		Image:        event.Image,
		Location: mongoLocation{
			Address: event.Location.Address,
			Lat:     event.Location.Lat,
			Lng:     event.Location.Lng,
		},
		Attendees: make([]mongoAttendee, 0, len(event.Attendees)),
	}
	for _, a := range event.Attendees {
		doc.Attendees = append(doc.Attendees, toMongoAttendee(a))
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoEvent
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns events sorted by date ascending.
func (r *EventRepository) List(ctx context.Context, offset, limit int) ([]*domain.Event, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoEvent
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode events: %w", err)
	}

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	events := make([]*domain.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
	}
	return events, total, nil
}

// Update sets the scalar fields of the event. The attendees array is never
// part of the update so concurrent RSVPs survive an edit.
func (r *EventRepository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(event.ID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":        event.Title,
		"description":  event.Description,
		"date":         event.Date.UTC(),
		"maxAttendees": event.MaxAttendees,
		"image":        event.Image,
		"location": mongoLocation{
			Address: event.Location.Address,
			Lat:     event.Location.Lat,
			Lng:     event.Location.Lng,
		},
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoEvent
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return doc.toDomain(), nil
}

// AppendAttendee pushes attendee in a single conditional update. The filter
// re-asserts email uniqueness and, when enforceCapacity is set, that the
// attendee count is below maxAttendees (a missing or zero maxAttendees is
// unbounded). A miss yields domain.ErrRSVPGuard.
func (r *EventRepository) AppendAttendee(ctx context.Context, eventID string, attendee domain.Attendee, enforceCapacity bool) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$push": bson.M{"attendees": toMongoAttendee(attendee)}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoEvent
	if err := r.col.FindOneAndUpdate(ctx, appendFilter(oid, attendee.Email, enforceCapacity), update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRSVPGuard
		}
		return nil, fmt.Errorf("append attendee: %w", err)
	}
	return doc.toDomain(), nil
}

// appendFilter matches the event only while email has not responded and, when
// enforceCapacity is set, while a seat is free.
func appendFilter(oid primitive.ObjectID, email string, enforceCapacity bool) bson.M {
	filter := bson.M{
		"_id":             oid,
		"attendees.email": bson.M{"$ne": email},
	}
	if enforceCapacity {
		filter["$expr"] = capacityAvailable()
	}
	return filter
}

// capacityAvailable is true when maxAttendees is unset or non-positive, or
// when the attendee array is shorter than maxAttendees.
func capacityAvailable() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"$lte": bson.A{bson.M{"$ifNull": bson.A{"$maxAttendees", 0}}, 0}},
		bson.M{"$lt": bson.A{
			bson.M{"$size": bson.M{"$ifNull": bson.A{"$attendees", bson.A{}}}},
			"$maxAttendees",
		}},
	}}
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// EnsureIndexes creates the date index backing the listing sort.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	})
	return err
}
