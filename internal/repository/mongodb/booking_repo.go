package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventlistings/internal/domain"
)

// bookingDoc is the stored shape of a booking. The event reference is kept as
// an object id so the lookup index and the events _id filter use the same type.
type bookingDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   primitive.ObjectID `bson:"event_id"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *bookingDoc) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:        d.ID.Hex(),
		EventID:   d.EventID.Hex(),
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// BookingRepo is a MongoDB-backed domain.BookingRepository.
type BookingRepo struct {
	store *Store
}

// NewBookingRepo creates a BookingRepo on top of the shared store handle.
func NewBookingRepo(store *Store) *BookingRepo {
	return &BookingRepo{store: store}
}

func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	col, err := r.store.Bookings()
	if err != nil {
		return err
	}
	eventOID, err := primitive.ObjectIDFromHex(b.EventID)
	if err != nil {
		return fmt.Errorf("parse booking event id: %w", err)
	}
	doc := &bookingDoc{
		EventID:   eventOID,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid.Hex()
	}
	return nil
}

func (r *BookingRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	col, err := r.store.Bookings()
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return []*domain.Booking{}, nil
	}
	cur, err := col.Find(ctx, bson.M{"event_id": oid}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	var docs []bookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	bookings := make([]*domain.Booking, 0, len(docs))
	for i := range docs {
		bookings = append(bookings, docs[i].toDomain())
	}
	return bookings, nil
}

// DistinctEventIDs returns the ids of every event at least one booking points at.
func (r *BookingRepo) DistinctEventIDs(ctx context.Context) ([]string, error) {
	col, err := r.store.Bookings()
	if err != nil {
		return nil, err
	}
	vals, err := col.Distinct(ctx, "event_id", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("distinct booking event ids: %w", err)
	}
	ids := make([]string, 0, len(vals))
	for _, v := range vals {
		if oid, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, oid.Hex())
		}
	}
	return ids, nil
}

func (r *BookingRepo) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	col, err := r.store.Bookings()
	if err != nil {
		return 0, err
	}
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return 0, nil
	}
	n, err := col.CountDocuments(ctx, bson.M{"event_id": oid})
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}
