package mongodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"eventlistings/internal/domain"
)

const (
	eventsCollection   = "events"
	bookingsCollection = "bookings"
)

// Store owns the MongoDB client shared by the repositories. It is constructed
// unconnected and passed around explicitly; Connect establishes the client
// once, and every later call reuses the same one.
type Store struct {
	uri      string
	database string
	timeout  time.Duration

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// NewStore returns an unconnected Store for the given MongoDB URI and database name.
func NewStore(uri, database string, timeout time.Duration) *Store {
	return &Store{uri: uri, database: database, timeout: timeout}
}

// Connect dials MongoDB and verifies the connection with a ping. It is
// idempotent: once a client is established, further calls return nil without
// dialing again. A failed attempt leaves the store unconnected so the caller
// may retry.
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(s.uri).
		SetConnectTimeout(s.timeout).
		SetServerSelectionTimeout(s.timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping mongodb: %w", err)
	}

	s.client = client
	s.db = client.Database(s.database)
	return nil
}

// Disconnect closes the client. Safe to call on a store that never connected.
func (s *Store) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	return err
}

// Events returns the events collection handle, or ErrStoreNotInitialized when
// Connect has not succeeded yet.
func (s *Store) Events() (*mongo.Collection, error) {
	return s.collection(eventsCollection)
}

// Bookings returns the bookings collection handle, or ErrStoreNotInitialized
// when Connect has not succeeded yet.
func (s *Store) Bookings() (*mongo.Collection, error) {
	return s.collection(bookingsCollection)
}

func (s *Store) collection(name string) (*mongo.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, domain.ErrStoreNotInitialized
	}
	return s.db.Collection(name), nil
}

// EnsureIndexes creates the indexes the write paths rely on: the unique slug
// index on events, which settles concurrent writes with colliding slugs, and
// the event_id lookup index on bookings.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	events, err := s.Events()
	if err != nil {
		return err
	}
	_, err = events.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("slug_unique"),
	})
	if err != nil {
		return fmt.Errorf("create events slug index: %w", err)
	}

	bookings, err := s.Bookings()
	if err != nil {
		return err
	}
	_, err = bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event_id", Value: 1}},
		Options: options.Index().SetName("event_id_lookup"),
	})
	if err != nil {
		return fmt.Errorf("create bookings event_id index: %w", err)
	}
	return nil
}
