package domain

import (
	"context"
	"time"
)

// Booking records one email address registering interest in an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a new Booking with the given fields. ID is typically set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
	DistinctEventIDs(ctx context.Context) ([]string, error)
	CountByEventID(ctx context.Context, eventID string) (int64, error)
}

// BookingService defines the business operations over bookings.
type BookingService interface {
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	ListBookingsByEvent(ctx context.Context, eventID string) ([]*Booking, error)
}

// BookingNotifier pushes a notice about a new booking to an external channel
// (infrastructure port).
type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, booking *Booking, event *Event) error
}
