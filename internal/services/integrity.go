package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventlistings/internal/domain"
	"eventlistings/internal/metrics"
)

// IntegrityService counts bookings whose referenced event no longer exists.
// It only observes: the window between the booking-time existence check and a
// later event delete is an accepted trade-off, and the sweep measures how much
// it costs rather than repairing anything.
type IntegrityService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewIntegrityService creates an IntegrityService over the two repositories.
func NewIntegrityService(bookingRepo domain.BookingRepository, eventRepo domain.EventRepository, logger *slog.Logger, timeout time.Duration) *IntegrityService {
	return &IntegrityService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// SweepDanglingBookings returns the number of bookings referencing a missing
// event and updates the dangling_bookings gauge. Nothing is mutated.
func (s *IntegrityService) SweepDanglingBookings(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ids, err := s.bookingRepo.DistinctEventIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("distinct booking event ids: %w", err)
	}

	var dangling int64
	var missing []string
	for _, id := range ids {
		exists, err := s.eventRepo.ExistsByID(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("check event %s: %w", id, err)
		}
		if exists {
			continue
		}
		n, err := s.bookingRepo.CountByEventID(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("count bookings for event %s: %w", id, err)
		}
		dangling += n
		missing = append(missing, id)
	}

	metrics.DanglingBookings.Set(float64(dangling))
	if dangling > 0 {
		s.logger.Warn("dangling bookings found", "count", dangling, "event_ids", missing)
	}
	return dangling, nil
}
