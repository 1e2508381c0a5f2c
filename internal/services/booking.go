package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventlistings/internal/domain"
	"eventlistings/internal/metrics"
	"eventlistings/internal/normalize"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	notifier       domain.BookingNotifier
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. emailService and notifier are
// optional; a nil value disables that side effect.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	notifier domain.BookingNotifier,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		notifier:       notifier,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateBooking validates the candidate and confirms the referenced event
// exists before anything is written. The existence check is a point-in-time
// read: an event deleted between this check and the insert is not re-checked,
// in exchange for never committing a booking that was already orphaned.
func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(eventID) == "" {
		metrics.ValidationFailures.WithLabelValues("booking", "missing_event_id").Inc()
		return nil, domain.ErrMissingEventID
	}

	normalized, err := normalize.Email(email)
	if err != nil {
		metrics.ValidationFailures.WithLabelValues("booking", "invalid_email").Inc()
		return nil, err
	}

	exists, err := s.eventRepo.ExistsByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotInitialized) {
			return nil, domain.ErrStoreNotInitialized
		}
		return nil, fmt.Errorf("check event exists: %w", err)
	}
	if !exists {
		metrics.ValidationFailures.WithLabelValues("booking", "dangling_event_id").Inc()
		return nil, domain.ErrEventNotExists
	}

	now := time.Now()
	booking := domain.NewBooking(eventID, normalized, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		metrics.BookingWrites.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.BookingWrites.WithLabelValues("ok").Inc()
	s.logger.Info("booking created", "booking_id", booking.ID, "event_id", booking.EventID)

	go s.confirm(context.WithoutCancel(ctx), booking)

	return booking, nil
}

func (s *bookingService) ListBookingsByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	exists, err := s.eventRepo.ExistsByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotInitialized) {
			return nil, domain.ErrStoreNotInitialized
		}
		return nil, fmt.Errorf("check event exists: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	bookings, err := s.bookingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}

// confirm runs the post-commit side effects. Failures are logged, never
// surfaced to the booking caller and never roll the booking back.
func (s *bookingService) confirm(ctx context.Context, booking *domain.Booking) {
	if s.emailService == nil && s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		s.logger.Warn("booking confirmation: load event", "event_id", booking.EventID, "error", err)
		return
	}

	if s.emailService != nil {
		data := &domain.BookingConfirmationEmailData{
			Email:      booking.Email,
			EventTitle: event.Title,
			EventDate:  event.Date,
			EventTime:  event.Time,
			Venue:      event.Venue,
			Location:   event.Location,
		}
		if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
			s.logger.Warn("booking confirmation email", "booking_id", booking.ID, "error", err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyBookingCreated(ctx, booking, event); err != nil {
			s.logger.Warn("booking notification", "booking_id", booking.ID, "error", err)
		}
	}
}
