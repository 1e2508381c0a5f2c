package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventlistings/internal/domain"
	"eventlistings/internal/metrics"
	"eventlistings/internal/normalize"
)

type eventService struct {
	eventRepo      domain.EventRepository
	fetcher        domain.FeedFetcher
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository.
// fetcher supplies candidates for ICS feed imports.
func NewEventService(eventRepo domain.EventRepository, fetcher domain.FeedFetcher, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		fetcher:        fetcher,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now()
	event := &domain.Event{
		Title:       in.Title,
		Description: in.Description,
		Overview:    in.Overview,
		Image:       in.Image,
		Venue:       in.Venue,
		Location:    in.Location,
		Date:        in.Date,
		Time:        in.Time,
		Mode:        in.Mode,
		Audience:    in.Audience,
		Agenda:      in.Agenda,
		Organizer:   in.Organizer,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := normalize.Event(event, domain.AllChanged()); err != nil {
		metrics.ValidationFailures.WithLabelValues("event", validationReason(err)).Inc()
		metrics.EventWrites.WithLabelValues("create", "invalid").Inc()
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			metrics.EventWrites.WithLabelValues("create", "conflict").Inc()
			return nil, domain.ErrDuplicateSlug
		}
		metrics.EventWrites.WithLabelValues("create", "error").Inc()
		return nil, fmt.Errorf("create event: %w", err)
	}

	metrics.EventWrites.WithLabelValues("create", "ok").Inc()
	s.logger.Info("event created", "event_id", event.ID, "slug", event.Slug)
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, in domain.UpdateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Only fields present in the patch are applied; the changed set drives
	// which derivations re-run, so an untouched title keeps its slug.
	changed := domain.ChangedFields{}
	if in.Title != nil && *in.Title != event.Title {
		event.Title = *in.Title
		changed[domain.FieldTitle] = true
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Overview != nil {
		event.Overview = *in.Overview
	}
	if in.Image != nil {
		event.Image = *in.Image
	}
	if in.Venue != nil {
		event.Venue = *in.Venue
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.Date != nil && *in.Date != event.Date {
		event.Date = *in.Date
		changed[domain.FieldDate] = true
	}
	if in.Time != nil && *in.Time != event.Time {
		event.Time = *in.Time
		changed[domain.FieldTime] = true
	}
	if in.Mode != nil {
		event.Mode = *in.Mode
	}
	if in.Audience != nil {
		event.Audience = *in.Audience
	}
	if in.Agenda != nil {
		event.Agenda = *in.Agenda
	}
	if in.Organizer != nil {
		event.Organizer = *in.Organizer
	}
	if in.Tags != nil {
		event.Tags = *in.Tags
	}
	event.UpdatedAt = time.Now()

	if err := normalize.Event(event, changed); err != nil {
		metrics.ValidationFailures.WithLabelValues("event", validationReason(err)).Inc()
		metrics.EventWrites.WithLabelValues("update", "invalid").Inc()
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateSlug):
			metrics.EventWrites.WithLabelValues("update", "conflict").Inc()
			return nil, domain.ErrDuplicateSlug
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		default:
			metrics.EventWrites.WithLabelValues("update", "error").Inc()
			return nil, fmt.Errorf("update event: %w", err)
		}
	}

	metrics.EventWrites.WithLabelValues("update", "ok").Inc()
	s.logger.Info("event updated", "event_id", event.ID, "slug", event.Slug)
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		metrics.EventWrites.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("delete event: %w", err)
	}
	metrics.EventWrites.WithLabelValues("delete", "ok").Inc()
	s.logger.Info("event deleted", "event_id", id)
	return nil
}

// ImportEvents feeds each candidate through the regular create path, so every
// imported record passes the same normalization and uniqueness rules. A
// rejected candidate never aborts the rest of the batch.
func (s *eventService) ImportEvents(ctx context.Context, candidates []domain.CreateEventInput) (*domain.ImportSummary, error) {
	summary := &domain.ImportSummary{Failed: []domain.ImportFailure{}}
	for _, in := range candidates {
		if _, err := s.CreateEvent(ctx, in); err != nil {
			summary.Failed = append(summary.Failed, domain.ImportFailure{Title: in.Title, Reason: err.Error()})
			continue
		}
		summary.Imported++
	}
	s.logger.Info("event import finished", "imported", summary.Imported, "failed", len(summary.Failed))
	return summary, nil
}

// ImportFromICS pulls candidates from a remote calendar feed and runs each
// one through the normal create path, so imported records obey the same
// validation and unique-slug rules as hand-entered ones.
func (s *eventService) ImportFromICS(ctx context.Context, feedURL string) (*domain.ImportSummary, error) {
	candidates, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	return s.ImportEvents(ctx, candidates)
}

func validationReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrFieldRequired):
		return "field_required"
	case errors.Is(err, domain.ErrEmptyCollection):
		return "empty_collection"
	case errors.Is(err, domain.ErrInvalidEmail):
		return "invalid_email"
	case errors.Is(err, domain.ErrMissingEventID):
		return "missing_event_id"
	case errors.Is(err, domain.ErrEventNotExists):
		return "dangling_event_id"
	default:
		return "other"
	}
}
