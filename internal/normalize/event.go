package normalize

import (
	"strings"

	"eventlistings/internal/domain"
)

// Event canonicalizes the derived fields of a candidate listing and then
// enforces the required-field rules. changed marks which derivation-relevant
// fields differ from the stored record: the slug is recomputed only when the
// title changed or no slug is present, so an unrelated update never rewrites
// an established slug; date and time are re-canonicalized only when they
// changed and are non-empty. The candidate is mutated in place. A non-nil
// error means the record must not reach the store.
func Event(e *domain.Event, changed domain.ChangedFields) error {
	if changed[domain.FieldTitle] || e.Slug == "" {
		e.Slug = Slug(e.Title)
	}
	if changed[domain.FieldDate] && strings.TrimSpace(e.Date) != "" {
		e.Date = Date(e.Date)
	}
	if changed[domain.FieldTime] && strings.TrimSpace(e.Time) != "" {
		e.Time = Time(e.Time)
	}
	return validateEvent(e)
}

func validateEvent(e *domain.Event) error {
	required := []struct {
		field string
		value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"overview", e.Overview},
		{"image", e.Image},
		{"venue", e.Venue},
		{"location", e.Location},
		{"date", e.Date},
		{"time", e.Time},
		{"mode", e.Mode},
		{"audience", e.Audience},
		{"organizer", e.Organizer},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &domain.ValidationError{Field: f.field, Err: domain.ErrFieldRequired}
		}
	}
	if len(e.Agenda) == 0 {
		return &domain.ValidationError{Field: "agenda", Err: domain.ErrEmptyCollection}
	}
	if len(e.Tags) == 0 {
		return &domain.ValidationError{Field: "tags", Err: domain.ErrEmptyCollection}
	}
	return nil
}
