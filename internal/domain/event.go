package domain

import (
	"context"
	"time"
)

// Event represents a published event listing.
// swagger:model Event
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Overview    string `json:"overview"`
	Image       string `json:"image"`
	Venue       string `json:"venue"`
	Location    string `json:"location"`
	// Date and Time hold the canonical forms ("2006-01-02", "15:04") whenever the
	// submitted value parses; otherwise they keep the value as given.
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Mode      string    `json:"mode"`
	Audience  string    `json:"audience"`
	Agenda    []string  `json:"agenda"`
	Organizer string    `json:"organizer"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Names of the fields whose change re-triggers derivation on a write.
const (
	FieldTitle = "title"
	FieldDate  = "date"
	FieldTime  = "time"
)

// ChangedFields marks which candidate fields differ from the stored record.
// Only the derivation-relevant fields (title, date, time) need to be marked;
// required-field checks always run on the whole record.
type ChangedFields map[string]bool

// AllChanged returns a ChangedFields for a record with no stored version yet,
// i.e. an insert, where every field counts as changed.
func AllChanged() ChangedFields {
	return ChangedFields{FieldTitle: true, FieldDate: true, FieldTime: true}
}

// CreateEventInput carries the caller-supplied fields for a new event listing.
type CreateEventInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Overview    string   `json:"overview"`
	Image       string   `json:"image"`
	Venue       string   `json:"venue"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Mode        string   `json:"mode"`
	Audience    string   `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   string   `json:"organizer"`
	Tags        []string `json:"tags"`
}

// UpdateEventInput carries a partial update; nil fields are left unchanged.
type UpdateEventInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Overview    *string   `json:"overview"`
	Image       *string   `json:"image"`
	Venue       *string   `json:"venue"`
	Location    *string   `json:"location"`
	Date        *string   `json:"date"`
	Time        *string   `json:"time"`
	Mode        *string   `json:"mode"`
	Audience    *string   `json:"audience"`
	Agenda      *[]string `json:"agenda"`
	Organizer   *string   `json:"organizer"`
	Tags        *[]string `json:"tags"`
}

// ImportFailure reports one feed entry that was rejected during an import run.
type ImportFailure struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// ImportSummary reports the outcome of importing a batch of candidate listings.
type ImportSummary struct {
	Imported int             `json:"imported"`
	Failed   []ImportFailure `json:"failed"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// EventService defines the business operations over event listings.
type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*Event, error)
	UpdateEvent(ctx context.Context, id string, in UpdateEventInput) (*Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ImportEvents(ctx context.Context, candidates []CreateEventInput) (*ImportSummary, error)
	ImportFromICS(ctx context.Context, feedURL string) (*ImportSummary, error)
}
