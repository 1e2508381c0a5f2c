package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventlistings/internal/delivery/http/helpers"
	"eventlistings/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr       error
	createResult    *domain.Event
	lastCreateInput domain.CreateEventInput

	updateErr       error
	updateResult    *domain.Event
	lastUpdateID    string
	lastUpdateInput domain.UpdateEventInput

	getBySlugErr error
	eventsBySlug map[string]*domain.Event // slug -> event to return

	getByIDErr error
	eventsByID map[string]*domain.Event // id -> event to return

	listErr    error
	listResult []*domain.Event

	deleteErr    error
	lastDeleteID string

	importErr     error
	importResult  *domain.ImportSummary
	lastFeedURL   string
	importFromICS bool // set when ImportFromICS was called
}

func (f *fakeEventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	f.lastCreateInput = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResult != nil {
		return f.createResult, nil
	}
	return &domain.Event{ID: "ev-created", Title: in.Title, Slug: "spring-tech-meetup"}, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id string, in domain.UpdateEventInput) (*domain.Event, error) {
	f.lastUpdateID = id
	f.lastUpdateInput = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateResult != nil {
		return f.updateResult, nil
	}
	return &domain.Event{ID: id}, nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	if f.eventsByID != nil {
		if event, ok := f.eventsByID[id]; ok {
			return event, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if f.getBySlugErr != nil {
		return nil, f.getBySlugErr
	}
	if f.eventsBySlug != nil {
		if event, ok := f.eventsBySlug[slug]; ok {
			return event, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listResult != nil {
		return f.listResult, nil
	}
	return []*domain.Event{}, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id string) error {
	f.lastDeleteID = id
	return f.deleteErr
}

func (f *fakeEventService) ImportEvents(ctx context.Context, candidates []domain.CreateEventInput) (*domain.ImportSummary, error) {
	if f.importErr != nil {
		return nil, f.importErr
	}
	if f.importResult != nil {
		return f.importResult, nil
	}
	return &domain.ImportSummary{Failed: []domain.ImportFailure{}}, nil
}

func (f *fakeEventService) ImportFromICS(ctx context.Context, feedURL string) (*domain.ImportSummary, error) {
	f.importFromICS = true
	f.lastFeedURL = feedURL
	if f.importErr != nil {
		return nil, f.importErr
	}
	if f.importResult != nil {
		return f.importResult, nil
	}
	return &domain.ImportSummary{Failed: []domain.ImportFailure{}}, nil
}

func TestEventController_CreateEvent(t *testing.T) {
	validBody := `{"title":"Spring Tech Meetup","description":"An evening of talks.","overview":"Talks and pizza.","image":"https://img.example/st.png","venue":"Main Hall","location":"Springfield","date":"April 3, 2026","time":"6:30 pm","mode":"in-person","audience":"developers","agenda":["Doors open","Talks","Networking"],"organizer":"Tech Club","tags":["go","community"]}`

	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
		checkEvent     func(t *testing.T, event domain.Event)
	}{
		{
			name:       "success",
			body:       validBody,
			wantStatus: http.StatusCreated,
			checkEvent: func(t *testing.T, event domain.Event) {
				assert.Equal(t, "ev-created", event.ID)
				assert.Equal(t, "Spring Tech Meetup", event.Title)
				assert.Equal(t, "spring-tech-meetup", event.Slug)
			},
		},
		{
			name:           "bad request invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "unknown field rejected",
			body:           `{"title":"Conf","slug":"hand-picked"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:           "missing field maps to 400",
			body:           validBody,
			fakeErr:        &domain.ValidationError{Field: "venue", Err: domain.ErrFieldRequired},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "venue",
		},
		{
			name:           "duplicate slug maps to 409",
			body:           validBody,
			fakeErr:        domain.ErrDuplicateSlug,
			wantStatus:     http.StatusConflict,
			wantBodySubstr: "slug already in use",
		},
		{
			name:           "store not initialized maps to 503",
			body:           validBody,
			fakeErr:        domain.ErrStoreNotInitialized,
			wantStatus:     http.StatusServiceUnavailable,
			wantBodySubstr: "not initialized",
		},
		{
			name:           "service error",
			body:           validBody,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{createErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error, "success response must have error nil")
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var event domain.Event
				require.NoError(t, json.Unmarshal(dataBytes, &event))
				tt.checkEvent(t, event)
				assert.Equal(t, "Main Hall", fake.lastCreateInput.Venue, "input passed through unmodified")
			} else {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}

func TestEventController_GetEventBySlug(t *testing.T) {
	stored := &domain.Event{ID: "ev-1", Title: "Spring Tech Meetup", Slug: "spring-tech-meetup"}

	tests := []struct {
		name           string
		slug           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			slug:       "spring-tech-meetup",
			wantStatus: http.StatusOK,
		},
		{
			name:           "missing slug",
			slug:           "",
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "missing slug",
		},
		{
			name:           "unknown slug",
			slug:           "no-such-event",
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "event not found",
		},
		{
			name:           "store not initialized",
			slug:           "spring-tech-meetup",
			fakeErr:        domain.ErrStoreNotInitialized,
			wantStatus:     http.StatusServiceUnavailable,
			wantBodySubstr: "not initialized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{
				getBySlugErr: tt.fakeErr,
				eventsBySlug: map[string]*domain.Event{stored.Slug: stored},
			}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "http://test/events/"+tt.slug, nil)
			req.SetPathValue("slug", tt.slug)
			rr := httptest.NewRecorder()

			ctrl.GetEventBySlug(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var event domain.Event
				require.NoError(t, json.Unmarshal(dataBytes, &event))
				assert.Equal(t, "ev-1", event.ID)
				assert.Equal(t, "spring-tech-meetup", event.Slug)
			} else {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}

func TestEventController_ListEvents(t *testing.T) {
	tests := []struct {
		name        string
		fakeErr     error
		listResult  []*domain.Event
		wantStatus  int
		checkEvents func(t *testing.T, events []domain.Event)
	}{
		{
			name: "success",
			listResult: []*domain.Event{
				{ID: "ev-2", Slug: "autumn-tech-meetup"},
				{ID: "ev-1", Slug: "spring-tech-meetup"},
			},
			wantStatus: http.StatusOK,
			checkEvents: func(t *testing.T, events []domain.Event) {
				require.Len(t, events, 2)
				assert.Equal(t, "ev-2", events[0].ID, "newest first")
			},
		},
		{
			name:       "empty catalog returns empty array",
			wantStatus: http.StatusOK,
			checkEvents: func(t *testing.T, events []domain.Event) {
				assert.Len(t, events, 0)
			},
		},
		{
			name:       "store not initialized",
			fakeErr:    domain.ErrStoreNotInitialized,
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{listErr: tt.fakeErr, listResult: tt.listResult}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			rr := httptest.NewRecorder()

			ctrl.ListEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var events []domain.Event
				require.NoError(t, json.Unmarshal(dataBytes, &events))
				tt.checkEvents(t, events)
			} else {
				require.NotNil(t, envelope.Error, "error response must have error set")
			}
		})
	}
}

func TestEventController_UpdateEvent(t *testing.T) {
	tests := []struct {
		name           string
		eventID        string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			eventID:    "ev-1",
			body:       `{"title":"Autumn Tech Meetup"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:           "missing eventID",
			eventID:        "",
			body:           `{"title":"Autumn Tech Meetup"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "missing eventID",
		},
		{
			name:           "bad request invalid json",
			eventID:        "ev-1",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "unknown event",
			eventID:        "ev-404",
			body:           `{"title":"Autumn Tech Meetup"}`,
			fakeErr:        domain.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "event not found",
		},
		{
			name:           "blanked required field maps to 400",
			eventID:        "ev-1",
			body:           `{"location":""}`,
			fakeErr:        &domain.ValidationError{Field: "location", Err: domain.ErrFieldRequired},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "location",
		},
		{
			name:           "retitle onto taken slug maps to 409",
			eventID:        "ev-1",
			body:           `{"title":"Spring Tech Meetup"}`,
			fakeErr:        domain.ErrDuplicateSlug,
			wantStatus:     http.StatusConflict,
			wantBodySubstr: "slug already in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{updateErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPatch, "http://test/events/"+tt.eventID, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("eventID", tt.eventID)
			rr := httptest.NewRecorder()

			ctrl.UpdateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "ev-1", fake.lastUpdateID)
				require.NotNil(t, fake.lastUpdateInput.Title)
				assert.Equal(t, "Autumn Tech Meetup", *fake.lastUpdateInput.Title)
				assert.Nil(t, fake.lastUpdateInput.Venue, "omitted fields stay nil")
			} else {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}

func TestEventController_DeleteEvent(t *testing.T) {
	tests := []struct {
		name           string
		eventID        string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			eventID:    "ev-1",
			wantStatus: http.StatusOK,
		},
		{
			name:           "missing eventID",
			eventID:        "",
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "missing eventID",
		},
		{
			name:           "unknown event",
			eventID:        "ev-404",
			fakeErr:        domain.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "event not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{deleteErr: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodDelete, "http://test/events/"+tt.eventID, nil)
			req.SetPathValue("eventID", tt.eventID)
			rr := httptest.NewRecorder()

			ctrl.DeleteEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				dataMap, ok := envelope.Data.(map[string]interface{})
				require.True(t, ok, "data must be object")
				assert.Equal(t, "deleted", dataMap["status"], "data.status")
				assert.Equal(t, "ev-1", fake.lastDeleteID)
			} else {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}

func TestEventController_ImportEvents(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		importResult   *domain.ImportSummary
		wantStatus     int
		wantBodySubstr string
		checkSummary   func(t *testing.T, summary domain.ImportSummary)
	}{
		{
			name: "success",
			body: `{"url":"https://calendar.example/feed.ics"}`,
			importResult: &domain.ImportSummary{
				Imported: 2,
				Failed: []domain.ImportFailure{
					{Title: "Bare Feed Entry", Reason: "venue: field is required"},
				},
			},
			wantStatus: http.StatusOK,
			checkSummary: func(t *testing.T, summary domain.ImportSummary) {
				assert.Equal(t, 2, summary.Imported)
				require.Len(t, summary.Failed, 1)
				assert.Equal(t, "Bare Feed Entry", summary.Failed[0].Title)
				assert.Contains(t, summary.Failed[0].Reason, "venue")
			},
		},
		{
			name:           "missing url",
			body:           `{}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "url is required",
		},
		{
			name:           "blank url",
			body:           `{"url":"   "}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "url is required",
		},
		{
			name:           "feed unreachable",
			body:           `{"url":"https://calendar.example/feed.ics"}`,
			fakeErr:        errors.New("fetch feed: connection refused"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "fetch feed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{importErr: tt.fakeErr, importResult: tt.importResult}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/events/import", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.ImportEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				require.True(t, fake.importFromICS, "handler must go through the feed import path")
				assert.Equal(t, "https://calendar.example/feed.ics", fake.lastFeedURL)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var summary domain.ImportSummary
				require.NoError(t, json.Unmarshal(dataBytes, &summary))
				tt.checkSummary(t, summary)
			} else {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}
