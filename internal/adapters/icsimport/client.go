package icsimport

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	ical "github.com/arran4/golang-ical"

	"eventlistings/internal/domain"
)

type client struct {
	httpClient *http.Client
}

// NewHTTPFetcher returns a fetcher that downloads and parses a remote ICS feed.
func NewHTTPFetcher(httpClient *http.Client) domain.FeedFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{httpClient: httpClient}
}

func (c *client) Fetch(ctx context.Context, feedURL string) ([]domain.CreateEventInput, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status: %d", resp.StatusCode)
	}

	cal, err := ical.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	events := cal.Events()
	candidates := make([]domain.CreateEventInput, 0, len(events))
	for _, ve := range events {
		candidates = append(candidates, candidateFromVEvent(ve))
	}
	return candidates, nil
}

// candidateFromVEvent maps the properties a public feed usually carries.
// Fields no feed can express stay empty; such candidates are rejected
// per-candidate by the create path and show up in the import summary.
func candidateFromVEvent(ve *ical.VEvent) domain.CreateEventInput {
	in := domain.CreateEventInput{
		Title:       propValue(ve, ical.ComponentPropertySummary),
		Description: propValue(ve, ical.ComponentPropertyDescription),
		Location:    propValue(ve, ical.ComponentPropertyLocation),
	}
	if cats := propValue(ve, ical.ComponentPropertyCategories); cats != "" {
		for _, tag := range strings.Split(cats, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				in.Tags = append(in.Tags, tag)
			}
		}
	}
	if start, err := ve.GetStartAt(); err == nil && !start.IsZero() {
		in.Date = start.Format("2006-01-02")
		if !isAllDay(ve) {
			in.Time = start.Format("15:04")
		}
	}
	return in
}

// isAllDay reports whether DTSTART is a date-only value.
func isAllDay(ve *ical.VEvent) bool {
	prop := ve.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return false
	}
	if params := prop.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(prop.Value, "T")
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}
