package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlistings/internal/domain"
)

func calendarEvent(title, date, clock string) *domain.Event {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Event{
		ID:        "64f0c0ffee0000000000aaaa",
		Title:     title,
		Slug:      "spring-tech-meetup",
		Venue:     "Main Hall",
		Location:  "Springfield",
		Date:      date,
		Time:      clock,
		Tags:      []string{"go", "community"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestBuildCalendar(t *testing.T) {
	events := []*domain.Event{
		calendarEvent("Spring Tech Meetup", "2026-04-03", "18:30"),
		calendarEvent("Date Still Open", "TBA", ""),
	}

	out := BuildCalendar(events).Serialize()

	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "SUMMARY:Spring Tech Meetup")
	assert.Contains(t, out, "DTSTART:20260403T183000Z")
	assert.Contains(t, out, "CATEGORIES:go")
	assert.NotContains(t, out, "Date Still Open")
}

func TestBuildCalendar_AllDayWhenTimeFreeForm(t *testing.T) {
	out := BuildCalendar([]*domain.Event{calendarEvent("Open House", "2026-04-03", "doors at sunset")}).Serialize()

	require.Contains(t, out, "BEGIN:VEVENT")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260403")
}

func TestBuildEventCalendar(t *testing.T) {
	out := BuildEventCalendar(calendarEvent("Spring Tech Meetup", "2026-04-03", "18:30")).Serialize()

	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "LOCATION:Main Hall")
}
