// Package ics renders event listings as iCalendar feeds.
package ics

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"eventlistings/internal/domain"
)

const productID = "-//eventlistings//calendar feed//EN"

// BuildCalendar renders the given listings as a VEVENT feed. Listings whose
// date never canonicalized to YYYY-MM-DD are skipped; a missing or free-form
// time degrades to an all-day entry.
func BuildCalendar(events []*domain.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	for _, e := range events {
		addEvent(cal, e)
	}
	return cal
}

// BuildEventCalendar renders a single listing as its own calendar.
func BuildEventCalendar(event *domain.Event) *ical.Calendar {
	return BuildCalendar([]*domain.Event{event})
}

func addEvent(cal *ical.Calendar, e *domain.Event) bool {
	start, allDay, ok := startTime(e)
	if !ok {
		return false
	}
	ev := cal.AddEvent(e.ID)
	ev.SetDtStampTime(e.UpdatedAt.UTC())
	ev.SetCreatedTime(e.CreatedAt.UTC())
	ev.SetModifiedAt(e.UpdatedAt.UTC())
	ev.SetSummary(e.Title)
	ev.SetDescription(e.Description)
	ev.SetLocation(e.Venue + ", " + e.Location)
	if allDay {
		ev.SetAllDayStartAt(start)
	} else {
		ev.SetStartAt(start)
	}
	if len(e.Tags) > 0 {
		ev.SetProperty(ical.ComponentPropertyCategories, strings.Join(e.Tags, ","))
	}
	return true
}

// startTime derives the VEVENT start from the stored date and time strings.
// The bool pair is (all day, usable).
func startTime(e *domain.Event) (time.Time, bool, bool) {
	day, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return time.Time{}, false, false
	}
	clock, err := time.Parse("15:04", e.Time)
	if err != nil {
		return day, true, true
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	return t, false, true
}
