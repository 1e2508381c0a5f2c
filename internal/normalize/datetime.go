package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	re24Hour = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
	re12Hour = regexp.MustCompile(`(?i)^([0-9]{1,2})(?::([0-5][0-9]))?\s*(am|pm)$`)
)

// Layouts tried when interpreting a submitted date, canonical form first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2 2006",
}

// Layouts tried when interpreting a full date-time string.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"January 2, 2006 3:04 PM",
	"January 2, 2006 15:04",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 15:04",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04",
}

// Date rewrites a submitted date into the canonical "2006-01-02" form when one
// of the accepted layouts parses it. Unparseable input is returned unchanged:
// canonicalization is best effort and never fails a write by itself.
func Date(s string) string {
	d := strings.TrimSpace(s)
	if d == "" {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, d); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if t, ok := parseDateTime(d); ok {
		return t.Format("2006-01-02")
	}
	return s
}

// Time rewrites a submitted time into the zero-padded 24-hour "HH:MM" form.
// Three grammars are tried in order: strict 24-hour H:MM or HH:MM, a 12-hour
// clock with an am/pm suffix, and finally a full date-time string whose clock
// part is kept. Input matching none of them is returned unchanged.
func Time(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return s
	}
	if m := re24Hour.FindStringSubmatch(t); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	if m := re12Hour.FindStringSubmatch(t); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour >= 1 && hour <= 12 {
			minute := 0
			if m[2] != "" {
				minute, _ = strconv.Atoi(m[2])
			}
			if strings.EqualFold(m[3], "am") {
				if hour == 12 {
					hour = 0
				}
			} else if hour != 12 {
				hour += 12
			}
			return fmt.Sprintf("%02d:%02d", hour, minute)
		}
	}
	if parsed, ok := parseDateTime(t); ok {
		return parsed.Format("15:04")
	}
	return s
}

func parseDateTime(s string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
