// Package normalize canonicalizes candidate records before they are written:
// slug derivation, date/time canonical forms, email cleanup and the
// required-field rules. Everything here is pure; store access stays in the
// services that call it.
package normalize

import (
	"regexp"
	"strings"
)

var (
	reSlugStrip   = regexp.MustCompile(`[^a-z0-9\s-]`)
	reSlugSpaces  = regexp.MustCompile(`\s+`)
	reSlugHyphens = regexp.MustCompile(`-+`)
)

// Slug derives the URL identifier for a title: lowercase, trimmed, every
// character outside lowercase letters, digits, whitespace and hyphens
// stripped, whitespace runs and hyphen runs collapsed to a single hyphen,
// edge hyphens removed. Running Slug on its own output returns the same slug.
func Slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = reSlugStrip.ReplaceAllString(s, "")
	s = reSlugSpaces.ReplaceAllString(s, "-")
	s = reSlugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
