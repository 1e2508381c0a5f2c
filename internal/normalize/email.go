package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"eventlistings/internal/domain"
)

// Accepts both quoted ("box name"@host) and unquoted local parts; the domain
// side needs at least one dot and a final segment of two or more letters.
var emailRegexp = regexp.MustCompile(`^(?:[^<>()\[\]\\.,;:\s@"]+(?:\.[^<>()\[\]\\.,;:\s@"]+)*|".+")@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}$`)

// Email trims and lowercases an address and validates the result. The error
// names the submitted value so the caller can correct it.
func Email(s string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(s))
	if !emailRegexp.MatchString(email) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidEmail, s)
	}
	return email, nil
}
