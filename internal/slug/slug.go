// Package slug derives URL-safe post identifiers from titles and allocates
// collection-wide unique values against an existence check.
package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// maxAttempts bounds the suffix search so a broken existence check cannot
// spin forever. Real collections exhaust long before this.
const maxAttempts = 10000

// ErrSpaceExhausted is returned when no free suffix is found within the
// attempt bound.
var ErrSpaceExhausted = errors.New("slug: no free suffix found")

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate derives a slug candidate from a title: lowercase, every run of
// characters outside [a-z0-9] collapsed to a single hyphen, leading and
// trailing hyphens stripped. Pure and deterministic.
func Generate(title string) string {
	s := strings.ToLower(title)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ExistsFunc reports whether a slug is already present in the collection.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// AllocateUnique returns the candidate itself when free, otherwise the first
// free value in the series candidate-1, candidate-2, ... The suffix series is
// deterministic: two calls against the same collection state return the same
// value, which makes retries after a lost insert race converge instead of
// drifting. An existence-check failure is returned to the caller, who must
// abort creation rather than risk inserting a duplicate.
func AllocateUnique(ctx context.Context, candidate string, exists ExistsFunc) (string, error) {
	for i := 0; i <= maxAttempts; i++ {
		s := candidate
		if i > 0 {
			s = fmt.Sprintf("%s-%d", candidate, i)
		}
		taken, err := exists(ctx, s)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", s, err)
		}
		if !taken {
			return s, nil
		}
	}
	return "", ErrSpaceExhausted
}
