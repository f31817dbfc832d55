// Package identifier classifies caller-supplied post identifiers so lookups
// can dispatch between the surrogate key and the slug.
package identifier

import "github.com/google/uuid"

// Kind is the identifier scheme of a path segment.
type Kind int

const (
	// Slug is any identifier that is not a canonical UUID.
	Slug Kind = iota
	// Surrogate is a canonical 8-4-4-4-12 hexadecimal UUID.
	Surrogate
)

// canonicalUUIDLen is the length of the hyphenated textual UUID form.
// uuid.Parse also accepts braced, URN, and bare-hex encodings; the length
// guard keeps those classified as slugs so only the canonical form routes
// to a surrogate-key lookup.
const canonicalUUIDLen = 36

// Classify returns Surrogate iff s matches the canonical UUID textual form,
// case-insensitive; everything else is a Slug. Every lookup, update, and
// delete path must use this same classification so a slug that resembles a
// UUID is never misrouted.
func Classify(s string) Kind {
	if len(s) != canonicalUUIDLen {
		return Slug
	}
	if _, err := uuid.Parse(s); err != nil {
		return Slug
	}
	return Surrogate
}
