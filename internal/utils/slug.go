package utils

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slugify derives a URL-safe, lowercase, hyphenated slug from a title.
// Deterministic and idempotent; an empty title maps to an empty string, which
// is left to collide on the unique slug index rather than being invented here.
func Slugify(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return slug.Make(title)
}
