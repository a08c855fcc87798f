// internal/utils/slug.go
package utils

import (
	"regexp"
	"strings"
)

var (
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugInvalid  = regexp.MustCompile(`[^\w\-]+`)
	slugRepeated = regexp.MustCompile(`\-\-+`)
)

// Slugify derives a URL-safe, lowercase, hyphenated identifier from a
// display name. Slugs are generated once at creation and never recomputed.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugRepeated.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return slug
}
