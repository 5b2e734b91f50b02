package core

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var markupPolicy = bluemonday.StrictPolicy()

// SanitizeDescription strips all markup from free-text input before storage.
// The policy escapes entities while stripping tags, so the surviving text is
// unescaped back to plain characters.
func SanitizeDescription(s string) string {
	s = markupPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
