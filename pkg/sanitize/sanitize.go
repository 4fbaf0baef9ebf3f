// Package sanitize strips markup from user-supplied text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes every HTML element and attribute, keeps the text content and trims surrounding space.
// Entities produced by the policy are decoded so "R&D" stays "R&D".
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Texts applies Text to every element and drops elements that end up empty.
func Texts(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if clean := Text(v); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
