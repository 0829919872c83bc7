package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans user generated HTML content, keeping benign markup.
// Used for idea descriptions and comment text.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}

// SanitizeStrict strips all markup. Used for titles and categories, which
// are rendered as plain text.
func SanitizeStrict(input string) string {
	return strictPolicy.Sanitize(input)
}
