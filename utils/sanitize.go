package utils

import "github.com/microcosm-cc/bluemonday"

var (
	bodyPolicy  = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans user-generated HTML, keeping common formatting tags.
func Sanitize(input string) string {
	return bodyPolicy.Sanitize(input)
}

// SanitizeStrict strips all markup; used for titles, excerpts and names.
func SanitizeStrict(input string) string {
	return plainPolicy.Sanitize(input)
}
