package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans user-generated HTML, keeping a safe markup subset. Used for
// profile bios where light formatting is allowed.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}

// SanitizeStrict strips all markup. Post and comment bodies are plain text.
func SanitizeStrict(input string) string {
	return strictPolicy.Sanitize(input)
}
