package utils

import "github.com/microcosm-cc/bluemonday"

var (
	bodyPolicy  = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// SanitizeBody cleans submitted post content, keeping user-generated markup.
func SanitizeBody(input string) string {
	return bodyPolicy.Sanitize(input)
}

// SanitizePlain strips all markup; used for titles, snippets and usernames.
func SanitizePlain(input string) string {
	return plainPolicy.Sanitize(input)
}
