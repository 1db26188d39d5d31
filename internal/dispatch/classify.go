// Where: internal/dispatch/classify.go
// What: Textual response classifier.
// Why: The legacy CLI surface has no structured error channel beyond exit
//      status and free text, so a keyword scan is the only contract left.
package dispatch

import (
	"regexp"
	"strings"
)

// The marker must appear as a leading token or as a quoted JSON key, never as
// a free-floating substring: a payload containing the word "error" as data is
// not an error.
var (
	errorKeyPattern   = regexp.MustCompile(`(?i)"error"\s*:`)
	leadingErrorToken = regexp.MustCompile(`(?i)^\s*error\b`)
)

// Classify buckets a raw response body. A case-insensitive "unauthenticated"
// token anywhere wins over every other marker; error markers require a
// leading "error" token, a quoted "error" JSON key, or the fixed phrases
// "server error" / "internal error"; everything else is Success.
func Classify(body string) Classification {
	lower := strings.ToLower(body)
	if strings.Contains(lower, "unauthenticated") {
		return AuthFailure
	}
	if leadingErrorToken.MatchString(body) {
		return OtherError
	}
	if errorKeyPattern.MatchString(body) {
		return OtherError
	}
	if strings.Contains(lower, "server error") || strings.Contains(lower, "internal error") {
		return OtherError
	}
	return Success
}
