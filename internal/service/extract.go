package service

import (
	"regexp"
	"strings"
)

// threads.net links media either as /@user/post/<id> or the short /t/<id> form.
var threadIDPattern = regexp.MustCompile(`/(?:post|t)/([A-Za-z0-9_-]+)`)

// ExtractThreadID pulls the post ID out of a Threads URL, or trims and
// returns the input unchanged when it is already a bare ID. It returns
// the empty string when no ID can be extracted.
func ExtractThreadID(urlOrID string) string {
	if urlOrID == "" {
		return ""
	}

	if strings.HasPrefix(urlOrID, "http://") || strings.HasPrefix(urlOrID, "https://") {
		match := threadIDPattern.FindStringSubmatch(urlOrID)
		if match == nil {
			return ""
		}
		return match[1]
	}

	return strings.TrimSpace(urlOrID)
}
