package report

import (
	"net/url"
	"strings"
)

const DefaultShareBaseURL = "https://wa.me/"

// ShareURL builds a message-app deep link carrying text.
func ShareURL(baseURL, text string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultShareBaseURL
	}
	// Spaces are sent as %20; some clients render a literal '+'.
	return baseURL + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
