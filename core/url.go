package core

import (
	"net/url"
	"strings"
)

// DomainOf derives the lowercased authority component from a raw URL.
// Returns an empty string when the URL cannot be parsed or has no host,
// so callers can treat "no domain" uniformly.
func DomainOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
