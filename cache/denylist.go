package cache

import (
	"sort"
	"strings"
)

// defaultDenyList lists domains whose pages rarely extract into useful text:
// social platforms, login-walled feeds, and video sites.
var defaultDenyList = []string{
	"facebook.com",
	"instagram.com",
	"linkedin.com",
	"pinterest.com",
	"reddit.com",
	"tiktok.com",
	"twitter.com",
	"x.com",
	"youtube.com",
}

// DefaultDenyList returns a copy of the built-in domain deny list.
func DefaultDenyList() []string {
	out := make([]string, len(defaultDenyList))
	copy(out, defaultDenyList)
	return out
}

// MergeExclusions unions domain lists, lowercased, deduplicated, and sorted
// for deterministic provider calls.
func MergeExclusions(lists ...[]string) []string {
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, domain := range list {
			domain = strings.ToLower(strings.TrimSpace(domain))
			if domain != "" {
				seen[domain] = true
			}
		}
	}

	out := make([]string, 0, len(seen))
	for domain := range seen {
		out = append(out, domain)
	}
	sort.Strings(out)
	return out
}
