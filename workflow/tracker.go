package workflow

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/vspruyt/infogen/core"
)

// Reasons a source can be marked bad during a run.
const (
	ReasonInvalidResponse  = "invalid response format"
	ReasonNoExtractResults = "no extract results"
	ReasonExtractionError  = "extraction error"
	ReasonInvalidContent   = "invalid content"
	ReasonIrrelevant       = "irrelevant content"
)

// DomainTracker accumulates domains that produced bad results within one run.
// The set only grows: a domain once marked bad stays excluded for the rest of
// the run, across retries. Safe for concurrent use.
type DomainTracker struct {
	mu      sync.Mutex
	reasons map[string]string
	logger  *slog.Logger
}

// NewDomainTracker creates an empty tracker.
func NewDomainTracker() *DomainTracker {
	return &DomainTracker{
		reasons: make(map[string]string),
		logger:  slog.Default().With("component", "domain-tracker"),
	}
}

// RecordBad marks the URL's domain as bad. The first recorded reason for a
// domain wins; later failures on the same domain don't overwrite it.
func (t *DomainTracker) RecordBad(rawURL, reason string) {
	domain := core.DomainOf(rawURL)
	if domain == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.reasons[domain]; exists {
		return
	}
	t.reasons[domain] = reason
	t.logger.Debug("domain marked bad", "domain", domain, "reason", reason)
}

// Exclusions returns the excluded domains, sorted for deterministic
// provider calls.
func (t *DomainTracker) Exclusions() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, 0, len(t.reasons))
	for domain := range t.reasons {
		out = append(out, domain)
	}
	sort.Strings(out)
	return out
}

// Reasons returns a copy of the domain→reason map.
func (t *DomainTracker) Reasons() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]string, len(t.reasons))
	for domain, reason := range t.reasons {
		out[domain] = reason
	}
	return out
}

// Len returns the number of excluded domains.
func (t *DomainTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.reasons)
}
