package mock

import (
	"context"
	"strings"

	"github.com/vspruyt/infogen/ai"
)

// MockClassifier is a test double for ai.ContentClassifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, uses default behavior: non-empty content is valid and
	// summarized by truncation.
	ClassifyFunc func(ctx context.Context, query, title, url, content string) (*ai.Classification, error)

	callCount int
}

// NewMockClassifier creates a mock classifier with default behavior.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify marks empty content invalid and summarizes the rest by truncation.
func (m *MockClassifier) Classify(ctx context.Context, query, title, url, content string) (*ai.Classification, error) {
	m.callCount++

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, query, title, url, content)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return &ai.Classification{Valid: false}, nil
	}

	summary := content
	if len(summary) > 200 {
		summary = summary[:200]
	}
	return &ai.Classification{Summary: summary, Valid: true}, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
}
