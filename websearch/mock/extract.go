package mock

import (
	"context"

	"github.com/vspruyt/infogen/websearch"
)

// MockExtractionProvider is a test double for websearch.ExtractionProvider.
// It allows custom behavior injection via function fields.
type MockExtractionProvider struct {
	// ExtractFunc is called by Extract if set.
	// If nil, every URL extracts successfully with synthetic content.
	ExtractFunc func(ctx context.Context, urls []string) (*websearch.ExtractResponse, error)

	callCount int
}

// NewMockExtractionProvider creates a mock extraction provider with default behavior.
func NewMockExtractionProvider() *MockExtractionProvider {
	return &MockExtractionProvider{}
}

// Extract returns synthetic content for every requested URL.
func (m *MockExtractionProvider) Extract(ctx context.Context, urls []string) (*websearch.ExtractResponse, error) {
	m.callCount++

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, urls)
	}

	resp := &websearch.ExtractResponse{
		Results: make([]websearch.ExtractedPage, 0, len(urls)),
	}
	for _, url := range urls {
		resp.Results = append(resp.Results, websearch.ExtractedPage{
			URL:        url,
			RawContent: "Extracted content from " + url,
		})
	}
	return resp, nil
}

// CallCount returns the number of times Extract was called.
func (m *MockExtractionProvider) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockExtractionProvider) Reset() {
	m.callCount = 0
	m.ExtractFunc = nil
}
