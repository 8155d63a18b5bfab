package mock

import (
	"context"
	"fmt"

	"github.com/vspruyt/infogen/websearch"
)

// MockSearchProvider is a test double for websearch.SearchProvider.
// It allows custom behavior injection via function fields.
type MockSearchProvider struct {
	// SearchFunc is called by Search if set.
	// If nil, returns deterministic synthetic results.
	SearchFunc func(ctx context.Context, req *websearch.SearchRequest) ([]websearch.Result, error)

	callCount int
}

// NewMockSearchProvider creates a mock search provider with default behavior.
func NewMockSearchProvider() *MockSearchProvider {
	return &MockSearchProvider{}
}

// Search returns MaxResults synthetic results derived from the query.
func (m *MockSearchProvider) Search(ctx context.Context, req *websearch.SearchRequest) ([]websearch.Result, error) {
	m.callCount++

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, req)
	}

	n := req.MaxResults
	if n <= 0 {
		n = 2
	}
	results := make([]websearch.Result, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, websearch.Result{
			Title: fmt.Sprintf("Result %d for %s", i+1, req.Query),
			URL:   fmt.Sprintf("https://source%d.example.com/%d", i+1, i+1),
			Score: 1.0 - float64(i)*0.1,
		})
	}
	return results, nil
}

// CallCount returns the number of times Search was called.
func (m *MockSearchProvider) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockSearchProvider) Reset() {
	m.callCount = 0
	m.SearchFunc = nil
}
