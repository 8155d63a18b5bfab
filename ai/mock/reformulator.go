package mock

import "context"

// MockReformulator is a test double for ai.QueryReformulator.
// It allows custom behavior injection via function fields.
type MockReformulator struct {
	// ReformulateFunc is called by Reformulate if set.
	// If nil, uses default deterministic behavior.
	ReformulateFunc func(ctx context.Context, original, rejected string) (string, error)

	callCount int
}

// NewMockReformulator creates a mock reformulator with default behavior.
func NewMockReformulator() *MockReformulator {
	return &MockReformulator{}
}

// Reformulate returns the original query on the first pass and a rephrased
// variant when a prior reformulation was rejected.
func (m *MockReformulator) Reformulate(ctx context.Context, original, rejected string) (string, error) {
	m.callCount++

	if m.ReformulateFunc != nil {
		return m.ReformulateFunc(ctx, original, rejected)
	}

	if rejected == "" {
		return original, nil
	}
	return original + " facts and background", nil
}

// CallCount returns the number of times Reformulate was called.
func (m *MockReformulator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockReformulator) Reset() {
	m.callCount = 0
	m.ReformulateFunc = nil
}
