package mock

import (
	"context"
	"strings"

	"github.com/vspruyt/infogen/ai"
	"github.com/vspruyt/infogen/core"
)

// MockPolicyReasoner is a test double for ai.PolicyReasoner.
// Its default behavior is a small keyword rules engine mirroring how a real
// model grades query volatility, so cache policy paths can be tested without
// an LLM.
type MockPolicyReasoner struct {
	// DecidePolicyFunc is called by DecidePolicy if set.
	// If nil, uses the keyword rules below.
	DecidePolicyFunc func(ctx context.Context, query string) (*ai.PolicyAdvice, error)

	callCount int
}

// NewMockPolicyReasoner creates a mock reasoner with default rule-based behavior.
func NewMockPolicyReasoner() *MockPolicyReasoner {
	return &MockPolicyReasoner{}
}

// DecidePolicy grades the query by keyword.
func (m *MockPolicyReasoner) DecidePolicy(ctx context.Context, query string) (*ai.PolicyAdvice, error) {
	m.callCount++

	if m.DecidePolicyFunc != nil {
		return m.DecidePolicyFunc(ctx, query)
	}

	q := strings.ToLower(query)
	switch {
	case containsAny(q, "weather", "stock price", "exchange rate", "score", "right now", "breaking"):
		return &ai.PolicyAdvice{TimeRange: core.TimeRangeDay, CacheDurationMinutes: 60}, nil
	case containsAny(q, "news", "today", "latest"):
		return &ai.PolicyAdvice{TimeRange: core.TimeRangeDay, CacheDurationMinutes: 720}, nil
	case containsAny(q, "this week", "upcoming"):
		return &ai.PolicyAdvice{TimeRange: core.TimeRangeWeek, CacheDurationMinutes: 10080}, nil
	case containsAny(q, "this month", "recent"):
		return &ai.PolicyAdvice{TimeRange: core.TimeRangeMonth, CacheDurationMinutes: 43200}, nil
	default:
		// Stable facts: no recency constraint, maximum retention.
		return &ai.PolicyAdvice{TimeRange: core.TimeRangeNone, CacheDurationMinutes: core.MaxCacheDurationMinutes}, nil
	}
}

// CallCount returns the number of times DecidePolicy was called.
func (m *MockPolicyReasoner) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockPolicyReasoner) Reset() {
	m.callCount = 0
	m.DecidePolicyFunc = nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
