package workflow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainTracker(t *testing.T) {
	t.Run("records domain of URL", func(t *testing.T) {
		tracker := NewDomainTracker()
		tracker.RecordBad("https://bad.example.com/page?x=1", ReasonExtractionError)

		assert.Equal(t, []string{"bad.example.com"}, tracker.Exclusions())
		assert.Equal(t, ReasonExtractionError, tracker.Reasons()["bad.example.com"])
	})

	t.Run("duplicate failures record domain once", func(t *testing.T) {
		tracker := NewDomainTracker()
		tracker.RecordBad("https://bad.example.com/one", ReasonExtractionError)
		tracker.RecordBad("https://bad.example.com/two", ReasonIrrelevant)

		assert.Equal(t, 1, tracker.Len())
		// First reason wins.
		assert.Equal(t, ReasonExtractionError, tracker.Reasons()["bad.example.com"])
	})

	t.Run("exclusions are sorted", func(t *testing.T) {
		tracker := NewDomainTracker()
		tracker.RecordBad("https://zeta.example.com", ReasonIrrelevant)
		tracker.RecordBad("https://alpha.example.com", ReasonIrrelevant)

		assert.Equal(t, []string{"alpha.example.com", "zeta.example.com"}, tracker.Exclusions())
	})

	t.Run("unparseable URL ignored", func(t *testing.T) {
		tracker := NewDomainTracker()
		tracker.RecordBad("not a url", ReasonInvalidResponse)
		assert.Equal(t, 0, tracker.Len())
	})

	t.Run("concurrent recording is safe", func(t *testing.T) {
		tracker := NewDomainTracker()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tracker.RecordBad("https://shared.example.com/x", ReasonIrrelevant)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, tracker.Len())
	})
}
