// Copyright 2025 Vincent Spruyt
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/vspruyt/infogen/ai"
	"github.com/vspruyt/infogen/cache"
	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/websearch"
)

// MaxRetries bounds how many times a run reformulates and searches again
// after an insufficient result set.
const MaxRetries = 3

// Default workflow parameters.
const (
	DefaultMinResults               = 1
	DefaultMaxResults               = 2
	DefaultMaxConcurrentValidations = 5
)

// Config tunes one orchestrator instance.
type Config struct {
	// MinResults is how many validated sources a run needs before it stops
	// retrying.
	MinResults int

	// MaxResults caps how many sources each search attempt requests.
	MaxResults int

	// Depth selects the provider search mode.
	Depth core.SearchDepth

	// MaxConcurrentValidations bounds parallel content classification.
	MaxConcurrentValidations int
}

// DefaultOrchestratorConfig returns the default workflow parameters.
func DefaultOrchestratorConfig() *Config {
	return &Config{
		MinResults:               DefaultMinResults,
		MaxResults:               DefaultMaxResults,
		Depth:                    core.DepthBasic,
		MaxConcurrentValidations: DefaultMaxConcurrentValidations,
	}
}

// RunResult is the final state of one research run.
type RunResult struct {
	RunID         uuid.UUID
	OriginalQuery string
	EnhancedQuery string

	// Results are the validated sources, each carrying raw content and a
	// classifier summary. Preserved even when Status is StatusError.
	Results []core.SearchResult

	Status       core.Status
	ErrorMessage string
	RetryCount   int

	// BadDomains maps each domain excluded during the run to the reason it
	// was first marked bad.
	BadDomains map[string]string
}

// Orchestrator drives one research query end to end: reformulate, search
// (cache first), extract, validate, and retry with a fresh reformulation
// while results are insufficient.
type Orchestrator struct {
	embedder     ai.Embedder
	reformulator ai.QueryReformulator
	classifier   ai.ContentClassifier
	search       *cache.SearchCache
	content      *cache.ContentCache
	events       *EventStream
	config       *Config
	logger       *slog.Logger
}

// OrchestratorOption is a functional option for configuring an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithEvents attaches an event stream for run observability.
func WithEvents(events *EventStream) OrchestratorOption {
	return func(o *Orchestrator) {
		o.events = events
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger.With("component", "orchestrator")
	}
}

// NewOrchestrator wires an orchestrator from its collaborators.
func NewOrchestrator(
	embedder ai.Embedder,
	reformulator ai.QueryReformulator,
	classifier ai.ContentClassifier,
	search *cache.SearchCache,
	content *cache.ContentCache,
	config *Config,
	opts ...OrchestratorOption,
) *Orchestrator {
	if config == nil {
		config = DefaultOrchestratorConfig()
	}
	o := &Orchestrator{
		embedder:     embedder,
		reformulator: reformulator,
		classifier:   classifier,
		search:       search,
		content:      content,
		config:       config,
		logger:       slog.Default().With("component", "orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes one research query. The returned RunResult always reflects
// everything gathered so far, including on error: a rate-limited third
// attempt still returns the sources validated by the first two.
func (o *Orchestrator) Run(ctx context.Context, query string) (*RunResult, error) {
	if query == "" {
		return nil, core.ErrEmptyQuery
	}

	run := &RunResult{
		RunID:         uuid.New(),
		OriginalQuery: query,
		Status:        core.StatusStarted,
	}
	tracker := NewDomainTracker()
	merged := make(map[string]bool)
	rejected := ""

	var decision *core.TTLDecision
	var lastReq *cache.SearchRequest
	anyFresh := false

	o.emit(run, EventProgress, PhaseQueryInterpretation, "run started", map[string]any{"query": query})

	for {
		enhanced, err := o.reformulator.Reformulate(ctx, query, rejected)
		if err != nil {
			return o.fail(run, tracker, "query reformulation failed", err)
		}
		run.EnhancedQuery = enhanced
		o.emit(run, EventProgress, PhaseQueryInterpretation, "query reformulated",
			map[string]any{"enhanced_query": enhanced, "retry_count": run.RetryCount})

		embedding, err := o.embedder.EmbedText(ctx, enhanced)
		if err != nil {
			return o.fail(run, tracker, "query embedding failed", err)
		}

		req := &cache.SearchRequest{
			Query:          query,
			EnhancedQuery:  enhanced,
			Embedding:      embedding,
			Depth:          o.config.Depth,
			MaxResults:     o.config.MaxResults,
			MinResults:     o.config.MinResults,
			ExcludeDomains: tracker.Exclusions(),
		}
		resp, err := o.search.Search(ctx, req)
		if err != nil {
			if errors.Is(err, websearch.ErrRateLimited) {
				return o.fail(run, tracker, "search provider rate limited", err)
			}
			return o.fail(run, tracker, "search failed", err)
		}
		decision = resp.Decision
		lastReq = req
		o.emit(run, EventProgress, PhaseWebSearch, "search completed",
			map[string]any{"results": len(resp.Results), "from_cache": resp.FromCache})

		validated, fresh, err := o.validate(ctx, run, resp, decision, tracker)
		if err != nil {
			return o.fail(run, tracker, "content validation failed", err)
		}
		anyFresh = anyFresh || fresh

		for _, result := range validated {
			if merged[result.URL] {
				continue
			}
			merged[result.URL] = true
			run.Results = append(run.Results, result)
		}

		if len(run.Results) >= o.config.MinResults {
			run.Status = core.StatusContinue
			break
		}

		if run.RetryCount >= MaxRetries {
			o.logger.Warn("retry budget exhausted, proceeding with partial results",
				"query", query, "results", len(run.Results))
			o.emit(run, EventLog, PhaseResultCheck, "retry budget exhausted", nil)
			run.Status = core.StatusContinue
			break
		}

		run.RetryCount++
		run.Status = core.StatusInsufficientResults
		rejected = enhanced
		o.emit(run, EventProgress, PhaseResultCheck, "insufficient results, retrying",
			map[string]any{"validated": len(run.Results), "retry_count": run.RetryCount})
	}

	// Cache the validated set only when this run produced fresh results;
	// a pure cache hit would just rewrite the entry it was served from.
	if anyFresh && len(run.Results) > 0 && lastReq != nil {
		if err := o.search.StoreValidated(ctx, lastReq, decision, run.Results); err != nil {
			o.logger.Warn("failed to cache validated results", "err", err)
		}
	}

	run.BadDomains = tracker.Reasons()
	o.emit(run, EventResult, PhaseResultCheck, "run finished",
		map[string]any{"status": string(run.Status), "results": len(run.Results), "retry_count": run.RetryCount})
	return run, nil
}

// validate turns search hits into validated results. Cache hits pass through
// untouched; fresh hits are extracted and classified concurrently. Bad
// sources land in the tracker. fresh reports whether any provider-sourced
// result was validated.
func (o *Orchestrator) validate(ctx context.Context, run *RunResult, resp *cache.SearchResponse, decision *core.TTLDecision, tracker *DomainTracker) ([]core.SearchResult, bool, error) {
	var validated []core.SearchResult
	byURL := make(map[string]core.SearchResult)
	var toExtract []string

	for _, result := range resp.Results {
		if result.Score == core.ScoreFromCache {
			// Entered the cache post-validation; no need to re-check.
			validated = append(validated, result)
			continue
		}
		if result.URL == "" {
			continue
		}
		byURL[result.URL] = result
		toExtract = append(toExtract, result.URL)
	}

	if len(toExtract) == 0 {
		return validated, false, nil
	}

	extracted, err := o.content.Extract(ctx, toExtract)
	if err != nil {
		return validated, false, err
	}

	for _, failure := range extracted.Failed {
		reason := failure.Reason
		if reason == "" {
			reason = ReasonExtractionError
		}
		tracker.RecordBad(failure.URL, reason)
	}

	// URLs the provider silently dropped count as failed extractions too.
	answered := make(map[string]bool, len(extracted.Results))
	for _, page := range extracted.Results {
		answered[page.URL] = true
	}
	for _, failure := range extracted.Failed {
		answered[failure.URL] = true
	}
	for _, url := range toExtract {
		if !answered[url] {
			tracker.RecordBad(url, ReasonNoExtractResults)
		}
	}

	pool, err := ants.NewPool(o.config.MaxConcurrentValidations)
	if err != nil {
		return validated, false, err
	}
	defer pool.Release()

	var mu sync.Mutex
	var wg sync.WaitGroup
	anyFresh := false

	for _, page := range extracted.Results {
		result, known := byURL[page.URL]
		if !known {
			tracker.RecordBad(page.URL, ReasonInvalidResponse)
			continue
		}

		// An empty extraction is a failed one; don't spend a classifier
		// call on it.
		if strings.TrimSpace(page.RawContent) == "" {
			tracker.RecordBad(page.URL, ReasonInvalidContent)
			continue
		}

		page := page
		wg.Add(1)
		task := func() {
			defer wg.Done()

			classification, err := o.classifier.Classify(ctx, run.OriginalQuery, result.Title, page.URL, page.RawContent)
			if err != nil {
				o.logger.Warn("classification failed", "url", page.URL, "err", err)
				tracker.RecordBad(page.URL, ReasonExtractionError)
				return
			}
			if !classification.Valid {
				tracker.RecordBad(page.URL, ReasonIrrelevant)
				o.emit(run, EventLog, PhaseContentValidation, "content rejected",
					map[string]any{"url": page.URL})
				return
			}

			result.Content = page.RawContent
			result.Summary = classification.Summary

			// Content enters the cache only now, after validation.
			if err := o.content.Store(ctx, page.URL, page.RawContent, decision.CacheDurationMinutes); err != nil {
				o.logger.Warn("failed to cache content", "url", page.URL, "err", err)
			}

			mu.Lock()
			validated = append(validated, result)
			anyFresh = true
			mu.Unlock()
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			o.logger.Warn("validation task rejected", "url", page.URL, "err", err)
		}
	}
	wg.Wait()

	return validated, anyFresh, nil
}

// fail finalizes a run in error state, keeping partial results.
func (o *Orchestrator) fail(run *RunResult, tracker *DomainTracker, message string, err error) (*RunResult, error) {
	run.Status = core.StatusError
	run.ErrorMessage = message + ": " + err.Error()
	run.BadDomains = tracker.Reasons()
	o.logger.Error(message, "query", run.OriginalQuery, "err", err)
	o.emit(run, EventResult, PhaseResultCheck, message, map[string]any{"error": err.Error()})
	return run, err
}

func (o *Orchestrator) emit(run *RunResult, eventType EventType, phase Phase, message string, data map[string]any) {
	if o.events == nil {
		return
	}
	o.events.Emit(Event{
		RunID:   run.RunID,
		Type:    eventType,
		Phase:   phase,
		Message: message,
		Data:    data,
	})
}
