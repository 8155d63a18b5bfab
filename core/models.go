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


package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for cache rows.
// It is generated with content-based hashing so that identical cache keys
// always map to the same row (upsert-on-conflict semantics).
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// TimeRange is a coarse recency constraint applied to search queries to bias
// results toward recent content. The zero value means no constraint.
type TimeRange string

const (
	TimeRangeNone  TimeRange = ""
	TimeRangeDay   TimeRange = "day"
	TimeRangeWeek  TimeRange = "week"
	TimeRangeMonth TimeRange = "month"
	TimeRangeYear  TimeRange = "year"
)

// ParseTimeRange maps a raw string to a TimeRange.
// Anything outside the known values (including "none") normalizes to TimeRangeNone.
func ParseTimeRange(s string) TimeRange {
	switch TimeRange(s) {
	case TimeRangeDay, TimeRangeWeek, TimeRangeMonth, TimeRangeYear:
		return TimeRange(s)
	default:
		return TimeRangeNone
	}
}

// String returns the canonical name, using "none" for the zero value.
func (tr TimeRange) String() string {
	if tr == TimeRangeNone {
		return "none"
	}
	return string(tr)
}

// SearchDepth selects between the provider's shallow and deep search modes.
type SearchDepth string

const (
	DepthBasic    SearchDepth = "basic"
	DepthAdvanced SearchDepth = "advanced"
)

// MaxCacheDurationMinutes caps every cache TTL at roughly three months.
const MaxCacheDurationMinutes = 131400

// ClampCacheDuration forces a duration into the valid [0, MaxCacheDurationMinutes] range.
func ClampCacheDuration(minutes int) int {
	if minutes < 0 {
		return 0
	}
	if minutes > MaxCacheDurationMinutes {
		return MaxCacheDurationMinutes
	}
	return minutes
}

// TTLDecision is the cache policy for one semantically unique query: how long
// its search results stay valid and how narrow the recency filter should be.
type TTLDecision struct {
	Query                string
	Embedding            []float32
	TimeRange            TimeRange
	CacheDurationMinutes int
	CreatedAt            time.Time
	ExpiresAfterMinutes  int
}

// Normalize clamps the duration into range and folds unknown time ranges to none.
func (d *TTLDecision) Normalize() {
	d.TimeRange = ParseTimeRange(string(d.TimeRange))
	d.CacheDurationMinutes = ClampCacheDuration(d.CacheDurationMinutes)
}

// ScoreFromCache marks a search result that was served from the similarity
// cache. Provider relevance scores are non-negative, so the sentinel is
// unambiguous; results carrying it skip content re-validation.
const ScoreFromCache float64 = -1

// SearchResult is one candidate source for a query.
// Summary is the classifier's markdown digest; Content is the raw extracted
// page text (populated for cache hits so callers can skip re-extraction).
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Score   float64 `json:"score"`
	Content string  `json:"content,omitempty"`
	Summary string  `json:"summary,omitempty"`
}

// SearchEntry is one cached search response, keyed by embedding proximity.
// Its uniqueness key is (Query, SearchDepth, TimeRange); writing an entry with
// the same key overwrites the previous one (refresh semantics).
type SearchEntry struct {
	Query          string         `json:"query"`
	EnhancedQuery  string         `json:"enhanced_query,omitempty"`
	SearchDepth    SearchDepth    `json:"search_depth"`
	TimeRange      TimeRange      `json:"time_range,omitempty"`
	MaxResults     int            `json:"max_results"`
	ExcludeDomains []string       `json:"exclude_domains,omitempty"`
	Embedding      []float32      `json:"embedding"`
	Results        []SearchResult `json:"results"`
	CreatedAt      time.Time      `json:"created_at"`
	TTLMinutes     int            `json:"ttl_minutes"`
}

// ContentEntry is one cached page extraction, unique by URL.
type ContentEntry struct {
	URL        string    `json:"url"`
	RawContent string    `json:"raw_content"`
	CreatedAt  time.Time `json:"created_at"`
	TTLMinutes int       `json:"ttl_minutes"`
}

// Status is the workflow state of one research run.
type Status string

const (
	StatusStarted             Status = "started"
	StatusInsufficientResults Status = "insufficient_results"
	StatusContinue            Status = "continue"
	StatusSuccess             Status = "success"
	StatusError               Status = "error"
)
