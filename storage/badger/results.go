package badger

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/storage"
)

// ResultRepository implements storage.ResultRepository for BadgerDB.
type ResultRepository struct {
	backend *Backend
}

var _ storage.ResultRepository = (*ResultRepository)(nil)

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(backend *Backend) *ResultRepository {
	return &ResultRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *ResultRepository) Close() error {
	return nil
}

// PutEntry upserts a search entry under its (query, depth, timeRange) key.
func (r *ResultRepository) PutEntry(ctx context.Context, entry *core.SearchEntry) error {
	if entry == nil {
		return storage.ErrNilEntry
	}
	if entry.Query == "" {
		return core.ErrEmptyQuery
	}
	if len(entry.Embedding) == 0 {
		return core.ErrEmptyEmbedding
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		conflict := searchConflictKey(entry.Query, entry.SearchDepth, entry.TimeRange)
		key := makeSearchKey(core.IDFromContent(conflict))
		if err := writeJSON(tx, key, entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// scoredEntry pairs a matching entry with its similarity for sorting.
type scoredEntry struct {
	entry      *core.SearchEntry
	similarity float64
}

// NearestResults collects results from non-expired entries matching the
// filter. Entries are ranked by similarity descending, ties broken by the
// larger MaxResults so a cached superset wins. Results from excluded domains
// are dropped and the remainder is deduplicated by URL.
func (r *ResultRepository) NearestResults(ctx context.Context, vector []float32, filter storage.ResultFilter) ([]core.SearchResult, error) {
	if len(vector) == 0 {
		return nil, core.ErrEmptyEmbedding
	}

	now := time.Now().UTC()
	var matches []scoredEntry

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := prefixBytes(searchRowPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			var entry core.SearchEntry
			if err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}
			if entry.SearchDepth != filter.SearchDepth || entry.TimeRange != filter.TimeRange {
				continue
			}
			if !storage.ValidAt(entry.CreatedAt, entry.TTLMinutes, now) {
				continue
			}
			sim := storage.CosineSimilarity(vector, entry.Embedding)
			if sim < filter.MinSimilarity {
				continue
			}
			e := entry
			matches = append(matches, scoredEntry{entry: &e, similarity: sim})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].similarity != matches[j].similarity {
			return matches[i].similarity > matches[j].similarity
		}
		return matches[i].entry.MaxResults > matches[j].entry.MaxResults
	})

	excluded := make(map[string]bool, len(filter.ExcludeDomains))
	for _, domain := range filter.ExcludeDomains {
		excluded[strings.ToLower(domain)] = true
	}

	var results []core.SearchResult
	seen := make(map[string]bool)
	for _, m := range matches {
		for _, result := range m.entry.Results {
			if seen[result.URL] {
				continue
			}
			if excluded[core.DomainOf(result.URL)] {
				continue
			}
			seen[result.URL] = true
			results = append(results, result)
			if filter.Limit > 0 && len(results) >= filter.Limit {
				return results, nil
			}
		}
	}
	return results, nil
}
