package badger

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/vspruyt/infogen/core"
)

// embeddingRow stores one text→vector mapping. The original text is kept so
// a hash collision can be detected instead of silently serving the wrong
// vector.
type embeddingRow struct {
	Text      string    `json:"text"`
	Vector    []float32 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
}

// decisionRow is the persisted form of core.TTLDecision.
type decisionRow struct {
	Query                string         `json:"query"`
	Embedding            []float32      `json:"embedding"`
	TimeRange            core.TimeRange `json:"time_range,omitempty"`
	CacheDurationMinutes int            `json:"cache_duration_minutes"`
	CreatedAt            time.Time      `json:"created_at"`
	ExpiresAfterMinutes  int            `json:"expires_after_minutes"`
}

func (r *decisionRow) toDecision() *core.TTLDecision {
	return &core.TTLDecision{
		Query:                r.Query,
		Embedding:            r.Embedding,
		TimeRange:            r.TimeRange,
		CacheDurationMinutes: r.CacheDurationMinutes,
		CreatedAt:            r.CreatedAt,
		ExpiresAfterMinutes:  r.ExpiresAfterMinutes,
	}
}

func decisionRowFrom(d *core.TTLDecision) *decisionRow {
	return &decisionRow{
		Query:                d.Query,
		Embedding:            d.Embedding,
		TimeRange:            d.TimeRange,
		CacheDurationMinutes: d.CacheDurationMinutes,
		CreatedAt:            d.CreatedAt,
		ExpiresAfterMinutes:  d.ExpiresAfterMinutes,
	}
}

// readJSON reads the value at key into dest. Returns false when the key
// does not exist.
func readJSON(tx *badger.Txn, key []byte, dest any) (bool, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return false, nil
		}
		return false, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, dest)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// writeJSON marshals src and stores it at key.
func writeJSON(tx *badger.Txn, key []byte, src any) error {
	value, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return tx.Set(key, value)
}
