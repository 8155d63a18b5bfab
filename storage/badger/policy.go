package badger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/storage"
)

// PolicyRepository implements storage.PolicyRepository for BadgerDB.
type PolicyRepository struct {
	backend *Backend
}

var _ storage.PolicyRepository = (*PolicyRepository)(nil)

// NewPolicyRepository creates a new PolicyRepository.
func NewPolicyRepository(backend *Backend) *PolicyRepository {
	return &PolicyRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *PolicyRepository) Close() error {
	return nil
}

// NearestDecision scans all stored decisions and returns the most similar
// non-expired one, provided similarity >= minSimilarity.
func (r *PolicyRepository) NearestDecision(ctx context.Context, vector []float32, minSimilarity float64) (*core.TTLDecision, error) {
	if len(vector) == 0 {
		return nil, core.ErrEmptyEmbedding
	}

	now := time.Now().UTC()
	var best *core.TTLDecision
	bestSim := minSimilarity
	found := false

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := prefixBytes(decisionRowPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			var row decisionRow
			if err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &row)
			}); err != nil {
				return err
			}
			if !storage.ValidAt(row.CreatedAt, row.ExpiresAfterMinutes, now) {
				continue
			}
			sim := storage.CosineSimilarity(vector, row.Embedding)
			// Threshold is inclusive; once a candidate is held, only a strictly
			// better similarity replaces it.
			if sim < bestSim || (found && sim == bestSim) {
				continue
			}
			best = row.toDecision()
			bestSim = sim
			found = true
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, storage.ErrNotFound
	}
	return best, nil
}

// PutDecision upserts a decision keyed by the hash of its query text.
func (r *PolicyRepository) PutDecision(ctx context.Context, decision *core.TTLDecision) error {
	if decision == nil {
		return storage.ErrNilEntry
	}
	if err := core.ValidateDecision(decision); err != nil {
		return err
	}

	row := decisionRowFrom(decision)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDecisionKey(core.IDFromContent(decision.Query))
		if err := writeJSON(tx, key, row); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
