package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/storage"
)

// EmbeddingRepository implements storage.EmbeddingRepository for BadgerDB.
type EmbeddingRepository struct {
	backend *Backend
}

var _ storage.EmbeddingRepository = (*EmbeddingRepository)(nil)

// NewEmbeddingRepository creates a new EmbeddingRepository.
func NewEmbeddingRepository(backend *Backend) *EmbeddingRepository {
	return &EmbeddingRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *EmbeddingRepository) Close() error {
	return nil
}

// GetEmbedding retrieves the cached vector for the exact text.
func (r *EmbeddingRepository) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, core.ErrEmptyQuery
	}

	var vector []float32
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEmbeddingKey(core.IDFromContent(text))
		var row embeddingRow
		found, err := readJSON(tx, key, &row)
		if err != nil {
			return err
		}
		// Hash collisions land on the same key; treat a text mismatch as a miss.
		if !found || row.Text != text {
			return storage.ErrNotFound
		}
		vector = row.Vector
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// PutEmbedding stores the vector for the text, overwriting any prior value.
func (r *EmbeddingRepository) PutEmbedding(ctx context.Context, text string, vector []float32) error {
	if text == "" {
		return core.ErrEmptyQuery
	}
	if len(vector) == 0 {
		return core.ErrEmptyEmbedding
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEmbeddingKey(core.IDFromContent(text))
		row := embeddingRow{
			Text:      text,
			Vector:    vector,
			CreatedAt: time.Now().UTC(),
		}
		if err := writeJSON(tx, key, &row); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
