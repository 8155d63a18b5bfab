package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/storage"
)

// ContentRepository implements storage.ContentRepository for BadgerDB.
type ContentRepository struct {
	backend *Backend
}

var _ storage.ContentRepository = (*ContentRepository)(nil)

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(backend *Backend) *ContentRepository {
	return &ContentRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *ContentRepository) Close() error {
	return nil
}

// GetContent retrieves the cached, non-expired content for the URL.
// An expired row reads as a miss; it stays in storage until overwritten.
func (r *ContentRepository) GetContent(ctx context.Context, url string) (*core.ContentEntry, error) {
	if url == "" {
		return nil, core.ErrEmptyURL
	}

	now := time.Now().UTC()
	var entry *core.ContentEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeContentKey(core.IDFromContent(url))
		var row core.ContentEntry
		found, err := readJSON(tx, key, &row)
		if err != nil {
			return err
		}
		if !found || row.URL != url {
			return storage.ErrNotFound
		}
		if !storage.ValidAt(row.CreatedAt, row.TTLMinutes, now) {
			return storage.ErrNotFound
		}
		entry = &row
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// PutContent upserts the content entry for its URL.
func (r *ContentRepository) PutContent(ctx context.Context, entry *core.ContentEntry) error {
	if entry == nil {
		return storage.ErrNilEntry
	}
	if entry.URL == "" {
		return core.ErrEmptyURL
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeContentKey(core.IDFromContent(entry.URL))
		if err := writeJSON(tx, key, entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
