package badger

import (
	"fmt"

	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/storage"
)

// Key prefixes for the cache tables
const (
	embeddingRowPrefix = "embrow"
	decisionRowPrefix  = "ttlrow"
	searchRowPrefix    = "srchrow"
	contentRowPrefix   = "ctntrow"
)

// makeRowKey builds a table key from a prefix and a content-hashed ID.
// Format: prefix:id
func makeRowKey(tablePrefix string, id core.ID) []byte {
	prefix := []byte(tablePrefix + ":")
	return append(prefix, storage.MarshalID(id)...)
}

// makeEmbeddingKey generates a key for an embedding row. The ID is the
// content hash of the embedded text, so identical text always hits the
// same key.
func makeEmbeddingKey(id core.ID) []byte {
	return makeRowKey(embeddingRowPrefix, id)
}

// makeDecisionKey generates a key for a TTL decision row, hashed from the
// decision's query text.
func makeDecisionKey(id core.ID) []byte {
	return makeRowKey(decisionRowPrefix, id)
}

// makeSearchKey generates a key for a cached search entry. The ID is the
// content hash of the entry's conflict key, so an entry with the same
// (query, depth, timeRange) triple overwrites its predecessor.
func makeSearchKey(id core.ID) []byte {
	return makeRowKey(searchRowPrefix, id)
}

// makeContentKey generates a key for a cached page extraction by URL hash.
func makeContentKey(id core.ID) []byte {
	return makeRowKey(contentRowPrefix, id)
}

// searchConflictKey builds the uniqueness key for a search entry.
// Format: query|depth|timeRange
func searchConflictKey(query string, depth core.SearchDepth, timeRange core.TimeRange) string {
	return fmt.Sprintf("%s|%s|%s", query, depth, timeRange.String())
}

// prefixBytes returns the iteration prefix for a table.
func prefixBytes(tablePrefix string) []byte {
	return []byte(tablePrefix + ":")
}
