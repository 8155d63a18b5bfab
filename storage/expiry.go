package storage

import "time"

// ValidAt reports whether a row written at createdAt with the given TTL is
// still valid at the instant now. Validity is strict: a row whose expiry
// instant equals now is already stale. A non-positive TTL means the row was
// never valid.
//
// Expiry is enforced only at read time (lazy expiration); stale rows remain
// in storage until a future upsert with the same key overwrites them.
func ValidAt(createdAt time.Time, ttlMinutes int, now time.Time) bool {
	if ttlMinutes <= 0 {
		return false
	}
	return now.Before(createdAt.Add(time.Duration(ttlMinutes) * time.Minute))
}
