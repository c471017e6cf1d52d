package internal

import (
	"github.com/patrickmn/go-cache"
)

// Tracker is the per-run memory of which fingerprints have already been
// placed and where. It is append-only: the first recorded path for a
// fingerprint wins and is never updated or deleted. Nothing is persisted;
// each invocation starts from an empty tracker.
type Tracker struct {
	seen *cache.Cache
}

func NewTracker() *Tracker {
	return &Tracker{seen: cache.New(cache.NoExpiration, 0)}
}

// Observe returns the destination path recorded at first occurrence of
// fingerprint, or ("", false) if this fingerprint has not been seen.
func (t *Tracker) Observe(fingerprint string) (string, bool) {
	v, found := t.seen.Get(fingerprint)
	if !found {
		return "", false
	}
	return v.(string), true
}

// Record stores the destination path for a fingerprint's first occurrence.
// Recording an already-seen fingerprint is a no-op.
func (t *Tracker) Record(fingerprint, path string) {
	t.seen.Add(fingerprint, path, cache.NoExpiration)
}

// Len returns the number of distinct fingerprints recorded.
func (t *Tracker) Len() int {
	return t.seen.ItemCount()
}
