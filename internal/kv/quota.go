// ABOUTME: Size-limited Store wrapper.
// ABOUTME: Rejects writes whose key and value exceed the configured byte limit.

package kv

import "fmt"

type quota struct {
	Store
	limit int
}

// WithQuota wraps s so that Set fails with ErrQuotaExceeded when
// len(key)+len(value) exceeds limit. A non-positive limit disables the check.
func WithQuota(s Store, limit int) Store {
	if limit <= 0 {
		return s
	}
	return &quota{Store: s, limit: limit}
}

func (q *quota) Set(key string, value []byte) error {
	if size := len(key) + len(value); size > q.limit {
		return fmt.Errorf("%w: %d bytes over limit of %d", ErrQuotaExceeded, size-q.limit, q.limit)
	}
	return q.Store.Set(key, value)
}
