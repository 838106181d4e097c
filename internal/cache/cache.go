// Package cache memoizes fully rendered responses keyed by request
// parameters.
package cache

import (
	"fmt"
	"time"
)

// ListKeyPrefix namespaces cached list pages so writes can invalidate
// them wholesale.
const ListKeyPrefix = "books:list:"

// ResponseCache stores rendered response bodies under string keys with
// an optional expiry. A zero ttl means the entry never expires.
type ResponseCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Invalidate(prefix string)
}

// ListKey builds the cache key for one window of the catalog list.
func ListKey(page int, orderBy, filter string) string {
	return fmt.Sprintf("%s%d:%s:%s", ListKeyPrefix, page, orderBy, filter)
}
