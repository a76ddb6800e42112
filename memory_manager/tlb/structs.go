package tlb

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru"
)

// Entry is one cached translation
type Entry struct {
	Page       uint64
	Frame      int
	LastAccess int
}

// TLB caches page -> frame translations with least-recently-used replacement
// keyed on the step of last access.
type TLB struct {
	capacity int
	entries  *lru.Cache // page -> *Entry, nil when the TLB is disabled
	logger   *slog.Logger
}
