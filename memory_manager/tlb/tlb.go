package tlb

import (
	"VMSim/types"
	"fmt"
	"log/slog"
	"slices"

	lru "github.com/hashicorp/golang-lru"
)

/*
Translation cache consulted before the page table.
The lru.Cache is used as an ordered container only: victims are chosen here by the smallest
LastAccess step, and the cache's Keys() order (oldest to newest) decides ties, so its own
size-based eviction never fires.
Capacity 0 disables the TLB: lookups always miss and inserts are dropped.
*/

func New(capacity int) (*TLB, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: TLB capacity must not be negative, got %d", types.ErrInvalidConfiguration, capacity)
	}

	t := &TLB{
		capacity: capacity,
		logger:   slog.Default().With("component", "tlb"),
	}
	if capacity == 0 {
		return t, nil
	}

	cache, err := lru.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLB storage: %w", err)
	}
	t.entries = cache
	return t, nil
}

func (t *TLB) SetLogger(l *slog.Logger) {
	t.logger = l.With("component", "tlb")
}

func (t *TLB) Capacity() int {
	return t.capacity
}

func (t *TLB) Enabled() bool {
	return t.entries != nil
}

func (t *TLB) Len() int {
	if t.entries == nil {
		return 0
	}
	return t.entries.Len()
}

// Lookup returns the cached frame of page. A hit refreshes the entry's last access step;
// the cached frame itself is never changed here.
func (t *TLB) Lookup(page uint64, step int) (int, bool) {
	if t.entries == nil {
		return 0, false
	}
	v, ok := t.entries.Get(page)
	if !ok {
		return 0, false
	}
	e := v.(*Entry)
	e.LastAccess = step
	return e.Frame, true
}

// InsertOrUpdate caches page -> frame, evicting the least recently accessed entry when full.
func (t *TLB) InsertOrUpdate(page uint64, frame int, step int) {
	if t.entries == nil {
		return
	}

	if v, ok := t.entries.Get(page); ok {
		e := v.(*Entry)
		e.Frame = frame
		e.LastAccess = step
		return
	}

	if t.entries.Len() >= t.capacity {
		victim, ok := t.leastRecent()
		if ok {
			t.entries.Remove(victim.Page)
			t.logger.Debug("TLB replace", "evicted_page", victim.Page, "evicted_frame", victim.Frame, "page", page)
		}
	}

	t.entries.Add(page, &Entry{Page: page, Frame: frame, LastAccess: step})
}

// Invalidate drops the translation of page, if cached.
func (t *TLB) Invalidate(page uint64) {
	if t.entries == nil {
		return
	}
	t.entries.Remove(page)
}

// Contains reports whether page is cached without touching recency
func (t *TLB) Contains(page uint64) bool {
	if t.entries == nil {
		return false
	}
	return t.entries.Contains(page)
}

// Snapshot copies the cached entries, ordered by page number.
func (t *TLB) Snapshot() []Entry {
	if t.entries == nil {
		return nil
	}
	out := make([]Entry, 0, t.entries.Len())
	for _, k := range t.entries.Keys() {
		if v, ok := t.entries.Peek(k); ok {
			out = append(out, *v.(*Entry))
		}
	}
	slices.SortFunc(out, func(a, b Entry) int {
		switch {
		case a.Page < b.Page:
			return -1
		case a.Page > b.Page:
			return 1
		}
		return 0
	})
	return out
}

// leastRecent scans oldest to newest and keeps the first entry with the smallest step
func (t *TLB) leastRecent() (*Entry, bool) {
	var victim *Entry
	for _, k := range t.entries.Keys() {
		v, ok := t.entries.Peek(k)
		if !ok {
			continue
		}
		e := v.(*Entry)
		if victim == nil || e.LastAccess < victim.LastAccess {
			victim = e
		}
	}
	return victim, victim != nil
}
