package pagetable

import (
	"maps"
	"slices"
)

// Entry is the page table entry of one virtual page.
// FrameIndex is meaningful only while Present is set.
type Entry struct {
	Page       uint64
	FrameIndex int
	Present    bool
	Referenced bool
	Dirty      bool
}

// PageTable maps virtual page numbers to entries, created lazily on first reference.
type PageTable struct {
	entries map[uint64]*Entry
}

func New() *PageTable {
	return &PageTable{entries: make(map[uint64]*Entry)}
}

// GetOrCreate returns the live entry of page, inserting a cleared one if absent.
func (pt *PageTable) GetOrCreate(page uint64) *Entry {
	if e, ok := pt.entries[page]; ok {
		return e
	}
	e := &Entry{Page: page, FrameIndex: -1}
	pt.entries[page] = e
	return e
}

// Get returns the live entry of page without creating it.
func (pt *PageTable) Get(page uint64) (*Entry, bool) {
	e, ok := pt.entries[page]
	return e, ok
}

// Clear marks page as no longer resident: no frame, referenced and dirty reset.
func (pt *PageTable) Clear(page uint64) {
	e, ok := pt.entries[page]
	if !ok {
		return
	}
	e.Present = false
	e.FrameIndex = -1
	e.Referenced = false
	e.Dirty = false
}

func (pt *PageTable) Len() int {
	return len(pt.entries)
}

// Snapshot copies every entry; changing the result never touches the table.
func (pt *PageTable) Snapshot() map[uint64]Entry {
	out := make(map[uint64]Entry, len(pt.entries))
	for page, e := range pt.entries {
		out[page] = *e
	}
	return out
}

// Pages returns the known page numbers in ascending order
func (pt *PageTable) Pages() []uint64 {
	return slices.Sorted(maps.Keys(pt.entries))
}
