package tlb

import (
	"VMSim/types"
	"errors"
	"testing"
)

func newTLB(t *testing.T, capacity int) *TLB {
	t.Helper()
	tl, err := New(capacity)
	if err != nil {
		t.Fatalf("failed to create TLB: %v", err)
	}
	return tl
}

func TestInsertAndLookup(t *testing.T) {
	tl := newTLB(t, 3)

	tl.InsertOrUpdate(1, 10, 1)

	frame, ok := tl.Lookup(1, 2)
	if !ok || frame != 10 {
		t.Errorf("expected hit on frame 10, got %d (ok=%v)", frame, ok)
	}
	if _, ok := tl.Lookup(2, 2); ok {
		t.Error("expected miss for page 2")
	}
}

func TestLRUReplacement(t *testing.T) {
	tl := newTLB(t, 3)
	tl.InsertOrUpdate(1, 10, 1)
	tl.InsertOrUpdate(2, 20, 2)
	tl.InsertOrUpdate(3, 30, 3)

	tl.InsertOrUpdate(4, 40, 4)

	if tl.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", tl.Len())
	}
	if _, ok := tl.Lookup(1, 5); ok {
		t.Error("page 1 should have been evicted")
	}
	for page, want := range map[uint64]int{2: 20, 3: 30, 4: 40} {
		if frame, ok := tl.Lookup(page, 5); !ok || frame != want {
			t.Errorf("page %d: expected frame %d, got %d (ok=%v)", page, want, frame, ok)
		}
	}
}

func TestUpdateExisting(t *testing.T) {
	tl := newTLB(t, 3)
	tl.InsertOrUpdate(1, 10, 1)
	tl.InsertOrUpdate(1, 99, 2)

	if frame, _ := tl.Lookup(1, 3); frame != 99 {
		t.Errorf("expected remapped frame 99, got %d", frame)
	}
	if tl.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", tl.Len())
	}
}

func TestLookupUpdatesAccessTime(t *testing.T) {
	tl := newTLB(t, 3)
	tl.InsertOrUpdate(1, 10, 1)
	tl.InsertOrUpdate(2, 20, 2)
	tl.InsertOrUpdate(3, 30, 3)

	tl.Lookup(1, 4)
	tl.InsertOrUpdate(4, 40, 5)

	if !tl.Contains(1) {
		t.Error("page 1 was used at step 4 and must stay")
	}
	if tl.Contains(2) {
		t.Error("page 2 has the smallest step and must be evicted")
	}
	if !tl.Contains(3) || !tl.Contains(4) {
		t.Error("pages 3 and 4 must stay")
	}
}

func TestVictimIsSmallestStepNotOldestInsert(t *testing.T) {
	tl := newTLB(t, 2)
	tl.InsertOrUpdate(1, 10, 8)
	tl.InsertOrUpdate(2, 20, 3)

	tl.InsertOrUpdate(3, 30, 9)

	if tl.Contains(2) {
		t.Error("page 2 carries the smallest step and must be the victim")
	}
	if !tl.Contains(1) {
		t.Error("page 1 must stay")
	}
}

func TestTieBreakIsDeterministic(t *testing.T) {
	tl := newTLB(t, 2)
	tl.InsertOrUpdate(5, 50, 1)
	tl.InsertOrUpdate(6, 60, 1)

	tl.InsertOrUpdate(7, 70, 2)

	if tl.Contains(5) || !tl.Contains(6) {
		t.Error("on equal steps the first entry in iteration order must be evicted")
	}
}

func TestRepeatedLookupIsIdempotent(t *testing.T) {
	tl := newTLB(t, 2)
	tl.InsertOrUpdate(1, 10, 1)

	for step := 2; step < 6; step++ {
		frame, ok := tl.Lookup(1, step)
		if !ok || frame != 10 {
			t.Fatalf("step %d: expected frame 10, got %d (ok=%v)", step, frame, ok)
		}
	}

	snap := tl.Snapshot()
	if len(snap) != 1 || snap[0].Frame != 10 || snap[0].LastAccess != 5 {
		t.Errorf("unexpected entry after lookups: %+v", snap)
	}
}

func TestCapacityNeverExceeded(t *testing.T) {
	tl := newTLB(t, 4)
	for i := 0; i < 50; i++ {
		tl.InsertOrUpdate(uint64(i%9), i, i)
		if tl.Len() > 4 {
			t.Fatalf("TLB holds %d entries, capacity 4", tl.Len())
		}
	}
}

func TestInvalidate(t *testing.T) {
	tl := newTLB(t, 2)
	tl.InsertOrUpdate(1, 10, 1)

	tl.Invalidate(1)
	tl.Invalidate(42)

	if _, ok := tl.Lookup(1, 2); ok {
		t.Error("invalidated page must miss")
	}
	if tl.Len() != 0 {
		t.Errorf("expected empty TLB, got %d", tl.Len())
	}
}

func TestSnapshotSortedCopy(t *testing.T) {
	tl := newTLB(t, 3)
	tl.InsertOrUpdate(9, 1, 1)
	tl.InsertOrUpdate(2, 0, 2)

	snap := tl.Snapshot()
	if len(snap) != 2 || snap[0].Page != 2 || snap[1].Page != 9 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	snap[0].Frame = 77
	if frame, _ := tl.Lookup(2, 3); frame != 0 {
		t.Error("mutating the snapshot changed the TLB")
	}
}

func TestDisabledTLB(t *testing.T) {
	tl := newTLB(t, 0)

	tl.InsertOrUpdate(1, 10, 1)
	if _, ok := tl.Lookup(1, 2); ok {
		t.Error("disabled TLB must always miss")
	}
	if tl.Enabled() || tl.Len() != 0 || tl.Snapshot() != nil {
		t.Error("disabled TLB must stay empty")
	}
}

func TestNegativeCapacity(t *testing.T) {
	_, err := New(-1)
	if !errors.Is(err, types.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}
