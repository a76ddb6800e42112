package simengine

import (
	frametable "VMSim/memory_manager/frame_table"
	pagetable "VMSim/memory_manager/page_table"
	"VMSim/memory_manager/tlb"
	"VMSim/types"
	vmconfig "VMSim/vm_config"
)

/*
Read-only views of engine state. Everything returned here is a copy.
*/

func (e *Engine) Config() vmconfig.AddressConfig {
	return e.config
}

// CurrentStep is the index of the next reference to process
func (e *Engine) CurrentStep() int {
	return e.current
}

func (e *Engine) Len() int {
	return len(e.references)
}

func (e *Engine) Remaining() int {
	return len(e.references) - e.current
}

func (e *Engine) References() []types.Reference {
	out := make([]types.Reference, len(e.references))
	copy(out, e.references)
	return out
}

// Occupants returns the page held by every frame
func (e *Engine) Occupants() []types.Slot {
	return e.frames.Occupants()
}

func (e *Engine) Frames() []frametable.Frame {
	return e.frames.Snapshot()
}

func (e *Engine) PageTable() map[uint64]pagetable.Entry {
	return e.pageTable.Snapshot()
}

func (e *Engine) TLBEntries() []tlb.Entry {
	return e.tlb.Snapshot()
}

// MemoryStats returns current occupancy statistics
func (e *Engine) MemoryStats() MemoryStats {
	stats := MemoryStats{
		Frames:           e.frames.Len(),
		ResidentPages:    e.frames.Resident(),
		FreeFrames:       e.frames.Len() - e.frames.Resident(),
		PageTableEntries: e.pageTable.Len(),
		TLBEntries:       e.tlb.Len(),
		TLBCapacity:      e.tlb.Capacity(),
	}

	for _, s := range e.frames.Occupants() {
		if !s.Occupied {
			continue
		}
		if pte, ok := e.pageTable.Get(s.Page); ok && pte.Dirty {
			stats.DirtyPages++
		}
	}

	return stats
}
