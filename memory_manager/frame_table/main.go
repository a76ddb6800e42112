package frametable

import (
	"VMSim/types"
	"fmt"
)

/*
Frame table: backing store of the simulation.
A frame is free until the engine loads a page into it; on eviction the engine calls Evict and then
Load on the same index, so the slot is immediately re-occupied.
Indices are always engine-produced, out of range indices are a programming error and panic.
*/

func New(count int) *FrameTable {
	frames := make([]Frame, count)
	for i := range frames {
		frames[i] = Frame{Index: i, LoadStep: -1, LastAccessStep: -1}
	}
	return &FrameTable{frames: frames}
}

func (ft *FrameTable) Len() int {
	return len(ft.frames)
}

// FindFree returns the lowest free frame index.
func (ft *FrameTable) FindFree() (int, bool) {
	if ft.resident == len(ft.frames) {
		return 0, false
	}
	for i := range ft.frames {
		if ft.frames[i].IsFree() {
			return i, true
		}
	}
	return 0, false
}

// Full reports whether every frame holds a page
func (ft *FrameTable) Full() bool {
	return ft.resident == len(ft.frames)
}

// Load places page into frame idx at the given step
func (ft *FrameTable) Load(idx int, page uint64, step int) {
	f := ft.at(idx)
	if !f.Occupied {
		ft.resident++
	}
	f.Page = page
	f.Occupied = true
	f.LoadStep = step
	f.LastAccessStep = step
}

// Touch records an access to the page resident in frame idx
func (ft *FrameTable) Touch(idx int, step int) {
	ft.at(idx).LastAccessStep = step
}

// Evict empties frame idx and returns the page that lived there.
func (ft *FrameTable) Evict(idx int) (uint64, bool) {
	f := ft.at(idx)
	if !f.Occupied {
		return 0, false
	}
	page := f.Page
	f.Page = 0
	f.Occupied = false
	ft.resident--
	return page, true
}

// Frame returns a copy of frame idx
func (ft *FrameTable) Frame(idx int) Frame {
	return *ft.at(idx)
}

// Occupants returns the occupant of every frame, in index order.
func (ft *FrameTable) Occupants() []types.Slot {
	out := make([]types.Slot, len(ft.frames))
	for i, f := range ft.frames {
		if f.Occupied {
			out[i] = types.Holding(f.Page)
		}
	}
	return out
}

// Snapshot copies all frames
func (ft *FrameTable) Snapshot() []Frame {
	out := make([]Frame, len(ft.frames))
	copy(out, ft.frames)
	return out
}

func (ft *FrameTable) Resident() int {
	return ft.resident
}

func (ft *FrameTable) at(idx int) *Frame {
	if idx < 0 || idx >= len(ft.frames) {
		panic(fmt.Sprintf("frame index %d out of range [0, %d)", idx, len(ft.frames)))
	}
	return &ft.frames[idx]
}
