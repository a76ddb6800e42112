package simengine

import (
	frametable "VMSim/memory_manager/frame_table"
	pagetable "VMSim/memory_manager/page_table"
	"VMSim/memory_manager/tlb"
	replacement "VMSim/replacement_policies"
	"VMSim/types"
	vmconfig "VMSim/vm_config"
	"log/slog"
)

// ############################################# ENGINE #############################################

// Engine runs one reference stream through TLB, page table and frame table.
// It is single-writer: one goroutine drives Step, and callers get copies only.
type Engine struct {
	config     vmconfig.AddressConfig
	references []types.Reference
	refPages   []uint64 // decoded page of every reference, handed to the policy

	policy    replacement.Policy
	frames    *frametable.FrameTable
	pageTable *pagetable.PageTable
	tlb       *tlb.TLB

	current int // index of the next reference to process
	logger  *slog.Logger
}

// ############################################# STEP OUTCOME #############################################

// StepOutcome describes one processed access. Frames is a private copy taken after every
// mutation of the step.
type StepOutcome struct {
	StepIndex      int
	VirtualAddress uint64
	Operation      types.Operation
	Page           uint64
	Offset         uint64

	TLBHit bool
	Hit    bool
	Fault  bool

	FrameIndex      int
	PhysicalAddress uint64

	VictimFrame int // -1 when no frame was reclaimed
	EvictedPage uint64
	Evicted     bool
	WriteBack   bool // evicted page was dirty

	Frames []types.Slot
}

// ############################################# MEMORY STATS #############################################

// MemoryStats is a point in time view of memory occupancy
type MemoryStats struct {
	Frames           int
	ResidentPages    int
	FreeFrames       int
	DirtyPages       int
	PageTableEntries int
	TLBEntries       int
	TLBCapacity      int
}
