package controller

import (
	frametable "VMSim/memory_manager/frame_table"
	pagetable "VMSim/memory_manager/page_table"
	"VMSim/memory_manager/tlb"
	replacement "VMSim/replacement_policies"
	simengine "VMSim/simulation_engine"
	"VMSim/statistics"
	"VMSim/types"
	vmconfig "VMSim/vm_config"
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

/*
Controller owns one engine and one statistics tracker for a configured run.
Reset throws both away and builds new ones from the stored inputs, including a new policy
instance, so FIFO queue state never leaks between runs.
*/

// WriteRecord is the last write observed on a page
type WriteRecord struct {
	Page            uint64
	VirtualAddress  uint64
	PhysicalAddress uint64
	Step            int
}

type Controller struct {
	config     vmconfig.AddressConfig
	references []types.Reference
	kind       replacement.Kind
	tlbEntries int

	engine *simengine.Engine
	stats  *statistics.Tracker
	writes map[uint64]WriteRecord
	logger *slog.Logger
}

func New(cfg vmconfig.AddressConfig, references []types.Reference, kind replacement.Kind, tlbEntries int) (*Controller, error) {
	c := &Controller{
		config:     cfg,
		references: slices.Clone(references),
		kind:       kind,
		tlbEntries: tlbEntries,
		stats:      statistics.New(),
		logger:     slog.Default(),
	}
	if err := c.build(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) build() error {
	policy, err := replacement.New(c.kind)
	if err != nil {
		return err
	}
	engine, err := simengine.New(c.config, c.references, policy, c.tlbEntries)
	if err != nil {
		return fmt.Errorf("failed to build %v engine: %w", c.kind, err)
	}
	engine.SetLogger(c.logger)

	c.engine = engine
	c.writes = make(map[uint64]WriteRecord)
	return nil
}

func (c *Controller) SetLogger(l *slog.Logger) {
	c.logger = l
	c.engine.SetLogger(l)
}

// Step advances the engine by one reference and records the outcome.
func (c *Controller) Step() (simengine.StepOutcome, error) {
	out, err := c.engine.Step()
	if err != nil {
		return simengine.StepOutcome{}, err
	}

	c.stats.Record(out)
	if out.Operation.IsWrite() {
		c.writes[out.Page] = WriteRecord{
			Page:            out.Page,
			VirtualAddress:  out.VirtualAddress,
			PhysicalAddress: out.PhysicalAddress,
			Step:            out.StepIndex,
		}
	}
	return out, nil
}

// RunAll steps until the stream is exhausted and returns the remaining outcomes in order.
func (c *Controller) RunAll() ([]simengine.StepOutcome, error) {
	outs := make([]simengine.StepOutcome, 0, c.engine.Remaining())
	for !c.engine.HasFinished() {
		out, err := c.Step()
		if err != nil {
			return outs, err
		}
		outs = append(outs, out)
	}

	c.logger.Info("simulation finished", "policy", c.kind.String(), "accesses", c.stats.TotalAccesses(),
		"faults", c.stats.Faults(), "tlb_hits", c.stats.TLBHits())
	return outs, nil
}

// Reset restarts the run from the first reference with zeroed statistics.
func (c *Controller) Reset() error {
	if err := c.build(); err != nil {
		return err
	}
	c.stats.Reset()
	return nil
}

func (c *Controller) IsFinished() bool {
	return c.engine.HasFinished()
}

// The accessors below forward to the engine's snapshot getters; the engine itself is never
// handed out, so every step goes through Step and is recorded.

func (c *Controller) CurrentStep() int {
	return c.engine.CurrentStep()
}

func (c *Controller) Len() int {
	return c.engine.Len()
}

func (c *Controller) Occupants() []types.Slot {
	return c.engine.Occupants()
}

func (c *Controller) Frames() []frametable.Frame {
	return c.engine.Frames()
}

func (c *Controller) PageTable() map[uint64]pagetable.Entry {
	return c.engine.PageTable()
}

func (c *Controller) TLBEntries() []tlb.Entry {
	return c.engine.TLBEntries()
}

func (c *Controller) MemoryStats() simengine.MemoryStats {
	return c.engine.MemoryStats()
}

func (c *Controller) Stats() statistics.Summary {
	return c.stats.Summary()
}

func (c *Controller) Kind() replacement.Kind {
	return c.kind
}

func (c *Controller) Config() vmconfig.AddressConfig {
	return c.config
}

// WriteLog returns the latest write of every written page, ordered by page.
func (c *Controller) WriteLog() []WriteRecord {
	out := make([]WriteRecord, 0, len(c.writes))
	for _, page := range slices.Sorted(maps.Keys(c.writes)) {
		out = append(out, c.writes[page])
	}
	return out
}
