package simengine

import (
	frametable "VMSim/memory_manager/frame_table"
	pagetable "VMSim/memory_manager/page_table"
	"VMSim/memory_manager/tlb"
	replacement "VMSim/replacement_policies"
	"VMSim/types"
	vmconfig "VMSim/vm_config"
	"fmt"
	"log/slog"
)

/*
Main file of the simulation engine.
Every Step processes exactly one reference:

	decode -> TLB lookup -> (miss) page table -> (fault) free frame or policy victim -> load

A TLB hit and a page table hit both count as a hit; only a page that is not present faults.
On eviction the victim's page table entry is cleared and its TLB translation dropped in the same
step, so no stale translation survives. A dirty victim sets WriteBack on the outcome; there is
no backing store behind it.
*/

// New builds an engine for one run. Every reference is validated against cfg up front.
func New(cfg vmconfig.AddressConfig, references []types.Reference, policy replacement.Policy, tlbEntries int) (*Engine, error) {
	if policy == nil {
		return nil, fmt.Errorf("%w: replacement policy is required", types.ErrInvalidConfiguration)
	}
	if cfg.FrameCount() == 0 {
		return nil, fmt.Errorf("%w: address config was not built with vmconfig.New", types.ErrInvalidConfiguration)
	}

	refs := make([]types.Reference, len(references))
	copy(refs, references)

	refPages := make([]uint64, len(refs))
	for i, ref := range refs {
		if !ref.Op.Valid() {
			return nil, fmt.Errorf("%w: reference %d has operation %v", types.ErrMalformedReference, i, ref.Op)
		}
		if !cfg.Contains(ref.Address) {
			return nil, fmt.Errorf("%w: reference %d address %d outside virtual space of %d bytes",
				types.ErrMalformedReference, i, ref.Address, cfg.VirtualSize())
		}
		refPages[i], _ = cfg.Decode(ref.Address)
	}

	translations, err := tlb.New(tlbEntries)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:     cfg,
		references: refs,
		refPages:   refPages,
		policy:     policy,
		frames:     frametable.New(cfg.FrameCount()),
		pageTable:  pagetable.New(),
		tlb:        translations,
		logger:     slog.Default().With("component", "engine"),
	}, nil
}

// SetLogger replaces the default slog logger
func (e *Engine) SetLogger(l *slog.Logger) {
	e.logger = l.With("component", "engine")
	e.tlb.SetLogger(l)
}

func (e *Engine) HasFinished() bool {
	return e.current >= len(e.references)
}

// Step processes the next reference. It fails with ErrSimulationExhausted once the stream is done.
func (e *Engine) Step() (StepOutcome, error) {
	if e.HasFinished() {
		return StepOutcome{}, fmt.Errorf("%w: all %d references processed", types.ErrSimulationExhausted, len(e.references))
	}

	step := e.current
	ref := e.references[step]
	page, offset := e.config.Decode(ref.Address)

	out := StepOutcome{
		StepIndex:      step,
		VirtualAddress: ref.Address,
		Operation:      ref.Op,
		Page:           page,
		Offset:         offset,
		VictimFrame:    -1,
	}

	if frame, ok := e.tlb.Lookup(page, step); ok {
		e.logger.Debug("TLB HIT", "step", step, "page", page, "frame", frame)
		e.access(frame, e.pageTable.GetOrCreate(page), ref.Op, step)
		out.TLBHit = true
		out.Hit = true
		out.FrameIndex = frame
	} else {
		e.logger.Debug("TLB MISS", "step", step, "page", page)
		pte := e.pageTable.GetOrCreate(page)

		if pte.Present {
			e.logger.Debug("PAGE HIT", "step", step, "page", page, "frame", pte.FrameIndex)
			e.access(pte.FrameIndex, pte, ref.Op, step)
			e.tlb.InsertOrUpdate(page, pte.FrameIndex, step)
			out.Hit = true
			out.FrameIndex = pte.FrameIndex
		} else {
			if err := e.handleFault(&out, pte, ref.Op, step); err != nil {
				return StepOutcome{}, err
			}
			out.Fault = true
		}
	}

	out.PhysicalAddress = e.config.PhysicalAddress(out.FrameIndex, offset)
	out.Frames = e.frames.Occupants()

	e.current++
	return out, nil
}

// access records a hit on a resident page
func (e *Engine) access(frame int, pte *pagetable.Entry, op types.Operation, step int) {
	e.frames.Touch(frame, step)
	pte.Referenced = true
	if op.IsWrite() {
		pte.Dirty = true
	}
}

// handleFault finds a frame for pte's page, evicting through the policy when memory is full,
// and loads the page into it.
func (e *Engine) handleFault(out *StepOutcome, pte *pagetable.Entry, op types.Operation, step int) error {
	page := pte.Page

	frame, free := e.frames.FindFree()
	if free {
		e.logger.Debug("PAGE FAULT", "step", step, "page", page, "free_frame", frame)
	} else {
		frame = e.policy.SelectVictim(e.frames.Occupants(), e.refPages, step)
		if frame < 0 || frame >= e.frames.Len() {
			return fmt.Errorf("replacement policy chose frame %d, have %d frames", frame, e.frames.Len())
		}
		out.VictimFrame = frame

		if evicted, ok := e.frames.Evict(frame); ok {
			out.Evicted = true
			out.EvictedPage = evicted
			if old, ok := e.pageTable.Get(evicted); ok && old.Dirty {
				out.WriteBack = true
			}
			e.pageTable.Clear(evicted)
			e.tlb.Invalidate(evicted)

			e.logger.Debug("EVICT", "step", step, "frame", frame, "evicted_page", evicted, "dirty", out.WriteBack, "page", page)
		}
	}

	e.frames.Load(frame, page, step)
	pte.Present = true
	pte.FrameIndex = frame
	pte.Referenced = true
	if op.IsWrite() {
		pte.Dirty = true
	}
	e.tlb.InsertOrUpdate(page, frame, step)

	out.FrameIndex = frame
	return nil
}
