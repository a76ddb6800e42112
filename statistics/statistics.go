package statistics

import simengine "VMSim/simulation_engine"

// Summary is a value copy of the counters at one point of a run
type Summary struct {
	TotalAccesses int
	Hits          int
	Faults        int
	TLBHits       int
	TLBMisses     int
	Evictions     int
	DiskWrites    int // dirty evictions
}

func ratio(count, total int) float64 {
	return float64(count) / float64(max(1, total))
}

func (s Summary) HitRatio() float64    { return ratio(s.Hits, s.TotalAccesses) }
func (s Summary) FaultRatio() float64  { return ratio(s.Faults, s.TotalAccesses) }
func (s Summary) TLBHitRatio() float64 { return ratio(s.TLBHits, s.TotalAccesses) }

// Tracker accumulates counters from step outcomes. It never looks at engine state.
type Tracker struct {
	summary Summary
}

func New() *Tracker {
	return &Tracker{}
}

func (t *Tracker) Record(out simengine.StepOutcome) {
	s := &t.summary
	s.TotalAccesses++

	if out.Hit {
		s.Hits++
	} else {
		s.Faults++
	}

	if out.TLBHit {
		s.TLBHits++
	} else {
		s.TLBMisses++
	}

	if out.Evicted {
		s.Evictions++
	}
	if out.WriteBack {
		s.DiskWrites++
	}
}

// Reset zeroes every counter
func (t *Tracker) Reset() {
	t.summary = Summary{}
}

func (t *Tracker) Summary() Summary {
	return t.summary
}

func (t *Tracker) TotalAccesses() int   { return t.summary.TotalAccesses }
func (t *Tracker) Hits() int            { return t.summary.Hits }
func (t *Tracker) Faults() int          { return t.summary.Faults }
func (t *Tracker) TLBHits() int         { return t.summary.TLBHits }
func (t *Tracker) TLBMisses() int       { return t.summary.TLBMisses }
func (t *Tracker) DiskWrites() int      { return t.summary.DiskWrites }
func (t *Tracker) HitRatio() float64    { return t.summary.HitRatio() }
func (t *Tracker) FaultRatio() float64  { return t.summary.FaultRatio() }
func (t *Tracker) TLBHitRatio() float64 { return t.summary.TLBHitRatio() }
