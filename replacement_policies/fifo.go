package replacement

import "VMSim/types"

// FIFOPolicy evicts the frame whose page was loaded earliest.
// order holds frame indices, front = oldest load. It is seeded with [0, n) the first time every
// frame is seen occupied, which matches the engine filling free frames lowest index first.
type FIFOPolicy struct {
	order []int
	known map[uint64]struct{} // every page named by the reference stream
}

func NewFIFO() *FIFOPolicy {
	return &FIFOPolicy{}
}

func (p *FIFOPolicy) SelectVictim(frames []types.Slot, referencePages []uint64, currentIndex int) int {
	p.ensureInitialized(frames)

	if idx, ok := firstEmpty(frames); ok {
		p.moveToBack(idx)
		return idx
	}

	// a resident page the stream never names was not loaded by this run
	p.ensureKnown(referencePages)
	for i, s := range frames {
		if _, ok := p.known[s.Page]; !ok {
			p.moveToBack(i)
			return i
		}
	}

	if len(p.order) == 0 {
		return 0
	}

	victim := p.order[0]
	// the new page lands in the same frame, which becomes the most recently loaded one
	p.order = append(p.order[1:], victim)
	return victim
}

func (p *FIFOPolicy) ensureInitialized(frames []types.Slot) {
	if len(p.order) > 0 {
		return
	}
	if _, ok := firstEmpty(frames); ok {
		return
	}
	p.order = make([]int, len(frames))
	for i := range p.order {
		p.order[i] = i
	}
}

func (p *FIFOPolicy) ensureKnown(referencePages []uint64) {
	if p.known != nil {
		return
	}
	p.known = make(map[uint64]struct{}, len(referencePages))
	for _, page := range referencePages {
		p.known[page] = struct{}{}
	}
}

// moveToBack moves idx to the end of the load order (most recently loaded)
func (p *FIFOPolicy) moveToBack(idx int) {
	if len(p.order) == 0 {
		return
	}
	for i, id := range p.order {
		if id == idx {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	p.order = append(p.order, idx)
}

// Order returns a copy of the load queue, oldest first
func (p *FIFOPolicy) Order() []int {
	out := make([]int, len(p.order))
	copy(out, p.order)
	return out
}
