package replacement

import "VMSim/types"

// OptimalPolicy evicts the frame whose page is needed farthest in the future (Belady).
// It needs the whole reference stream up front, which a trace simulation has.
type OptimalPolicy struct{}

func (OptimalPolicy) SelectVictim(frames []types.Slot, referencePages []uint64, currentIndex int) int {
	if i, ok := firstEmpty(frames); ok {
		return i
	}

	victim := 0
	farthest := -1

	for i, s := range frames {
		nextUse := nextUseAfter(referencePages, s.Page, currentIndex)
		if nextUse < 0 {
			return i
		}

		if distance := nextUse - currentIndex; distance > farthest {
			farthest = distance
			victim = i
		}
	}
	return victim
}

// nextUseAfter scans referencePages(current:] forward, -1 when page is never used again
func nextUseAfter(referencePages []uint64, page uint64, current int) int {
	for i := max(current+1, 0); i < len(referencePages); i++ {
		if referencePages[i] == page {
			return i
		}
	}
	return -1
}
