package replacement

import "VMSim/types"

// LRUPolicy evicts the frame whose page was referenced longest ago, measured on the reference
// stream itself rather than on frame timestamps.
type LRUPolicy struct{}

func (LRUPolicy) SelectVictim(frames []types.Slot, referencePages []uint64, currentIndex int) int {
	if i, ok := firstEmpty(frames); ok {
		return i
	}

	victim := 0
	oldestDistance := -1

	for i, s := range frames {
		lastUse := lastUseBefore(referencePages, s.Page, currentIndex)
		if lastUse < 0 {
			return i
		}

		if distance := currentIndex - lastUse; distance > oldestDistance {
			oldestDistance = distance
			victim = i
		}
	}
	return victim
}

// lastUseBefore scans referencePages[0:current) backward, -1 when page never appears
func lastUseBefore(referencePages []uint64, page uint64, current int) int {
	start := min(current, len(referencePages)) - 1
	for i := start; i >= 0; i-- {
		if referencePages[i] == page {
			return i
		}
	}
	return -1
}
