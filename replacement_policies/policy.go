package replacement

import (
	"VMSim/types"
	"fmt"
	"strings"
)

/*
Replacement policies decide which frame gives up its page when a fault finds no free frame.
The variant set is closed: FIFO, LRU and Optimal. The engine only sees the Policy interface,
the driver picks a Kind and New builds a fresh instance for every run (FIFO carries state).

Shared rules for every variant:
  - an empty frame is returned immediately (the engine never asks with a free frame, but the
    answer is still well defined)
  - a resident page with no relevant occurrence in the reference stream is returned immediately
  - on equal distances the lowest frame index wins
*/

type Policy interface {
	// SelectVictim returns the index of the frame to evict. frames holds the occupant of every
	// frame, referencePages the page number of every access of the run, currentIndex the
	// position of the faulting access.
	SelectVictim(frames []types.Slot, referencePages []uint64, currentIndex int) int
}

type Kind int

const (
	FIFO Kind = iota
	LRU
	Optimal
)

func Kinds() []Kind {
	return []Kind{FIFO, LRU, Optimal}
}

func (k Kind) String() string {
	switch k {
	case FIFO:
		return "FIFO"
	case LRU:
		return "LRU"
	case Optimal:
		return "Optimal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo":
		return FIFO, nil
	case "lru":
		return LRU, nil
	case "optimal", "opt":
		return Optimal, nil
	}
	return 0, fmt.Errorf("%w: unknown replacement policy %q (want fifo, lru or optimal)", types.ErrInvalidConfiguration, s)
}

// New returns a fresh policy of the given kind
func New(k Kind) (Policy, error) {
	switch k {
	case FIFO:
		return NewFIFO(), nil
	case LRU:
		return &LRUPolicy{}, nil
	case Optimal:
		return &OptimalPolicy{}, nil
	}
	return nil, fmt.Errorf("%w: unknown replacement policy %v", types.ErrInvalidConfiguration, k)
}

func firstEmpty(frames []types.Slot) (int, bool) {
	for i, s := range frames {
		if !s.Occupied {
			return i, true
		}
	}
	return 0, false
}
