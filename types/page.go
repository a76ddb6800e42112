package types

import "strconv"

// Slot is the occupant of a frame as seen outside the frame table.
// The zero value is an empty frame.
type Slot struct {
	Page     uint64
	Occupied bool
}

func Holding(page uint64) Slot {
	return Slot{Page: page, Occupied: true}
}

func (s Slot) String() string {
	if !s.Occupied {
		return "-"
	}
	return strconv.FormatUint(s.Page, 10)
}

// Pages returns the occupant of each slot, -1 for free frames.
func Pages(slots []Slot) []int64 {
	out := make([]int64, len(slots))
	for i, s := range slots {
		if s.Occupied {
			out[i] = int64(s.Page)
		} else {
			out[i] = -1
		}
	}
	return out
}
