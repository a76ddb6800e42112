package frametable

// ############################################# FRAME #############################################

// Frame is one physical frame slot. Identity is its index.
type Frame struct {
	Index          int
	Page           uint64 // valid only when Occupied
	Occupied       bool
	LoadStep       int // step the current page was loaded, -1 if never
	LastAccessStep int // -1 if never
}

// IsFree reports whether no page lives in the frame
func (f Frame) IsFree() bool {
	return !f.Occupied
}

// ############################################# FRAME TABLE #############################################

// FrameTable is the fixed array of physical frames owned by one engine.
// Frames are never destroyed, only re-occupied.
type FrameTable struct {
	frames   []Frame
	resident int
}
