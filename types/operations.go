package types

import (
	"fmt"
	"strings"
)

type Operation byte

const (
	OpRead  Operation = 'R'
	OpWrite Operation = 'W'
)

func (op Operation) String() string {
	switch op {
	case OpRead:
		return "R"
	case OpWrite:
		return "W"
	default:
		return fmt.Sprintf("Operation(%d)", byte(op))
	}
}

func (op Operation) Valid() bool {
	return op == OpRead || op == OpWrite
}

func (op Operation) IsWrite() bool {
	return op == OpWrite
}

// ParseOperation accepts "R"/"W" in either case.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "R":
		return OpRead, nil
	case "W":
		return OpWrite, nil
	}
	return 0, fmt.Errorf("%w: operation must be R or W, got %q", ErrMalformedReference, s)
}

// Reference is one access of a reference stream
type Reference struct {
	Address uint64
	Op      Operation
}

func Read(addr uint64) Reference {
	return Reference{Address: addr, Op: OpRead}
}

func Write(addr uint64) Reference {
	return Reference{Address: addr, Op: OpWrite}
}

func (r Reference) String() string {
	return fmt.Sprintf("%d %s", r.Address, r.Op)
}
