package refparser

import (
	"VMSim/types"
	vmconfig "VMSim/vm_config"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

/*
Reference strings are comma (or semicolon) separated tokens. Each token is one of:

	"120 R"   address and operation separated by whitespace
	"120:W"   address and operation separated by a colon
	"120r"    operation letter glued to the address

Operations are case insensitive. Every error wraps types.ErrMalformedReference.
*/

const (
	workingSetSize = 3
	localityRatio  = 0.8
	writeRatio     = 0.25
)

func Parse(text string) ([]types.Reference, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: reference string is empty", types.ErrMalformedReference)
	}

	var refs []types.Reference
	for _, raw := range strings.Split(strings.ReplaceAll(text, ";", ","), ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		ref, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: reference string is empty after parsing", types.ErrMalformedReference)
	}
	return refs, nil
}

func parseToken(token string) (types.Reference, error) {
	var addrStr, opStr string
	switch {
	case strings.ContainsAny(token, " \t"):
		parts := strings.Fields(token)
		if len(parts) != 2 {
			return types.Reference{}, fmt.Errorf("%w: invalid token %q, use 'addr op'", types.ErrMalformedReference, token)
		}
		addrStr, opStr = parts[0], parts[1]
	case strings.Contains(token, ":"):
		var ok bool
		addrStr, opStr, ok = strings.Cut(token, ":")
		if !ok || strings.Contains(opStr, ":") {
			return types.Reference{}, fmt.Errorf("%w: invalid token %q, use 'addr:op'", types.ErrMalformedReference, token)
		}
	default:
		addrStr, opStr = token[:len(token)-1], token[len(token)-1:]
	}

	addrStr = strings.TrimSpace(addrStr)
	if addrStr == "" || strings.TrimLeft(addrStr, "0123456789") != "" {
		return types.Reference{}, fmt.Errorf("%w: address %q is not a number", types.ErrMalformedReference, addrStr)
	}
	addr, err := strconv.ParseUint(addrStr, 10, 64)
	if err != nil {
		return types.Reference{}, fmt.Errorf("%w: address %q: %v", types.ErrMalformedReference, addrStr, err)
	}

	op, err := types.ParseOperation(opStr)
	if err != nil {
		return types.Reference{}, err
	}
	return types.Reference{Address: addr, Op: op}, nil
}

// Validate checks every address against the virtual address space of cfg.
func Validate(refs []types.Reference, cfg vmconfig.AddressConfig) error {
	for i, ref := range refs {
		if !cfg.Contains(ref.Address) {
			return fmt.Errorf("%w: reference %d address %d outside virtual space of %d bytes",
				types.ErrMalformedReference, i, ref.Address, cfg.VirtualSize())
		}
	}
	return nil
}

// Format renders refs in the canonical "addr R, addr W" form accepted by Parse.
func Format(refs []types.Reference) string {
	var b strings.Builder
	for i, ref := range refs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ref.String())
	}
	return b.String()
}

// Generate builds count references with locality: most accesses hit a small working set of
// pages, the rest land anywhere in the virtual space.
func Generate(cfg vmconfig.AddressConfig, rng *rand.Rand, count int) []types.Reference {
	pages := cfg.VirtualPageCount()
	pageSize := cfg.PageSize()

	workingSet := make([]uint64, workingSetSize)
	for i := range workingSet {
		workingSet[i] = rng.Uint64N(pages)
	}

	refs := make([]types.Reference, 0, max(count, 0))
	for range count {
		var page uint64
		if rng.Float64() < localityRatio {
			page = workingSet[rng.IntN(len(workingSet))]
		} else {
			page = rng.Uint64N(pages)
		}

		addr := page*pageSize + rng.Uint64N(pageSize)
		op := types.OpRead
		if rng.Float64() < writeRatio {
			op = types.OpWrite
		}
		refs = append(refs, types.Reference{Address: addr, Op: op})
	}
	return refs
}
