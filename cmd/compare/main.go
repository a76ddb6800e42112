// Compare FIFO, LRU and Optimal on one reference stream across a range of frame counts.
// Usage: go run ./cmd/compare [-config file.json] [-min 1] [-max 8] [-random N -seed S]
// Example: go run ./cmd/compare -random 200 -seed 3 -max 12
// Runs go through the run cache, but within a single sweep every (frames, policy) pair is
// distinct, so every run is a miss here. Repeated comparisons hit the cache in the REPL.
package main

import (
	"VMSim/logger"
	refparser "VMSim/reference_parser"
	replacement "VMSim/replacement_policies"
	runcache "VMSim/run_cache"
	simconfig "VMSim/sim_config"
	"VMSim/statistics"
	vmconfig "VMSim/vm_config"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
)

func main() {
	configPath := flag.String("config", "", "JSON config file (defaults are used when empty)")
	minFrames := flag.Int("min", 1, "smallest frame count")
	maxFrames := flag.Int("max", 8, "largest frame count")
	random := flag.Int("random", 0, "generate N references with locality instead of the configured string")
	seed := flag.Uint64("seed", 1, "seed for -random")
	logLevel := flag.String("log-level", "WARN", "DEBUG, INFO, WARN or ERROR")
	flag.Parse()

	if err := run(*configPath, *minFrames, *maxFrames, *random, *seed, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, minFrames, maxFrames, random int, seed uint64, logLevel string) error {
	if minFrames < 1 || maxFrames < minFrames {
		return fmt.Errorf("invalid frame range [%d, %d]", minFrames, maxFrames)
	}

	cfg := simconfig.Default()
	if configPath != "" {
		loaded, err := simconfig.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := logger.Setup(logLevel, cfg.LogPath); err != nil {
		return err
	}

	sim, err := cfg.Build()
	if err != nil {
		return err
	}
	refs := sim.References
	if random > 0 {
		refs = refparser.Generate(sim.Address, rand.New(rand.NewPCG(seed, seed)), random)
	}

	cache, err := runcache.New(int64(3 * (maxFrames - minFrames + 1)))
	if err != nil {
		return err
	}
	defer cache.Close()

	kinds := replacement.Kinds()
	fmt.Printf("%-8s", "frames")
	for _, k := range kinds {
		fmt.Printf("%10s", k)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 8+10*len(kinds)))

	violations := 0
	for frames := minFrames; frames <= maxFrames; frames++ {
		page := sim.Address.PageSize()
		physical := uint64(frames) * page
		if physical > sim.Address.VirtualSize() {
			break
		}
		address, err := vmconfig.New(sim.Address.VirtualSize(), physical, sim.Address.OffsetBits())
		if err != nil {
			return err
		}

		summaries := make(map[replacement.Kind]statistics.Summary, len(kinds))
		fmt.Printf("%-8d", frames)
		for _, k := range kinds {
			s, _, err := cache.Summarize(address, k, sim.TLBEntries, refs)
			if err != nil {
				return err
			}
			summaries[k] = s
			fmt.Printf("%10d", s.Faults)
		}
		fmt.Println()

		opt := summaries[replacement.Optimal].Faults
		if opt > summaries[replacement.LRU].Faults || opt > summaries[replacement.FIFO].Faults {
			violations++
			fmt.Fprintf(os.Stderr, "Optimal exceeded another policy at %d frames\n", frames)
		}
	}

	if violations > 0 {
		return fmt.Errorf("optimal lower bound violated at %d frame counts", violations)
	}
	return nil
}
