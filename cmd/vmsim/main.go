// Run one simulation and print the per-step trace and statistics.
// Usage: go run ./cmd/vmsim [-config file.json] [-policy fifo|lru|optimal] [-tlb N] [-refs "120 R, 240 W"] [-random N -seed S]
// Example: go run ./cmd/vmsim -policy fifo -tlb 2 -random 40 -seed 7
package main

import (
	"VMSim/logger"
	refparser "VMSim/reference_parser"
	"VMSim/report"
	simconfig "VMSim/sim_config"
	controller "VMSim/simulation_controller"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
)

func main() {
	configPath := flag.String("config", "", "JSON config file (defaults are used when empty)")
	policy := flag.String("policy", "", "replacement policy: fifo, lru or optimal")
	tlbEntries := flag.Int("tlb", -1, "TLB entries, 0 disables the TLB")
	refs := flag.String("refs", "", "reference string, e.g. \"120 R, 240 W\"")
	random := flag.Int("random", 0, "generate N references with locality instead of -refs")
	seed := flag.Uint64("seed", 1, "seed for -random")
	quiet := flag.Bool("quiet", false, "only print the statistics")
	logLevel := flag.String("log-level", "", "DEBUG, INFO, WARN or ERROR")
	flag.Parse()

	if err := run(*configPath, *policy, *tlbEntries, *refs, *random, *seed, *quiet, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, policy string, tlbEntries int, refs string, random int, seed uint64, quiet bool, logLevel string) error {
	cfg := simconfig.Default()
	if configPath != "" {
		loaded, err := simconfig.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if policy != "" {
		cfg.Policy = policy
	}
	if tlbEntries >= 0 {
		cfg.TLBEntries = tlbEntries
	}
	if refs != "" {
		cfg.Reference = refs
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := logger.Setup(cfg.LogLevel, cfg.LogPath); err != nil {
		return err
	}

	sim, err := cfg.Build()
	if err != nil {
		return err
	}
	if random > 0 {
		sim.References = refparser.Generate(sim.Address, rand.New(rand.NewPCG(seed, seed)), random)
	}

	ctrl, err := controller.New(sim.Address, sim.References, sim.Policy, sim.TLBEntries)
	if err != nil {
		return err
	}

	fmt.Println(report.ConfigLine(sim.Address))
	fmt.Printf("policy=%s tlb=%d references=%d\n", sim.Policy, sim.TLBEntries, len(sim.References))
	if !quiet {
		fmt.Println(refparser.Format(sim.References))
		fmt.Println()
	}

	for !ctrl.IsFinished() {
		out, err := ctrl.Step()
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Println(report.StepLine(out))
		}
	}

	fmt.Println()
	if err := report.Summary(os.Stdout, sim.Policy.String(), ctrl.Stats()); err != nil {
		return err
	}

	if writes := ctrl.WriteLog(); len(writes) > 0 && !quiet {
		fmt.Println("\nwritten pages:")
		for _, w := range writes {
			fmt.Printf("  page=%d VA=%d PA=%d step=%d\n", w.Page, w.VirtualAddress, w.PhysicalAddress, w.Step)
		}
	}
	return nil
}
