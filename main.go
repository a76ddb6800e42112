package main

import (
	"VMSim/logger"
	refparser "VMSim/reference_parser"
	replacement "VMSim/replacement_policies"
	"VMSim/report"
	runcache "VMSim/run_cache"
	simconfig "VMSim/sim_config"
	controller "VMSim/simulation_controller"
	"VMSim/types"
	vmconfig "VMSim/vm_config"
	"bufio"
	"fmt"
	"log"
	"maps"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"
	"strings"
)

const help = `commands:
  step [n]          advance n references (default 1)
  run               run to the end of the stream
  reset             restart the current stream
  policy <name>     switch to fifo, lru or optimal and reset
  tlb <n>           resize the TLB and reset (0 disables it)
  refs <string>     load a reference string, e.g. refs 120 R, 240 W
  random <n>        load n generated references with locality
  show              print frames, TLB and page table
  stats             print statistics so far
  writes            print pages written so far
  compare           faults of every policy on the current stream
  demo              classic 3-frame stream under every policy
  exit`

type session struct {
	sim   simconfig.Run
	ctrl  *controller.Controller
	cache *runcache.Cache
	rng   *rand.Rand
}

func main() {
	cfg := simconfig.Default()
	if err := logger.Setup(cfg.LogLevel, cfg.LogPath); err != nil {
		log.Fatal(err)
	}

	sim, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}
	cache, err := runcache.New(256)
	if err != nil {
		log.Fatal(err)
	}
	defer cache.Close()

	s := &session{sim: sim, cache: cache, rng: rand.New(rand.NewPCG(1, 1))}
	if err := s.rebuild(); err != nil {
		log.Fatal(err)
	}

	fmt.Println(report.ConfigLine(sim.Address))
	fmt.Println(help)

	scanner := bufio.NewScanner(os.Stdin)
	// REPL
	for {
		fmt.Print("vm> ")

		if !scanner.Scan() { // Ctrl+D pressed
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "exit") {
			break
		}
		if line == "" {
			continue
		}

		if err := s.execute(line); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func (s *session) rebuild() error {
	ctrl, err := controller.New(s.sim.Address, s.sim.References, s.sim.Policy, s.sim.TLBEntries)
	if err != nil {
		return err
	}
	s.ctrl = ctrl
	return nil
}

func (s *session) execute(line string) error {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "help":
		fmt.Println(help)
	case "step":
		n := 1
		if arg != "" {
			v, err := strconv.Atoi(arg)
			if err != nil || v < 1 {
				return fmt.Errorf("step count must be a positive integer, got %q", arg)
			}
			n = v
		}
		for range n {
			if s.ctrl.IsFinished() {
				fmt.Println("simulation finished")
				break
			}
			out, err := s.ctrl.Step()
			if err != nil {
				return err
			}
			fmt.Println(report.StepLine(out))
		}
	case "run":
		outs, err := s.ctrl.RunAll()
		if err != nil {
			return err
		}
		for _, out := range outs {
			fmt.Println(report.StepLine(out))
		}
		return report.Summary(os.Stdout, s.sim.Policy.String(), s.ctrl.Stats())
	case "reset":
		return s.ctrl.Reset()
	case "policy":
		kind, err := replacement.ParseKind(arg)
		if err != nil {
			return err
		}
		s.sim.Policy = kind
		return s.rebuild()
	case "tlb":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("tlb size must be an integer, got %q", arg)
		}
		prev := s.sim.TLBEntries
		s.sim.TLBEntries = n
		if err := s.rebuild(); err != nil {
			s.sim.TLBEntries = prev
			return err
		}
	case "refs":
		refs, err := refparser.Parse(arg)
		if err != nil {
			return err
		}
		if err := refparser.Validate(refs, s.sim.Address); err != nil {
			return err
		}
		s.sim.References = refs
		return s.rebuild()
	case "random":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return fmt.Errorf("reference count must be a positive integer, got %q", arg)
		}
		s.sim.References = refparser.Generate(s.sim.Address, s.rng, n)
		fmt.Println(refparser.Format(s.sim.References))
		return s.rebuild()
	case "show":
		s.show()
	case "stats":
		return report.Summary(os.Stdout, s.sim.Policy.String(), s.ctrl.Stats())
	case "writes":
		for _, w := range s.ctrl.WriteLog() {
			fmt.Printf("page=%d VA=%d PA=%d step=%d\n", w.Page, w.VirtualAddress, w.PhysicalAddress, w.Step)
		}
	case "compare":
		for _, k := range replacement.Kinds() {
			sum, cached, err := s.cache.Summarize(s.sim.Address, k, s.sim.TLBEntries, s.sim.References)
			if err != nil {
				return err
			}
			fmt.Printf("%-8s faults=%d hits=%d tlb hits=%d cached=%v\n", k, sum.Faults, sum.Hits, sum.TLBHits, cached)
		}
	case "demo":
		return demo()
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

func (s *session) show() {
	c := s.ctrl
	fmt.Printf("step %d/%d\n", c.CurrentStep(), c.Len())

	fmt.Println("=== Frames ===")
	for _, f := range c.Frames() {
		if f.IsFree() {
			fmt.Printf("  [%d] free\n", f.Index)
			continue
		}
		fmt.Printf("  [%d] page=%d loaded=%d last=%d\n", f.Index, f.Page, f.LoadStep, f.LastAccessStep)
	}

	fmt.Println("=== TLB ===")
	for _, entry := range c.TLBEntries() {
		fmt.Printf("  page=%d frame=%d last=%d\n", entry.Page, entry.Frame, entry.LastAccess)
	}

	fmt.Println("=== Page table ===")
	table := c.PageTable()
	for _, page := range slices.Sorted(maps.Keys(table)) {
		pte := table[page]
		fmt.Printf("  page=%d present=%v frame=%d dirty=%v referenced=%v\n", page, pte.Present, pte.FrameIndex, pte.Dirty, pte.Referenced)
	}

	ms := c.MemoryStats()
	fmt.Printf("resident=%d free=%d dirty=%d tlb=%d/%d\n", ms.ResidentPages, ms.FreeFrames, ms.DirtyPages, ms.TLBEntries, ms.TLBCapacity)
}

// demo runs pages 7 0 1 2 0 3 0 4 2 3 0 3 2 with three frames and no TLB.
func demo() error {
	cfg, err := vmconfig.New(256, 48, 4)
	if err != nil {
		return err
	}
	var refs []types.Reference
	for _, page := range []uint64{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2} {
		refs = append(refs, types.Read(page*cfg.PageSize()))
	}

	for _, k := range replacement.Kinds() {
		ctrl, err := controller.New(cfg, refs, k, 0)
		if err != nil {
			return err
		}
		if _, err := ctrl.RunAll(); err != nil {
			return err
		}
		sum := ctrl.Stats()
		fmt.Printf("%-8s faults=%d hits=%d final frames=%v\n", k, sum.Faults, sum.Hits, types.Pages(ctrl.Occupants()))
	}
	return nil
}
