package report

import (
	simengine "VMSim/simulation_engine"
	"VMSim/statistics"
	vmconfig "VMSim/vm_config"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// StepLine renders one outcome as a single trace line.
func StepLine(out simengine.StepOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Step %d] %s VA=%d page=%d offset=%d", out.StepIndex, out.Operation, out.VirtualAddress, out.Page, out.Offset)

	switch {
	case out.TLBHit:
		b.WriteString(" TLB HIT")
	case out.Hit:
		b.WriteString(" TLB MISS, PAGE HIT")
	default:
		b.WriteString(" TLB MISS, PAGE FAULT")
	}

	fmt.Fprintf(&b, " frame=%d PA=%d", out.FrameIndex, out.PhysicalAddress)
	if out.Evicted {
		fmt.Fprintf(&b, " evicted page=%d from frame=%d", out.EvictedPage, out.VictimFrame)
		if out.WriteBack {
			b.WriteString(" (write-back)")
		}
	}

	frames := make([]string, len(out.Frames))
	for i, slot := range out.Frames {
		frames[i] = slot.String()
	}
	fmt.Fprintf(&b, " frames=[%s]", strings.Join(frames, " "))
	return b.String()
}

func ConfigLine(cfg vmconfig.AddressConfig) string {
	return fmt.Sprintf("virtual=%s physical=%s page=%s frames=%s virtual pages=%s",
		humanize.IBytes(cfg.VirtualSize()),
		humanize.IBytes(cfg.PhysicalSize()),
		humanize.IBytes(cfg.PageSize()),
		humanize.Comma(int64(cfg.FrameCount())),
		humanize.Comma(int64(cfg.VirtualPageCount())))
}

// Summary writes a statistics block headed by name.
func Summary(w io.Writer, name string, s statistics.Summary) error {
	_, err := fmt.Fprintf(w,
		"===== %s =====\n"+
			"accesses     %s\n"+
			"page hits    %s (%.2f%%)\n"+
			"page faults  %s (%.2f%%)\n"+
			"TLB hits     %s (%.2f%%)\n"+
			"TLB misses   %s\n"+
			"evictions    %s\n"+
			"disk writes  %s\n",
		name,
		humanize.Comma(int64(s.TotalAccesses)),
		humanize.Comma(int64(s.Hits)), s.HitRatio()*100,
		humanize.Comma(int64(s.Faults)), s.FaultRatio()*100,
		humanize.Comma(int64(s.TLBHits)), s.TLBHitRatio()*100,
		humanize.Comma(int64(s.TLBMisses)),
		humanize.Comma(int64(s.Evictions)),
		humanize.Comma(int64(s.DiskWrites)))
	return err
}
