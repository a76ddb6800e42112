package simconfig

import (
	refparser "VMSim/reference_parser"
	replacement "VMSim/replacement_policies"
	"VMSim/types"
	vmconfig "VMSim/vm_config"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
)

const defaultReference = "120 R, 240 R, 4095 W, 8192 R, 9000 W, 256 R, 9000 R, 40000 R, " +
	"120 W, 8192 W, 40000 W, 256 W, 500 R, 600 R, 700 R, 800 R, " +
	"500 W, 4095 R, 120 R, 24000 W"

// Default is 64 KiB of virtual memory over 16 frames of 256 bytes, a 4-entry TLB and LRU.
func Default() Config {
	return Config{
		VirtualSize:  "64 KiB",
		PhysicalSize: "4 KiB",
		OffsetBits:   8,
		TLBEntries:   4,
		Policy:       replacement.LRU.String(),
		Reference:    defaultReference,
		LogLevel:     "INFO",
	}
}

// Load decodes path over Default, so a file only needs the fields it changes.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Build validates the configuration and parses the reference string.
func (c Config) Build() (Run, error) {
	virtual, err := parseSize("virtual_size", c.VirtualSize)
	if err != nil {
		return Run{}, err
	}
	physical, err := parseSize("physical_size", c.PhysicalSize)
	if err != nil {
		return Run{}, err
	}

	address, err := vmconfig.New(virtual, physical, c.OffsetBits)
	if err != nil {
		return Run{}, err
	}
	if c.TLBEntries < 0 {
		return Run{}, fmt.Errorf("%w: tlb_entries must not be negative, got %d", types.ErrInvalidConfiguration, c.TLBEntries)
	}

	kind, err := replacement.ParseKind(c.Policy)
	if err != nil {
		return Run{}, err
	}

	refs, err := refparser.Parse(c.Reference)
	if err != nil {
		return Run{}, err
	}
	if err := refparser.Validate(refs, address); err != nil {
		return Run{}, err
	}

	return Run{
		Address:    address,
		Policy:     kind,
		TLBEntries: c.TLBEntries,
		References: refs,
	}, nil
}

func parseSize(field, value string) (uint64, error) {
	n, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", types.ErrInvalidConfiguration, field, value, err)
	}
	return n, nil
}
