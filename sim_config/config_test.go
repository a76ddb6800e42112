package simconfig

import (
	replacement "VMSim/replacement_policies"
	"VMSim/types"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "vmsim-*.json")
	if err != nil {
		t.Fatalf("create temp config: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(body); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return f.Name()
}

func TestDefaultBuilds(t *testing.T) {
	run, err := Default().Build()
	if err != nil {
		t.Fatalf("default config must build: %v", err)
	}
	if run.Address.VirtualSize() != 65536 || run.Address.FrameCount() != 16 || run.Address.PageSize() != 256 {
		t.Errorf("unexpected address config %v", run.Address)
	}
	if run.Policy != replacement.LRU || run.TLBEntries != 4 || len(run.References) != 20 {
		t.Errorf("unexpected run %+v", run)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `{"physical_size": "1024", "policy": "fifo", "reference": "0 R, 300 W"}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	run, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if run.Address.FrameCount() != 4 || run.Policy != replacement.FIFO || len(run.References) != 2 {
		t.Errorf("overlay not applied: %+v", run)
	}
	if run.Address.VirtualSize() != 65536 {
		t.Errorf("virtual size should keep its default, got %d", run.Address.VirtualSize())
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `{"page_size": 256}`)
	if _, err := Load(path); err == nil {
		t.Error("expected unknown field to be rejected")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.json")
	cfg := Default()
	cfg.Policy = "optimal"
	cfg.TLBEntries = 0

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"bad size", func(c *Config) { c.VirtualSize = "lots" }, types.ErrInvalidConfiguration},
		{"physical too large", func(c *Config) { c.PhysicalSize = "128 KiB" }, types.ErrInvalidConfiguration},
		{"zero offset", func(c *Config) { c.OffsetBits = 0 }, types.ErrInvalidConfiguration},
		{"negative tlb", func(c *Config) { c.TLBEntries = -1 }, types.ErrInvalidConfiguration},
		{"unknown policy", func(c *Config) { c.Policy = "clock" }, types.ErrInvalidConfiguration},
		{"bad reference", func(c *Config) { c.Reference = "12 X" }, types.ErrMalformedReference},
		{"out of range", func(c *Config) { c.Reference = "70000 R" }, types.ErrMalformedReference},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(&cfg)
			if _, err := cfg.Build(); !errors.Is(err, c.want) {
				t.Errorf("expected %v, got %v", c.want, err)
			}
		})
	}
}
