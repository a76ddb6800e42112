package vmconfig

import (
	"VMSim/types"
	"errors"
	"testing"
)

func TestDerivedSizes(t *testing.T) {
	tests := []struct {
		name          string
		virtual       uint64
		physical      uint64
		offsetBits    uint8
		wantPageSize  uint64
		wantFrames    int
		wantPageCount uint64
	}{
		{"small", 256, 64, 4, 16, 4, 16},
		{"standard", 65536, 4096, 8, 256, 16, 256},
		{"equal spaces", 8192, 8192, 12, 4096, 2, 2},
		{"single frame", 1024, 2, 1, 2, 1, 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New(tt.virtual, tt.physical, tt.offsetBits)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if cfg.PageSize() != tt.wantPageSize {
				t.Errorf("page size: expected %d, got %d", tt.wantPageSize, cfg.PageSize())
			}
			if cfg.FrameCount() != tt.wantFrames {
				t.Errorf("frame count: expected %d, got %d", tt.wantFrames, cfg.FrameCount())
			}
			if cfg.VirtualPageCount() != tt.wantPageCount {
				t.Errorf("virtual page count: expected %d, got %d", tt.wantPageCount, cfg.VirtualPageCount())
			}
			if uint64(cfg.FrameCount())*cfg.PageSize() != tt.physical {
				t.Errorf("frames do not cover physical memory exactly")
			}
		})
	}
}

func TestInvalidConfigurations(t *testing.T) {
	tests := []struct {
		name       string
		virtual    uint64
		physical   uint64
		offsetBits uint8
	}{
		{"zero offset bits", 256, 64, 0},
		{"offset bits too large", 256, 64, 64},
		{"zero virtual", 0, 64, 4},
		{"zero physical", 256, 0, 4},
		{"virtual not multiple", 250, 64, 4},
		{"physical not multiple", 256, 70, 4},
		{"physical exceeds virtual", 64, 256, 4},
		{"too many frames", 1 << 41, 1 << 40, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.virtual, tt.physical, tt.offsetBits)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !errors.Is(err, types.ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	cfg, err := New(65536, 4096, 8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, va := range []uint64{0, 1, 120, 255, 256, 4095, 8192, 9000, 40000, 65535} {
		page, offset := cfg.Decode(va)
		if page != va>>8 || offset != va&255 {
			t.Errorf("Decode(%d) = (%d, %d)", va, page, offset)
		}
		if page*cfg.PageSize()+offset != va {
			t.Errorf("Decode(%d) does not recompose: page=%d offset=%d", va, page, offset)
		}
	}
}

func TestDecodeMaxAddress(t *testing.T) {
	cfg, err := New(256, 64, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	page, offset := cfg.Decode(cfg.VirtualSize() - 1)
	if page != cfg.VirtualPageCount()-1 {
		t.Errorf("expected page %d, got %d", cfg.VirtualPageCount()-1, page)
	}
	if offset != cfg.PageSize()-1 {
		t.Errorf("expected offset %d, got %d", cfg.PageSize()-1, offset)
	}
	if !cfg.Contains(255) || cfg.Contains(256) {
		t.Errorf("Contains boundary is wrong")
	}
}

func TestPhysicalAddress(t *testing.T) {
	cfg, err := New(65536, 4096, 8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := cfg.PhysicalAddress(3, 17); got != 3*256+17 {
		t.Errorf("expected %d, got %d", 3*256+17, got)
	}
	if got := cfg.PhysicalAddress(0, 0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
