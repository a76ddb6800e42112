package vmconfig

import (
	"VMSim/types"
	"fmt"
)

/*
Address space configuration.
Everything is derived from offset bits: page size is 2^offsetBits, so decoding an address is a
shift for the page number and a mask for the offset. There is no separately supplied page size,
which keeps shift/mask and divide/modulo equivalent by construction.
*/

const (
	maxOffsetBits = 63
	// frames are allocated eagerly, one slot per frame
	maxFrameCount = 1 << 20
)

// New validates the sizes and derives page size, frame count and virtual page count.
func New(virtualSize, physicalSize uint64, offsetBits uint8) (AddressConfig, error) {
	if offsetBits == 0 || offsetBits > maxOffsetBits {
		return AddressConfig{}, fmt.Errorf("%w: offset bits must be in [1, %d], got %d",
			types.ErrInvalidConfiguration, maxOffsetBits, offsetBits)
	}
	if virtualSize == 0 || physicalSize == 0 {
		return AddressConfig{}, fmt.Errorf("%w: memory sizes must be positive (virtual=%d physical=%d)",
			types.ErrInvalidConfiguration, virtualSize, physicalSize)
	}

	pageSize := uint64(1) << offsetBits
	if virtualSize%pageSize != 0 {
		return AddressConfig{}, fmt.Errorf("%w: virtual size %d is not a multiple of page size %d",
			types.ErrInvalidConfiguration, virtualSize, pageSize)
	}
	if physicalSize%pageSize != 0 {
		return AddressConfig{}, fmt.Errorf("%w: physical size %d is not a multiple of page size %d",
			types.ErrInvalidConfiguration, physicalSize, pageSize)
	}
	if physicalSize > virtualSize {
		return AddressConfig{}, fmt.Errorf("%w: physical size %d exceeds virtual size %d",
			types.ErrInvalidConfiguration, physicalSize, virtualSize)
	}

	frameCount := physicalSize / pageSize
	if frameCount > maxFrameCount {
		return AddressConfig{}, fmt.Errorf("%w: %d frames exceeds the limit of %d",
			types.ErrInvalidConfiguration, frameCount, maxFrameCount)
	}

	return AddressConfig{
		virtualSize:      virtualSize,
		physicalSize:     physicalSize,
		offsetBits:       offsetBits,
		pageSize:         pageSize,
		frameCount:       int(frameCount),
		virtualPageCount: virtualSize / pageSize,
	}, nil
}

// FromSizes is New on a Sizes value
func FromSizes(s Sizes) (AddressConfig, error) {
	return New(s.VirtualSize, s.PhysicalSize, s.OffsetBits)
}

// Decode splits a virtual address into page number and offset.
func (c AddressConfig) Decode(va uint64) (page uint64, offset uint64) {
	return va >> c.offsetBits, va & (c.pageSize - 1)
}

// PhysicalAddress composes a frame index and an offset into a physical address.
func (c AddressConfig) PhysicalAddress(frame int, offset uint64) uint64 {
	return uint64(frame)<<c.offsetBits | offset
}

// Contains reports whether va lies inside the virtual address space.
func (c AddressConfig) Contains(va uint64) bool {
	return va < c.virtualSize
}

func (c AddressConfig) VirtualSize() uint64      { return c.virtualSize }
func (c AddressConfig) PhysicalSize() uint64     { return c.physicalSize }
func (c AddressConfig) OffsetBits() uint8        { return c.offsetBits }
func (c AddressConfig) PageSize() uint64         { return c.pageSize }
func (c AddressConfig) FrameCount() int          { return c.frameCount }
func (c AddressConfig) VirtualPageCount() uint64 { return c.virtualPageCount }

func (c AddressConfig) Sizes() Sizes {
	return Sizes{VirtualSize: c.virtualSize, PhysicalSize: c.physicalSize, OffsetBits: c.offsetBits}
}

func (c AddressConfig) String() string {
	return fmt.Sprintf("virtual=%d physical=%d offsetBits=%d pageSize=%d frames=%d pages=%d",
		c.virtualSize, c.physicalSize, c.offsetBits, c.pageSize, c.frameCount, c.virtualPageCount)
}
