package vmconfig

// ############################################# ADDRESS CONFIG #############################################

// AddressConfig describes the virtual and physical address spaces of one simulation run.
// It is immutable once built by New.
type AddressConfig struct {
	virtualSize  uint64
	physicalSize uint64
	offsetBits   uint8

	// derived
	pageSize         uint64
	frameCount       int
	virtualPageCount uint64
}

// Sizes is the raw configuration input before validation
type Sizes struct {
	VirtualSize  uint64
	PhysicalSize uint64
	OffsetBits   uint8
}
