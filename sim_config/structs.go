package simconfig

import (
	replacement "VMSim/replacement_policies"
	"VMSim/types"
	vmconfig "VMSim/vm_config"
)

// Config is the on-disk form of a simulation run. Sizes accept humanized byte strings
// such as "64 KiB" or plain byte counts.
type Config struct {
	VirtualSize  string `json:"virtual_size"`
	PhysicalSize string `json:"physical_size"`
	OffsetBits   uint8  `json:"offset_bits"`
	TLBEntries   int    `json:"tlb_entries"`
	Policy       string `json:"policy"`
	Reference    string `json:"reference"`
	LogLevel     string `json:"log_level"`
	LogPath      string `json:"log_path"`
}

// Run is a validated Config ready to hand to the controller.
type Run struct {
	Address    vmconfig.AddressConfig
	Policy     replacement.Kind
	TLBEntries int
	References []types.Reference
}
