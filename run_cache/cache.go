package runcache

import (
	replacement "VMSim/replacement_policies"
	controller "VMSim/simulation_controller"
	"VMSim/statistics"
	"VMSim/types"
	vmconfig "VMSim/vm_config"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"
)

/*
Runs are deterministic, so a finished run's summary can be reused for any later run with
the same address layout, policy, TLB size and reference stream. The fingerprint hashes all of
them; the summary is stored in ristretto with unit cost.
*/

// Fingerprint identifies a run by everything that influences its outcome.
func Fingerprint(cfg vmconfig.AddressConfig, kind replacement.Kind, tlbEntries int, refs []types.Reference) uint64 {
	d := xxhash.New()

	buf := make([]byte, 0, 64)
	buf = binary.LittleEndian.AppendUint64(buf, cfg.VirtualSize())
	buf = binary.LittleEndian.AppendUint64(buf, cfg.PhysicalSize())
	buf = append(buf, cfg.OffsetBits(), byte(kind))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(tlbEntries)))
	d.Write(buf)

	for _, ref := range refs {
		buf = binary.LittleEndian.AppendUint64(buf[:0], ref.Address)
		buf = append(buf, byte(ref.Op))
		d.Write(buf)
	}
	return d.Sum64()
}

type Cache struct {
	store  *ristretto.Cache[uint64, statistics.Summary]
	logger *slog.Logger
}

func New(maxEntries int64) (*Cache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("%w: run cache needs a positive capacity, got %d", types.ErrInvalidConfiguration, maxEntries)
	}

	store, err := ristretto.NewCache(&ristretto.Config[uint64, statistics.Summary]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create run cache: %w", err)
	}
	return &Cache{store: store, logger: slog.Default().With("component", "run_cache")}, nil
}

func (c *Cache) Get(key uint64) (statistics.Summary, bool) {
	return c.store.Get(key)
}

// Put stores s and waits until it is visible to Get. Admission may still reject it.
func (c *Cache) Put(key uint64, s statistics.Summary) bool {
	ok := c.store.Set(key, s, 1)
	c.store.Wait()
	return ok
}

func (c *Cache) Close() {
	c.store.Close()
}

// Summarize returns the statistics of a complete run, running it only on a cache miss.
func (c *Cache) Summarize(cfg vmconfig.AddressConfig, kind replacement.Kind, tlbEntries int, refs []types.Reference) (statistics.Summary, bool, error) {
	key := Fingerprint(cfg, kind, tlbEntries, refs)
	if s, ok := c.Get(key); ok {
		c.logger.Debug("run cache HIT", "policy", kind.String(), "frames", cfg.FrameCount(), "key", key)
		return s, true, nil
	}

	ctrl, err := controller.New(cfg, refs, kind, tlbEntries)
	if err != nil {
		return statistics.Summary{}, false, err
	}
	if _, err := ctrl.RunAll(); err != nil {
		return statistics.Summary{}, false, err
	}

	s := ctrl.Stats()
	c.Put(key, s)
	c.logger.Debug("run cache MISS", "policy", kind.String(), "frames", cfg.FrameCount(), "key", key)
	return s, false, nil
}
