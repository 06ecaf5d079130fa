package alloc

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/internal/osmem"
)

// Runtime debug flag for allocation tracing - controlled by MEMKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("MEMKIT_LOG_ALLOC") != ""

// Allocator is a three-tier memory allocator: segregated fixed-size pools
// for small requests, one coalescing arena for medium requests, and direct
// OS reservations for anything larger than the configured threshold.
//
// An Allocator exclusively owns all backing memory between Init and
// Destroy; callers get read/write use of payload bytes only. Instances are
// single-threaded and non-reentrant, and the lifecycle is strictly
// Init → (Alloc | Free | DumpStats | DumpBlocks)* → Destroy; violating it
// panics.
type Allocator struct {
	cfg   Config
	pools []*fixedPool
	ar    *arena
	os    osList

	diag io.Writer // sink for release-failure diagnostics

	initialized bool
	stats       Stats
}

// Stats holds allocator operation counters.
type Stats struct {
	AllocCalls     int   // Total Alloc() calls
	FreeCalls      int   // Total Free() calls
	PoolHits       int   // Allocations serviced by a fixed pool
	PoolFallbacks  int   // Class-full requests passed on to the arena
	ArenaHits      int   // Allocations carved from the arena
	ArenaSplits    int   // Arena blocks split on carve
	ArenaMerges    int   // Arena neighbor merges on release
	OSReservations int   // Regions reserved from the OS tier
	OSReleases     int   // Regions released back to the OS tier
	BytesHandedOut int64 // Total payload bytes handed to callers
}

// New returns an uninitialized allocator. A nil cfg selects DefaultConfig.
func New(cfg *Config) *Allocator {
	if cfg == nil {
		c := DefaultConfig
		cfg = &c
	}
	return &Allocator{cfg: *cfg, diag: os.Stderr}
}

// SetDiagnostics redirects release-failure diagnostics. The default sink
// is standard error.
func (a *Allocator) SetDiagnostics(w io.Writer) {
	a.diag = w
}

// Init materializes the pools and the arena. It fails with
// ErrOSUnavailable when backing memory cannot be acquired, releasing
// whatever was already reserved.
func (a *Allocator) Init() error {
	if a.initialized {
		panic("alloc: Init on an already initialized allocator")
	}
	if err := a.cfg.validate(); err != nil {
		return err
	}

	pools := make([]*fixedPool, 0, len(a.cfg.Classes))
	unwind := func() {
		for _, p := range pools {
			p.destroy() //nolint:errcheck // unwinding a failed init
		}
	}
	for _, class := range a.cfg.Classes {
		p, err := newFixedPool(class, a.cfg.ClassCap)
		if err != nil {
			unwind()
			return fmt.Errorf("%w: pool %d: %v", ErrOSUnavailable, class, err)
		}
		pools = append(pools, p)
	}
	ar, err := newArena(a.cfg.ArenaSize)
	if err != nil {
		unwind()
		return fmt.Errorf("%w: arena: %v", ErrOSUnavailable, err)
	}

	a.pools = pools
	a.ar = ar
	a.os = osList{}
	a.stats = Stats{}
	a.initialized = true
	return nil
}

// Alloc returns a payload of at least size bytes, or nil with ErrNoSpace
// or ErrOSUnavailable when the request cannot be serviced. The allocator
// state is unchanged on the failure path. Payload bytes are not zeroed.
func (a *Allocator) Alloc(size int) ([]byte, error) {
	a.mustBeLive("Alloc")
	a.stats.AllocCalls++

	if size < 0 {
		return nil, ErrNoSpace
	}
	n := format.Align8(size)
	if n < format.CellAlignment {
		n = format.CellAlignment
	}

	if n <= a.cfg.maxClass() {
		class := a.classIndex(n)
		if p := a.pools[class].alloc(); p != nil {
			a.stats.PoolHits++
			a.stats.BytesHandedOut += int64(len(p))
			if logAlloc {
				fmt.Fprintf(os.Stderr, "[ALLOC] %d → pool %d\n", size, a.cfg.Classes[class])
			}
			return p, nil
		}
		// Class exhausted: the arena is the rescue path.
		a.stats.PoolFallbacks++
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[ALLOC] %d → pool %d full, falling through to arena\n",
				size, a.cfg.Classes[class])
		}
	}

	if n <= a.cfg.OSThreshold {
		splitsBefore := a.ar.splits
		p := a.ar.alloc(n)
		if p == nil {
			return nil, ErrNoSpace
		}
		a.stats.ArenaHits++
		a.stats.ArenaSplits += a.ar.splits - splitsBefore
		a.stats.BytesHandedOut += int64(len(p))
		return p, nil
	}

	region, err := osmem.Reserve(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOSUnavailable, err)
	}
	a.stats.OSReservations++
	a.stats.BytesHandedOut += int64(n)
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] %d → os reservation of %d\n", size, len(region))
	}
	return a.os.insert(region, n), nil
}

// Free returns a payload previously obtained from Alloc. The owning tier
// is recovered from the bare address: pool ranges first, then the arena
// range, then the OS block list. Freeing nil, or a pointer the allocator
// never issued, is a no-op.
func (a *Allocator) Free(p []byte) {
	a.mustBeLive("Free")
	a.stats.FreeCalls++
	if p == nil {
		return
	}
	addr := regionAddr(p)

	for _, pool := range a.pools {
		if pool.owns(addr) {
			pool.release(regionOffset(pool.region, addr))
			return
		}
	}

	if a.ar.owns(addr) {
		a.stats.ArenaMerges += a.ar.release(a.ar.blockFromPayload(addr))
		return
	}

	if region := a.os.remove(addr); region != nil {
		if err := osmem.Release(region); err != nil {
			fmt.Fprintf(a.diag, "alloc: os release failed: %v\n", err)
		}
		a.stats.OSReleases++
	}
	// Anything else is foreign memory; releasing it is a silent no-op.
}

// Destroy releases every pool region, the arena region, and all
// outstanding OS blocks, whether or not all issued payloads were freed.
// Release failures are diagnostics only; teardown proceeds.
func (a *Allocator) Destroy() {
	a.mustBeLive("Destroy")

	for _, p := range a.pools {
		if err := p.destroy(); err != nil {
			fmt.Fprintf(a.diag, "alloc: pool release failed: %v\n", err)
		}
	}
	a.pools = nil

	if err := a.ar.destroy(); err != nil {
		fmt.Fprintf(a.diag, "alloc: arena release failed: %v\n", err)
	}
	a.ar = nil

	for b := a.os.head; b != nil; b = b.next {
		if err := osmem.Release(b.region); err != nil {
			fmt.Fprintf(a.diag, "alloc: os release failed: %v\n", err)
		}
		a.stats.OSReleases++
	}
	a.os = osList{}

	a.initialized = false
}

// Stats returns a copy of the allocator's operation counters.
func (a *Allocator) Stats() Stats {
	return a.stats
}

// classIndex returns the index of the smallest class that fits n. The
// caller guarantees n <= maxClass.
func (a *Allocator) classIndex(n int) int {
	return sort.SearchInts(a.cfg.Classes, n)
}

func (a *Allocator) mustBeLive(op string) {
	if !a.initialized {
		panic("alloc: " + op + " outside the Init/Destroy lifecycle")
	}
}
