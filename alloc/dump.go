package alloc

import (
	"fmt"
	"io"
)

// DumpStats writes a human-readable per-tier summary of occupied and free
// block counts.
func (a *Allocator) DumpStats(w io.Writer) {
	a.mustBeLive("DumpStats")

	fmt.Fprintf(w, "Memory statistics:\n")

	fmt.Fprintf(w, "Fixed-size Memory Allocation:\n")
	for _, p := range a.pools {
		fmt.Fprintf(w, "  Block size: %d, Occupied: %d, Free: %d\n",
			p.blockSize, p.capacity-p.freeCount, p.freeCount)
	}

	fmt.Fprintf(w, "Coalesce Allocation:\n")
	occupied, free := a.ar.counts()
	fmt.Fprintf(w, "  Occupied: %d, Free: %d\n", occupied, free)

	fmt.Fprintf(w, "OS Allocations:\n")
	fmt.Fprintf(w, "  Total blocks: %d\n", a.os.count)
}

// DumpBlocks writes every currently outstanding block with its address and
// size, grouped by tier.
func (a *Allocator) DumpBlocks(w io.Writer) {
	a.mustBeLive("DumpBlocks")

	fmt.Fprintf(w, "Allocated blocks:\n")

	fmt.Fprintf(w, "Fixed-size Memory Allocation:\n")
	for _, p := range a.pools {
		fmt.Fprintf(w, "  Block size: %d\n", p.blockSize)
		fmt.Fprintf(w, "    Occupied blocks:\n")
		free := p.freeOffsets()
		for i := range p.capacity {
			off := i * p.stride
			if free[off] {
				continue
			}
			fmt.Fprintf(w, "      Block at %#x, size: %d\n",
				regionAddr(p.region)+uintptr(off), p.blockSize)
		}
	}

	fmt.Fprintf(w, "Coalesce Allocation:\n")
	a.ar.walk(func(off, size int, used bool) bool {
		if used {
			fmt.Fprintf(w, "  Block at %#x, size: %d\n", a.ar.payloadAddr(off), size)
		}
		return true
	})

	fmt.Fprintf(w, "OS Allocations:\n")
	for b := a.os.head; b != nil; b = b.next {
		fmt.Fprintf(w, "  Block at %#x, size: %d\n", regionAddr(b.region), b.size)
	}
}
