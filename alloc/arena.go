package alloc

import (
	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/internal/osmem"
)

// arena is a single contiguous region managed as a doubly linked list of
// variable-sized blocks kept in address order, with no sentinel. Blocks
// are carved first-fit with the remainder split off, and merged with free
// neighbors on release, so no two adjacent free blocks survive a release.
//
// Block header layout (16 bytes, little-endian int32 fields):
//
//	0x00  size word; the absolute value is the payload size and a
//	      negative value marks the block in use
//	0x04  previous block offset, format.NilOffset when first
//	0x08  next block offset, format.NilOffset when last
//	0x0C  reserved, keeps payloads 8-byte aligned
type arena struct {
	mapping []byte // full osmem reservation, kept for release
	region  []byte // exactly the configured arena size; the ownership range
	splits  int
	merges  int
}

func newArena(size int) (*arena, error) {
	mapping, err := osmem.Reserve(size)
	if err != nil {
		return nil, err
	}
	a := &arena{mapping: mapping, region: mapping[:size]}
	a.reset()
	return a, nil
}

// reset lays down a single free block covering the whole region.
func (a *arena) reset() {
	a.setFree(0, len(a.region)-format.BlockHeaderSize)
	a.setPrev(0, format.NilOffset)
	a.setNext(0, format.NilOffset)
}

// alloc carves a payload of n bytes from the first free block that fits,
// or returns nil when none is large enough. When the leftover space after
// the carve can hold a header plus one alignment unit of payload, the tail
// is split off as a new free block.
func (a *arena) alloc(n int) []byte {
	for off := 0; off != format.NilOffset; off = a.next(off) {
		if a.inUse(off) || a.size(off) < n {
			continue
		}

		if a.size(off) > n+format.BlockHeaderSize {
			a.split(off, n)
		}
		a.setUsed(off, a.size(off))
		return a.payload(off)
	}
	return nil
}

// split carves the tail of the free block at off into a new free block,
// leaving exactly n payload bytes in the original.
func (a *arena) split(off, n int) {
	tail := off + format.BlockHeaderSize + n
	a.setFree(tail, a.size(off)-n-format.BlockHeaderSize)
	a.setPrev(tail, int32(off))
	a.setNext(tail, int32(a.next(off)))
	if nxt := a.next(off); nxt != format.NilOffset {
		a.setPrev(nxt, int32(tail))
	}
	a.setNext(off, int32(tail))
	a.setFree(off, n)
	a.splits++
}

// release marks the block at off free and merges it with free neighbors.
// Both passes are single-step: the no-adjacent-free invariant guarantees no
// two adjacent free blocks exist before the release, so at most the
// immediate predecessor and successor can be absorbed. Returns the number
// of merges performed.
func (a *arena) release(off int) int {
	a.setFree(off, a.size(off))
	merged := 0

	// Absorb into a free predecessor; the predecessor then represents the
	// combined region.
	if prev := a.prev(off); prev != format.NilOffset && !a.inUse(prev) {
		a.setFree(prev, a.size(prev)+a.size(off)+format.BlockHeaderSize)
		a.setNext(prev, int32(a.next(off)))
		if nxt := a.next(off); nxt != format.NilOffset {
			a.setPrev(nxt, int32(prev))
		}
		off = prev
		merged++
	}

	// Absorb a free successor into whatever block now covers the region.
	if nxt := a.next(off); nxt != format.NilOffset && !a.inUse(nxt) {
		a.setFree(off, a.size(off)+a.size(nxt)+format.BlockHeaderSize)
		a.setNext(off, int32(a.next(nxt)))
		if nn := a.next(nxt); nn != format.NilOffset {
			a.setPrev(nn, int32(off))
		}
		merged++
	}

	a.merges += merged
	return merged
}

// owns reports whether addr falls strictly inside the arena region. Every
// payload the arena hands out begins past the first header, so the base
// address itself is never a payload.
func (a *arena) owns(addr uintptr) bool {
	base := regionAddr(a.region)
	return addr > base && addr < base+uintptr(len(a.region))
}

// blockFromPayload recovers the block offset for the payload at addr. The
// caller must have established ownership with owns.
func (a *arena) blockFromPayload(addr uintptr) int {
	return regionOffset(a.region, addr) - format.BlockHeaderSize
}

// payload returns the bytes immediately following the block's header.
func (a *arena) payload(off int) []byte {
	start := off + format.BlockHeaderSize
	return a.region[start : start+a.size(off)]
}

// payloadAddr returns the address of the block's payload.
func (a *arena) payloadAddr(off int) uintptr {
	return regionAddr(a.region) + uintptr(off+format.BlockHeaderSize)
}

// walk visits every block in address order until fn returns false.
func (a *arena) walk(fn func(off, size int, used bool) bool) {
	for off := 0; off != format.NilOffset; off = a.next(off) {
		if !fn(off, a.size(off), a.inUse(off)) {
			return
		}
	}
}

// counts returns the number of occupied and free blocks in the list.
func (a *arena) counts() (occupied, free int) {
	a.walk(func(_, _ int, used bool) bool {
		if used {
			occupied++
		} else {
			free++
		}
		return true
	})
	return occupied, free
}

// destroy releases the backing region.
func (a *arena) destroy() error {
	err := osmem.Release(a.mapping)
	a.mapping, a.region = nil, nil
	return err
}

// Header accessors. The size word's sign carries the in-use flag; size and
// setters below always speak in positive payload sizes.

func (a *arena) size(off int) int {
	s := format.ReadI32(a.region, off+format.BlockSizeOffset)
	if s < 0 {
		s = -s
	}
	return int(s)
}

func (a *arena) inUse(off int) bool {
	return format.ReadI32(a.region, off+format.BlockSizeOffset) < 0
}

func (a *arena) setUsed(off, size int) {
	format.PutI32(a.region, off+format.BlockSizeOffset, int32(-size))
}

func (a *arena) setFree(off, size int) {
	format.PutI32(a.region, off+format.BlockSizeOffset, int32(size))
}

func (a *arena) prev(off int) int {
	return int(format.ReadI32(a.region, off+format.BlockPrevOffset))
}

func (a *arena) next(off int) int {
	return int(format.ReadI32(a.region, off+format.BlockNextOffset))
}

func (a *arena) setPrev(off int, v int32) {
	format.PutI32(a.region, off+format.BlockPrevOffset, v)
}

func (a *arena) setNext(off int, v int32) {
	format.PutI32(a.region, off+format.BlockNextOffset, v)
}
