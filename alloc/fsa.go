package alloc

import (
	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/internal/osmem"
)

// fixedPool is one segregated pool of same-sized slots with an intrusive
// singly linked free list threaded through the slots themselves.
//
// The backing region is claimed once from the OS page facade. Slots are
// laid out back to back with a stride of blockSize + format.LinkSize; the
// link word at the head of a free slot holds the offset of the next free
// slot, format.NilOffset terminating the list. The link bytes carry no
// meaning while the slot is handed out.
type fixedPool struct {
	blockSize int    // payload bytes per slot
	capacity  int    // total slot count
	stride    int    // blockSize + link word
	mapping   []byte // full osmem reservation, kept for release
	region    []byte // exactly capacity*stride bytes; the ownership range
	freeHead  int64  // offset of the first free slot, format.NilOffset when full
	freeCount int
}

func newFixedPool(blockSize, capacity int) (*fixedPool, error) {
	stride := blockSize + format.LinkSize
	mapping, err := osmem.Reserve(capacity * stride)
	if err != nil {
		return nil, err
	}
	p := &fixedPool{
		blockSize: blockSize,
		capacity:  capacity,
		stride:    stride,
		mapping:   mapping,
		region:    mapping[:capacity*stride],
	}
	p.threadAll()
	return p, nil
}

// threadAll chains every slot onto the free list in address order, so the
// first hand-out after init is the lowest slot.
func (p *fixedPool) threadAll() {
	for i := range p.capacity {
		off := i * p.stride
		next := int64(off + p.stride)
		if i == p.capacity-1 {
			next = format.NilOffset
		}
		format.PutI64(p.region, off, next)
	}
	p.freeHead = 0
	p.freeCount = p.capacity
}

// alloc pops the head slot and returns its payload, or nil when the pool
// is fully occupied. The slot is not zeroed.
func (p *fixedPool) alloc() []byte {
	if p.freeHead == format.NilOffset {
		return nil
	}
	off := int(p.freeHead)
	p.freeHead = format.ReadI64(p.region, off)
	p.freeCount--
	return p.region[off : off+p.blockSize]
}

// release pushes the slot starting at off back onto the free list head.
func (p *fixedPool) release(off int) {
	format.PutI64(p.region, off, p.freeHead)
	p.freeHead = int64(off)
	p.freeCount++
}

// owns reports whether addr falls inside the pool's slot range.
func (p *fixedPool) owns(addr uintptr) bool {
	return regionContains(p.region, addr)
}

// freeOffsets returns the set of slot offsets currently on the free list.
func (p *fixedPool) freeOffsets() map[int]bool {
	free := make(map[int]bool, p.freeCount)
	for off := p.freeHead; off != format.NilOffset; off = format.ReadI64(p.region, int(off)) {
		free[int(off)] = true
	}
	return free
}

// destroy releases the backing region.
func (p *fixedPool) destroy() error {
	err := osmem.Release(p.mapping)
	p.mapping, p.region = nil, nil
	p.freeHead = format.NilOffset
	p.freeCount = 0
	return err
}
