package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/format"
)

func newTestPool(t *testing.T, blockSize, capacity int) *fixedPool {
	t.Helper()

	p, err := newFixedPool(blockSize, capacity)
	require.NoError(t, err)
	t.Cleanup(func() {
		if p.mapping != nil {
			require.NoError(t, p.destroy())
		}
	})
	return p
}

func TestPoolHandsOutSlotsInAddressOrder(t *testing.T) {
	p := newTestPool(t, 16, 10)

	base := regionAddr(p.region)
	for i := range 10 {
		b := p.alloc()
		require.NotNil(t, b)
		require.Len(t, b, 16)
		require.Equal(t, base+uintptr(i*p.stride), regionAddr(b), "slot %d", i)
	}
	require.Nil(t, p.alloc(), "pool must be exhausted after capacity hand-outs")
	require.Equal(t, 0, p.freeCount)
}

func TestPoolReleaseIsLIFO(t *testing.T) {
	p := newTestPool(t, 32, 10)

	b1 := p.alloc()
	b2 := p.alloc()
	require.NotNil(t, b2)

	off := regionOffset(p.region, regionAddr(b1))
	p.release(off)

	b3 := p.alloc()
	require.Equal(t, regionAddr(b1), regionAddr(b3), "freed slot must be reused first")
}

func TestPoolCountInvariant(t *testing.T) {
	p := newTestPool(t, 64, 10)

	var held []int
	for i := 0; i < 7; i++ {
		b := p.alloc()
		require.NotNil(t, b)
		held = append(held, regionOffset(p.region, regionAddr(b)))
	}
	assert.Equal(t, 10, p.freeCount+len(held))

	for _, off := range held {
		p.release(off)
	}
	assert.Equal(t, 10, p.freeCount)
	assert.Len(t, p.freeOffsets(), 10)
}

func TestPoolOwnsRange(t *testing.T) {
	p := newTestPool(t, 16, 10)
	base := regionAddr(p.region)

	require.True(t, p.owns(base))
	require.True(t, p.owns(base+uintptr(len(p.region)-1)))
	require.False(t, p.owns(base+uintptr(len(p.region))))
	require.False(t, p.owns(base-1))
}

func TestPoolFreeListThreading(t *testing.T) {
	p := newTestPool(t, 16, 3)

	// Initially chained in address order through the link words.
	require.Equal(t, int64(0), p.freeHead)
	require.Equal(t, int64(p.stride), format.ReadI64(p.region, 0))
	require.Equal(t, int64(2*p.stride), format.ReadI64(p.region, p.stride))
	require.Equal(t, int64(format.NilOffset), format.ReadI64(p.region, 2*p.stride))
}
