package alloc

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireSectionOrder asserts the three tier sections appear in order.
func requireSectionOrder(t *testing.T, out string) {
	t.Helper()

	fsa := strings.Index(out, "Fixed-size Memory Allocation:")
	ca := strings.Index(out, "Coalesce Allocation:")
	osTier := strings.Index(out, "OS Allocations:")
	require.GreaterOrEqual(t, fsa, 0)
	require.Greater(t, ca, fsa)
	require.Greater(t, osTier, ca)
}

func TestDumpStats(t *testing.T) {
	a := newTestAllocator(t, nil)

	p1 := mustAlloc(t, a, 16)
	p2 := mustAlloc(t, a, 16)
	mustAlloc(t, a, 600)
	mustAlloc(t, a, 11<<20)
	_ = p1

	var buf bytes.Buffer
	a.DumpStats(&buf)
	out := buf.String()

	requireSectionOrder(t, out)
	assert.Contains(t, out, "Block size: 16, Occupied: 2, Free: 8")
	assert.Contains(t, out, "Block size: 32, Occupied: 0, Free: 10")
	assert.Contains(t, out, "Occupied: 1, Free: 1")
	assert.Contains(t, out, "Total blocks: 1")

	a.Free(p2)
	buf.Reset()
	a.DumpStats(&buf)
	assert.Contains(t, buf.String(), "Block size: 16, Occupied: 1, Free: 9")
}

func TestDumpBlocks(t *testing.T) {
	a := newTestAllocator(t, nil)

	p := mustAlloc(t, a, 16)
	q := mustAlloc(t, a, 600)
	big := mustAlloc(t, a, 11<<20)

	var buf bytes.Buffer
	a.DumpBlocks(&buf)
	out := buf.String()

	requireSectionOrder(t, out)
	assert.Contains(t, out, fmt.Sprintf("Block at %#x, size: 16", regionAddr(p)))
	assert.Contains(t, out, fmt.Sprintf("Block at %#x, size: 600", regionAddr(q)))
	assert.Contains(t, out, fmt.Sprintf("Block at %#x, size: %d", regionAddr(big), 11<<20))
}

func TestDumpBlocksOmitsFreedBlocks(t *testing.T) {
	a := newTestAllocator(t, nil)

	p := mustAlloc(t, a, 16)
	a.Free(p)

	var buf bytes.Buffer
	a.DumpBlocks(&buf)
	assert.NotContains(t, buf.String(), fmt.Sprintf("Block at %#x", regionAddr(p)))
}
