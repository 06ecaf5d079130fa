// Package format holds layout constants and little-endian encoding helpers
// shared by the allocator tiers. All in-band metadata — arena block headers
// and pool free-list links — is read and written through this package.
package format

const (
	// CellAlignment is the byte alignment of every payload the allocator
	// hands out. Request sizes are rounded up to a multiple of this before
	// classification.
	CellAlignment     = 8
	CellAlignmentMask = CellAlignment - 1

	// LinkSize is the width of the intrusive free-list link word threaded
	// through free pool slots. One pointer-width.
	LinkSize = 8

	// BlockHeaderSize is the size of an arena block header. The last four
	// bytes are reserved so payloads stay 8-byte aligned.
	BlockHeaderSize = 16

	// Arena block header field offsets.
	BlockSizeOffset = 0 // int32, negative while the block is in use
	BlockPrevOffset = 4 // int32 block offset, NilOffset when first
	BlockNextOffset = 8 // int32 block offset, NilOffset when last

	// NilOffset terminates arena block links and pool free lists.
	NilOffset = -1
)
