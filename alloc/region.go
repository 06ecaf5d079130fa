package alloc

import "unsafe"

// Tier ownership is recovered from bare payload addresses, so the address
// arithmetic is centralized here. Regions must be validated with
// regionContains before regionOffset is used.

// regionAddr returns the base address of a slice's backing array.
func regionAddr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// regionContains reports whether address p lies within region.
func regionContains(region []byte, p uintptr) bool {
	base := regionAddr(region)
	return p >= base && p < base+uintptr(len(region))
}

// regionOffset returns the byte offset of address p inside region.
func regionOffset(region []byte, p uintptr) int {
	return int(p - regionAddr(region))
}
