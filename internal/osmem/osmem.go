// Package osmem reserves and releases page-aligned, readable/writable
// memory regions directly from the operating system.
//
// This is the only package that touches virtual-memory primitives; every
// other component allocates from regions osmem has already handed over.
// There is no caching and no accounting: Reserve maps a fresh region and
// Release unmaps it in its entirety.
package osmem

import "os"

// pageAlign returns n rounded up to the OS page granularity.
func pageAlign(n int) int {
	page := os.Getpagesize()
	return (n + page - 1) &^ (page - 1)
}
