//go:build windows

package osmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Reserve commits a region of at least n bytes, rounded up to the page
// size, readable and writable. The returned slice covers the whole
// reservation and must be passed back to Release unmodified.
func Reserve(n int) ([]byte, error) {
	size := pageAlign(n)
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// Release frees a region previously returned by Reserve. Partial release
// is not supported.
func Release(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(region)))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
