//go:build unix

package osmem

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Reserve maps an anonymous private region of at least n bytes, rounded up
// to the page size, readable and writable. The returned slice covers the
// whole mapping and must be passed back to Release unmodified.
func Reserve(n int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, pageAlign(n),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Release unmaps a region previously returned by Reserve. Partial release
// is not supported.
func Release(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	err := unix.Munmap(region)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
