//go:build !unix && !windows

package osmem

// Reserve allocates from the Go heap when no virtual-memory primitive is
// available on the target platform.
func Reserve(n int) ([]byte, error) {
	return make([]byte, pageAlign(n)), nil
}

// Release is a no-op for heap-backed regions; the garbage collector
// reclaims them once unreferenced.
func Release(region []byte) error {
	return nil
}
