//go:build unix

package osmem

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReserveRoundsToPageSize(t *testing.T) {
	region, err := Reserve(1)
	require.NoError(t, err)
	require.Equal(t, os.Getpagesize(), len(region))
	require.NoError(t, Release(region))
}

func TestReserveIsWritable(t *testing.T) {
	region, err := Reserve(4096)
	require.NoError(t, err)
	for i := range region {
		region[i] = byte(i)
	}
	require.Equal(t, byte(41), region[41])
	require.NoError(t, Release(region))
}

func TestReleaseEmptyRegion(t *testing.T) {
	require.NoError(t, Release(nil))
	require.NoError(t, Release([]byte{}))
}
