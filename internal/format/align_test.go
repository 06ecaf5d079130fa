package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlign8(t *testing.T) {
	cases := map[int]int{
		0:   0,
		1:   8,
		7:   8,
		8:   8,
		9:   16,
		15:  16,
		16:  16,
		17:  24,
		511: 512,
		512: 512,
	}
	for in, want := range cases {
		assert.Equal(t, want, Align8(in), "Align8(%d)", in)
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	b := make([]byte, 32)

	PutI32(b, 4, -2048)
	assert.Equal(t, int32(-2048), ReadI32(b, 4))

	PutI64(b, 16, int64(NilOffset))
	assert.Equal(t, int64(NilOffset), ReadI64(b, 16))
}
