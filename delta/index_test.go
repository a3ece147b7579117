package delta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndices_RoundTrip(t *testing.T) {
	indices := []uint32{0, 1, 2, 1, 2, 3, 0, 3, 1}

	deltas := EncodeIndices(indices)
	got := DecodeIndices(deltas)

	require.Equal(t, indices, got)
}

func TestIndices_FirstTriangleDeltasFromZero(t *testing.T) {
	indices := []uint32{5, 6, 2}

	deltas := EncodeIndices(indices)

	require.Equal(t, int32(5), deltas[0])
	require.Equal(t, int32(1), deltas[1])
	require.Equal(t, int32(-4), deltas[2])
}
