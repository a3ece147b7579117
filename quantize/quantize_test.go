package quantize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRange_QuantizeDequantize_BoundedError(t *testing.T) {
	precision := float32(1.0 / 1024.0)
	values := []float32{-1.5, 0, 0.333, 2.75, 10}

	r := ComputeRange(values, precision)

	for _, v := range values {
		q := r.Quantize(v)
		back := r.Dequantize(q)

		diff := back - v
		if diff < 0 {
			diff = -diff
		}
		require.LessOrEqual(t, diff, precision/2+1e-6)
	}
}

func TestQuantizeInterleaved_PerAxisIndependence(t *testing.T) {
	values := []float32{0, 10, 100, 1, 11, 101}
	ranges := ComputeRangesInterleaved(values, 3, 0.5)

	q := QuantizeInterleaved(values, 3, ranges)
	back := DequantizeInterleaved(q, 3, ranges)

	for i, v := range values {
		diff := back[i] - v
		if diff < 0 {
			diff = -diff
		}
		require.LessOrEqual(t, diff, float32(0.5))
	}
}
