// Package quantize converts between floating-point mesh data and the
// fixed-point integers MG2 stores on disk: per-axis quantization relative
// to the axis minimum for vertices/UVs/attributes (the axis maximum is
// neither computed nor stored), and, in normal.go, the spherical
// reparameterization used for normals.
package quantize

import "math"

// Range holds the per-axis quantization parameters written into a
// section's MG2 header: the axis minimum and the precision (quantization
// step). The decoder reconstructs min + qi*precision.
type Range struct {
	Min       float32
	Precision float32
}

// ComputeRange returns the Range for one axis of values, given the fixed
// precision for that channel.
func ComputeRange(values []float32, precision float32) Range {
	if len(values) == 0 {
		return Range{Precision: precision}
	}

	minV := values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
	}

	return Range{Min: minV, Precision: precision}
}

// Quantize converts v to a signed fixed-point integer: round((v-min)/precision).
func (r Range) Quantize(v float32) int32 {
	q := math.Round(float64((v - r.Min) / r.Precision))

	return int32(q) //nolint:gosec
}

// Dequantize inverts Quantize, reconstructing a float within ±½ precision
// of the original value.
func (r Range) Dequantize(q int32) float32 {
	return r.Min + float32(q)*r.Precision
}

// QuantizeAxis quantizes every value of one axis against its own Range.
func QuantizeAxis(values []float32, r Range) []int32 {
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = r.Quantize(v)
	}

	return out
}

// DequantizeAxis inverts QuantizeAxis.
func DequantizeAxis(q []int32, r Range) []float32 {
	out := make([]float32, len(q))
	for i, v := range q {
		out[i] = r.Dequantize(v)
	}

	return out
}

// QuantizeInterleaved quantizes a component-major array of N vectors with
// the given stride (3 for vertices, 2 for UVs, 4 for attributes), one
// independent Range per component.
func QuantizeInterleaved(values []float32, stride int, ranges []Range) []int32 {
	n := len(values) / stride
	out := make([]int32, len(values))

	for c := 0; c < stride; c++ {
		for i := 0; i < n; i++ {
			idx := i*stride + c
			out[idx] = ranges[c].Quantize(values[idx])
		}
	}

	return out
}

// DequantizeInterleaved inverts QuantizeInterleaved.
func DequantizeInterleaved(q []int32, stride int, ranges []Range) []float32 {
	n := len(q) / stride
	out := make([]float32, len(q))

	for c := 0; c < stride; c++ {
		for i := 0; i < n; i++ {
			idx := i*stride + c
			out[idx] = ranges[c].Dequantize(q[idx])
		}
	}

	return out
}

// ComputeRangesInterleaved computes one Range per component of a
// component-major array.
func ComputeRangesInterleaved(values []float32, stride int, precision float32) []Range {
	n := len(values) / stride
	ranges := make([]Range, stride)

	for c := 0; c < stride; c++ {
		axis := make([]float32, n)
		for i := 0; i < n; i++ {
			axis[i] = values[i*stride+c]
		}
		ranges[c] = ComputeRange(axis, precision)
	}

	return ranges
}
