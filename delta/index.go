// Package delta implements the integer delta predictors used by MG1 and
// MG2: the triangle-index predictor and the per-component predictor
// shared by vertex, UV, and attribute streams. Plain first-order delta
// with a fixed-width signed two's-complement int32 output.
package delta

// EncodeIndices converts a flat array of 3*M triangle indices into signed
// deltas from the running predictor: for index j within a triangle, the
// predicted value is the maximum index seen so far when j==0, otherwise
// the previous index within the same triangle. The running max starts at
// zero, matching the reference encoder.
func EncodeIndices(indices []uint32) []int32 {
	out := make([]int32, len(indices))

	var maxSeen uint32

	for t := 0; t*3 < len(indices); t++ {
		for j := 0; j < 3; j++ {
			i := t*3 + j

			predicted := maxSeen
			if j > 0 {
				predicted = indices[i-1]
			}

			out[i] = int32(indices[i]) - int32(predicted) //nolint:gosec

			if indices[i] > maxSeen {
				maxSeen = indices[i]
			}
		}
	}

	return out
}

// DecodeIndices inverts EncodeIndices.
func DecodeIndices(deltas []int32) []uint32 {
	out := make([]uint32, len(deltas))

	var maxSeen uint32

	for t := 0; t*3 < len(deltas); t++ {
		for j := 0; j < 3; j++ {
			i := t*3 + j

			predicted := maxSeen
			if j > 0 {
				predicted = out[i-1]
			}

			out[i] = uint32(int64(predicted) + int64(deltas[i])) //nolint:gosec

			if out[i] > maxSeen {
				maxSeen = out[i]
			}
		}
	}

	return out
}
