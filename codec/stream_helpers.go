package codec

import (
	"math"

	"github.com/wangfeilong321/openctm/compress"
	"github.com/wangfeilong321/openctm/interleave"
	"github.com/wangfeilong321/openctm/stream"
)

// writeCompressedU32Array interleaves vals and frames them through codec.
func writeCompressedU32Array(w *stream.Writer, codec compress.Codec, vals []uint32) error {
	return compress.WriteFramed(w, codec, interleave.PackU32(vals))
}

// readCompressedU32Array reads back an array written by
// writeCompressedU32Array, expecting exactly n elements.
func readCompressedU32Array(r *stream.Reader, codec compress.Codec, n int) ([]uint32, error) {
	raw, err := compress.ReadFramed(r, codec, 4*n)
	if err != nil {
		return nil, err
	}

	return interleave.UnpackU32(raw, n), nil
}

// writeCompressedI32Array interleaves vals (signed deltas) and frames them
// through codec.
func writeCompressedI32Array(w *stream.Writer, codec compress.Codec, vals []int32) error {
	return compress.WriteFramed(w, codec, interleave.PackI32(vals))
}

// readCompressedI32Array reads back an array written by
// writeCompressedI32Array.
func readCompressedI32Array(r *stream.Reader, codec compress.Codec, n int) ([]int32, error) {
	raw, err := compress.ReadFramed(r, codec, 4*n)
	if err != nil {
		return nil, err
	}

	return interleave.UnpackI32(raw, n), nil
}

// writeCompressedF32Array reinterprets vals as their IEEE-754 bit patterns
// and writes them the same way writeCompressedU32Array does; grouping by
// byte-plane still helps LZMA even though the payload is floats rather than
// indices.
func writeCompressedF32Array(w *stream.Writer, codec compress.Codec, vals []float32) error {
	bits := make([]uint32, len(vals))
	for i, v := range vals {
		bits[i] = math.Float32bits(v)
	}

	return writeCompressedU32Array(w, codec, bits)
}

// readCompressedF32Array inverts writeCompressedF32Array.
func readCompressedF32Array(r *stream.Reader, codec compress.Codec, n int) ([]float32, error) {
	bits, err := readCompressedU32Array(r, codec, n)
	if err != nil {
		return nil, err
	}

	out := make([]float32, n)
	for i, b := range bits {
		out[i] = math.Float32frombits(b)
	}

	return out, nil
}
