package compress

import (
	"github.com/wangfeilong321/openctm/errs"
	"github.com/wangfeilong321/openctm/stream"
)

// WriteFramed compresses data with codec and writes it as
// "u32 packed_len" followed by packed_len bytes.
func WriteFramed(w *stream.Writer, codec Codec, data []byte) error {
	packed, err := codec.Compress(data)
	if err != nil {
		return err
	}

	//nolint:gosec // packed sections are bounded by mesh size, well under 2^32
	if err := w.WriteU32(uint32(len(packed))); err != nil {
		return err
	}

	return w.WriteAll(packed)
}

// ReadFramed reads a "u32 packed_len" prefix followed by that many bytes
// and decompresses them with codec, expecting exactly expectedLen
// uncompressed bytes back.
func ReadFramed(r *stream.Reader, codec Codec, expectedLen int) ([]byte, error) {
	packedLen, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	if packedLen > maxPackedLen {
		return nil, errs.FormatError("packed length %d exceeds sane limit", packedLen)
	}

	packed := make([]byte, packedLen)
	if packedLen > 0 {
		if err := r.ReadExact(packed); err != nil {
			return nil, err
		}
	}

	return codec.Decompress(packed, expectedLen)
}

// maxPackedLen bounds a single packed_len field against a hand-crafted
// file claiming an absurd section size; real compressed arrays for meshes
// that fit in memory never approach this.
const maxPackedLen = 1 << 31
