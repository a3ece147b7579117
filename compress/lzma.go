package compress

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/ulikunitz/xz/lzma"

	"github.com/wangfeilong321/openctm/errs"
	"github.com/wangfeilong321/openctm/internal/pool"
)

// lzmaPropsLcLpPb is the reference OpenCTM's fixed LZMA literal-context/
// literal-position/position-bits byte: (pb*5+lp)*9+lc for lc=3, lp=0, pb=2.
const lzmaPropsLcLpPb = 0x5D

// dictSizeFor mirrors the reference encoder's dictionary-size selection
// (MAME/LZMA SDK's LzmaEncProps_Normalize): the smallest value of the form
// 2<<i or 3<<i, with 16 <= i <= 30, that is at least as large as the
// uncompressed payload, so it is never below 2<<16 (128 KiB). This
// keeps the window big enough to see the whole block without reserving a
// huge dictionary for small sections.
func dictSizeFor(uncompressedLen int) uint32 {
	size := uint32(uncompressedLen)
	if size < 1<<16 {
		size = 1 << 16
	}

	for i := uint32(16); i <= 30; i++ {
		if size <= (2 << i) {
			return 2 << i
		}
		if size <= (3 << i) {
			return 3 << i
		}
	}

	return 1 << 30
}

// LZMACodec is the core's only entropy coder. Every MG1/MG2 array is
// interleave-packed and then run through this codec before being framed
// onto the wire. Level (0-9) is stored on the codec but Compress does not
// read it: every level produces the same output. It is recorded nowhere on
// disk and has no effect on decoding.
type LZMACodec struct {
	Level int
}

var _ Codec = (*LZMACodec)(nil)

// NewLZMACodec creates a codec at the given compression level, clamped to
// the valid 0-9 range.
func NewLZMACodec(level int) *LZMACodec {
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}

	return &LZMACodec{Level: level}
}

// Compress packs data into a bare LZMA block: no container header is kept,
// since the decoder always knows the uncompressed length from the
// section's element count and recomputes the same fixed properties.
func (c *LZMACodec) Compress(data []byte) ([]byte, error) {
	buf := pool.Get()
	defer pool.Put(buf)

	cfg := lzma.WriterConfig{
		Properties: &lzma.Properties{LC: 3, LP: 0, PB: 2},
		DictCap:    int(dictSizeFor(len(data))),
		Size:       int64(len(data)),
	}

	w, err := cfg.NewWriter(buf)
	if err != nil {
		return nil, errs.LZMAError("create writer: %v", err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, errs.LZMAError("compress: %v", err)
	}
	if err := w.Close(); err != nil {
		return nil, errs.LZMAError("close writer: %v", err)
	}

	full := buf.Bytes()
	if len(full) < 13 {
		return nil, errs.LZMAError("writer produced truncated stream")
	}

	// Strip the classic 13-byte header (properties + dict size + declared
	// uncompressed size): it is fully redundant with information the
	// section framing already carries, and dropping it saves 13 bytes on
	// every compressed array. Copy out of the pooled buffer before it is
	// reset and reused by the next Compress call.
	out := make([]byte, len(full)-13)
	copy(out, full[13:])

	return out, nil
}

// Decompress reconstructs the classic LZMA header from expectedLen and the
// fixed properties byte, then decodes exactly expectedLen bytes.
func (c *LZMACodec) Decompress(packed []byte, expectedLen int) ([]byte, error) {
	header := make([]byte, 13)
	header[0] = lzmaPropsLcLpPb
	binary.LittleEndian.PutUint32(header[1:5], dictSizeFor(expectedLen))
	binary.LittleEndian.PutUint64(header[5:13], uint64(expectedLen)) //nolint:gosec

	full := make([]byte, 0, 13+len(packed))
	full = append(full, header...)
	full = append(full, packed...)

	r, err := lzma.NewReader(bytes.NewReader(full))
	if err != nil {
		return nil, errs.LZMAError("create reader: %v", err)
	}

	out := make([]byte, expectedLen)
	n, err := io.ReadFull(r, out)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF { //nolint:errorlint
		return nil, errs.LZMAError("decompress: %v", err)
	}
	if n != expectedLen {
		return nil, errs.LZMAError("uncompressed length mismatch: got %d want %d", n, expectedLen)
	}

	return out, nil
}
