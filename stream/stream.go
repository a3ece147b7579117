// Package stream provides little-endian fixed-width primitive I/O over the
// external stream interface: a file, an in-memory buffer, or a
// caller-supplied read/write callback. The core only ever consumes
// read_exact(n) -> bytes|EOF and write_all(bytes) from this package; it
// never reasons about the underlying transport.
package stream

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/wangfeilong321/openctm/errs"
)

// Reader reads little-endian primitives from an underlying io.Reader,
// reporting FILE_ERROR (via errs) on any short read.
type Reader struct {
	r   io.Reader
	buf [4]byte
}

// NewReader wraps r for primitive reads.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadExact reads exactly len(buf) bytes, returning errs.CodeFileError if
// the underlying reader returns fewer bytes than requested (the Go
// equivalent of a short count from a callback-based read).
func (r *Reader) ReadExact(buf []byte) error {
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return errs.FileError("short read: %v", err)
	}

	return nil
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	if err := r.ReadExact(r.buf[:4]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(r.buf[:4]), nil
}

// ReadF32 reads a little-endian IEEE-754 float32.
func (r *Reader) ReadF32() (float32, error) {
	bits, err := r.ReadU32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(bits), nil
}

// ReadString reads a u32 length prefix followed by exactly that many UTF-8
// bytes. A length that would exceed a sane bound is rejected as a
// FORMAT_ERROR rather than causing an unbounded allocation.
func (r *Reader) ReadString(maxLen uint32) (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}

	if n > maxLen {
		return "", errs.FormatError("string length %d exceeds limit %d", n, maxLen)
	}

	buf := make([]byte, n)
	if n > 0 {
		if err := r.ReadExact(buf); err != nil {
			return "", err
		}
	}

	return string(buf), nil
}

// ReadU32Array reads n consecutive little-endian uint32 values.
func (r *Reader) ReadU32Array(n int) ([]uint32, error) {
	raw := make([]byte, 4*n)
	if err := r.ReadExact(raw); err != nil {
		return nil, err
	}

	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[4*i : 4*i+4])
	}

	return out, nil
}

// ReadF32Array reads n consecutive little-endian float32 values.
func (r *Reader) ReadF32Array(n int) ([]float32, error) {
	raw := make([]byte, 4*n)
	if err := r.ReadExact(raw); err != nil {
		return nil, err
	}

	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i : 4*i+4]))
	}

	return out, nil
}

// Writer writes little-endian primitives to an underlying io.Writer,
// reporting FILE_ERROR on any short write.
type Writer struct {
	w   io.Writer
	buf [4]byte
}

// NewWriter wraps w for primitive writes.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteAll writes every byte of buf, returning errs.CodeFileError on a
// short write.
func (w *Writer) WriteAll(buf []byte) error {
	n, err := w.w.Write(buf)
	if err != nil {
		return errs.FileError("write failed: %v", err)
	}
	if n != len(buf) {
		return errs.FileError("short write: wrote %d of %d bytes", n, len(buf))
	}

	return nil
}

// WriteU32 writes a little-endian uint32.
func (w *Writer) WriteU32(v uint32) error {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	return w.WriteAll(w.buf[:4])
}

// WriteF32 writes a little-endian IEEE-754 float32.
func (w *Writer) WriteF32(v float32) error {
	return w.WriteU32(math.Float32bits(v))
}

// WriteString writes a u32 length prefix followed by the UTF-8 bytes of s.
func (w *Writer) WriteString(s string) error {
	//nolint:gosec // string length is bounded by callers before reaching here
	if err := w.WriteU32(uint32(len(s))); err != nil {
		return err
	}

	if len(s) == 0 {
		return nil
	}

	return w.WriteAll([]byte(s))
}

// WriteU32Array writes each value of vals as a little-endian uint32.
func (w *Writer) WriteU32Array(vals []uint32) error {
	raw := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(raw[4*i:4*i+4], v)
	}

	return w.WriteAll(raw)
}

// WriteF32Array writes each value of vals as a little-endian float32.
func (w *Writer) WriteF32Array(vals []float32) error {
	raw := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(raw[4*i:4*i+4], math.Float32bits(v))
	}

	return w.WriteAll(raw)
}
