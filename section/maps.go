package section

import (
	"github.com/wangfeilong321/openctm/errs"
	"github.com/wangfeilong321/openctm/stream"
)

// TexMapMeta carries the per-map metadata written before a TEXC section's
// array data: name, optional source filename, and (MG2 only) the
// per-channel quantization precision.
type TexMapMeta struct {
	Name      string
	Filename  string
	Precision float32 // meaningful for MG2 only
}

// WriteTag writes a four-byte section tag.
func WriteTag(w *stream.Writer, tag [4]byte) error {
	return w.WriteAll(tag[:])
}

// ReadTag reads and validates a four-byte section tag against want.
func ReadTag(r *stream.Reader, want [4]byte) error {
	var got [4]byte
	if err := r.ReadExact(got[:]); err != nil {
		return err
	}
	if got != want {
		return errs.FormatError("expected section tag %q, got %q", want[:], got[:])
	}

	return nil
}

// Write serializes name, filename, and (when withPrecision) the precision
// float ahead of the map's array payload.
func (m *TexMapMeta) Write(w *stream.Writer, withPrecision bool) error {
	if err := w.WriteString(m.Name); err != nil {
		return err
	}
	if err := w.WriteString(m.Filename); err != nil {
		return err
	}
	if withPrecision {
		return w.WriteF32(m.Precision)
	}

	return nil
}

// ReadTexMapMeta reads a TexMapMeta, consuming the precision field only
// when withPrecision is true (i.e. the method is MG2).
func ReadTexMapMeta(r *stream.Reader, withPrecision bool) (*TexMapMeta, error) {
	m := &TexMapMeta{}

	var err error
	if m.Name, err = r.ReadString(MaxNameLen); err != nil {
		return nil, err
	}
	if m.Name == "" {
		return nil, errs.FormatError("tex map name is empty")
	}

	if m.Filename, err = r.ReadString(MaxNameLen); err != nil {
		return nil, err
	}

	if withPrecision {
		if m.Precision, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// AttribMapMeta carries the per-map metadata written before an ATTR
// section's array data.
type AttribMapMeta struct {
	Name      string
	Precision float32 // meaningful for MG2 only
}

// Write serializes name and (when withPrecision) the precision float.
func (m *AttribMapMeta) Write(w *stream.Writer, withPrecision bool) error {
	if err := w.WriteString(m.Name); err != nil {
		return err
	}
	if withPrecision {
		return w.WriteF32(m.Precision)
	}

	return nil
}

// ReadAttribMapMeta reads an AttribMapMeta.
func ReadAttribMapMeta(r *stream.Reader, withPrecision bool) (*AttribMapMeta, error) {
	m := &AttribMapMeta{}

	var err error
	if m.Name, err = r.ReadString(MaxNameLen); err != nil {
		return nil, err
	}
	if m.Name == "" {
		return nil, errs.FormatError("attrib map name is empty")
	}

	if withPrecision {
		if m.Precision, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}

	return m, nil
}
