package section

import (
	"github.com/wangfeilong321/openctm/errs"
	"github.com/wangfeilong321/openctm/format"
	"github.com/wangfeilong321/openctm/stream"
)

// Header represents the fixed 32-byte section at the start of a CTM file,
// followed by the variable-length comment string.
type Header struct {
	Method         format.Method
	VertexCount    uint32
	TriangleCount  uint32
	TexMapCount    uint32
	AttribMapCount uint32
	Flags          uint32
	Comment        string
}

// HasNormals reports whether flag bit 0 is set.
func (h *Header) HasNormals() bool {
	return h.Flags&format.FlagHasNormals != 0
}

// SetHasNormals sets or clears flag bit 0.
func (h *Header) SetHasNormals(v bool) {
	if v {
		h.Flags |= format.FlagHasNormals
	} else {
		h.Flags &^= format.FlagHasNormals
	}
}

// Write serializes the header (magic, version, method tag, counts, flags,
// comment) to w.
func (h *Header) Write(w *stream.Writer) error {
	if err := w.WriteU32(format.Magic); err != nil {
		return err
	}
	if err := w.WriteU32(format.Version); err != nil {
		return err
	}

	tag := h.Method.Tag()
	if err := w.WriteAll(tag[:]); err != nil {
		return err
	}

	if err := w.WriteU32(h.VertexCount); err != nil {
		return err
	}
	if err := w.WriteU32(h.TriangleCount); err != nil {
		return err
	}
	if err := w.WriteU32(h.TexMapCount); err != nil {
		return err
	}
	if err := w.WriteU32(h.AttribMapCount); err != nil {
		return err
	}
	if err := w.WriteU32(h.Flags); err != nil {
		return err
	}

	return w.WriteString(h.Comment)
}

// ReadHeader parses the fixed header and comment from r, validating the
// magic, version, method tag, and count bounds.
func ReadHeader(r *stream.Reader) (*Header, error) {
	magic, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if magic != format.Magic {
		return nil, errs.FormatError("bad magic 0x%08X", magic)
	}

	version, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if version != format.Version {
		return nil, errs.FormatError("unsupported version %d", version)
	}

	var tagBuf [4]byte
	if err := r.ReadExact(tagBuf[:]); err != nil {
		return nil, err
	}
	method, ok := format.MethodFromTag(tagBuf)
	if !ok {
		return nil, errs.FormatError("unknown method tag %q", tagBuf[:])
	}

	h := &Header{Method: method}

	if h.VertexCount, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if h.VertexCount == 0 {
		return nil, errs.FormatError("vertex count is zero")
	}

	if h.TriangleCount, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if h.TriangleCount == 0 {
		return nil, errs.FormatError("triangle count is zero")
	}

	if h.TexMapCount, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if h.TexMapCount > format.MaxTexMaps {
		return nil, errs.FormatError("tex map count %d exceeds max %d", h.TexMapCount, format.MaxTexMaps)
	}

	if h.AttribMapCount, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if h.AttribMapCount > format.MaxAttribMaps {
		return nil, errs.FormatError("attrib map count %d exceeds max %d", h.AttribMapCount, format.MaxAttribMaps)
	}

	if h.Flags, err = r.ReadU32(); err != nil {
		return nil, err
	}

	if h.Comment, err = r.ReadString(MaxCommentLen); err != nil {
		return nil, err
	}

	return h, nil
}
