package codec

import (
	"github.com/wangfeilong321/openctm/format"
	"github.com/wangfeilong321/openctm/section"
	"github.com/wangfeilong321/openctm/stream"
)

// EncodeRAW writes mesh as-is: every section's array is stored as
// little-endian fixed-width values with no transformation. RAW is the
// test oracle for MG1/MG2 semantics.
func EncodeRAW(w *stream.Writer, mesh *Mesh, opts EncodeOptions) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	h := buildHeader(mesh, format.MethodRaw, opts.Comment)
	if err := h.Write(w); err != nil {
		return err
	}

	if err := section.WriteTag(w, section.TagIndex); err != nil {
		return err
	}
	if err := w.WriteU32Array(mesh.Triangles); err != nil {
		return err
	}

	if err := section.WriteTag(w, section.TagVertex); err != nil {
		return err
	}
	if err := w.WriteF32Array(mesh.Vertices); err != nil {
		return err
	}

	if mesh.HasNormals() {
		if err := section.WriteTag(w, section.TagNormal); err != nil {
			return err
		}
		if err := w.WriteF32Array(mesh.Normals); err != nil {
			return err
		}
	}

	for _, t := range mesh.TexMaps {
		if err := section.WriteTag(w, section.TagTexMap); err != nil {
			return err
		}
		meta := section.TexMapMeta{Name: t.Name, Filename: t.Filename}
		if err := meta.Write(w, false); err != nil {
			return err
		}
		if err := w.WriteF32Array(t.UV); err != nil {
			return err
		}
	}

	for _, a := range mesh.AttribMaps {
		if err := section.WriteTag(w, section.TagAttrMap); err != nil {
			return err
		}
		meta := section.AttribMapMeta{Name: a.Name}
		if err := meta.Write(w, false); err != nil {
			return err
		}
		if err := w.WriteF32Array(a.Data); err != nil {
			return err
		}
	}

	return nil
}

// DecodeRAW reads a RAW-method CTM file. h must already have been read via
// section.ReadHeader.
func DecodeRAW(r *stream.Reader, h *section.Header) (*Mesh, error) {
	mesh := &Mesh{Comment: h.Comment}

	if err := section.ReadTag(r, section.TagIndex); err != nil {
		return nil, err
	}
	indices, err := r.ReadU32Array(int(h.TriangleCount) * 3)
	if err != nil {
		return nil, err
	}
	mesh.Triangles = indices

	if err := section.ReadTag(r, section.TagVertex); err != nil {
		return nil, err
	}
	verts, err := r.ReadF32Array(int(h.VertexCount) * 3)
	if err != nil {
		return nil, err
	}
	mesh.Vertices = verts

	if h.HasNormals() {
		if err := section.ReadTag(r, section.TagNormal); err != nil {
			return nil, err
		}
		normals, err := r.ReadF32Array(int(h.VertexCount) * 3)
		if err != nil {
			return nil, err
		}
		mesh.Normals = normals
	}

	for i := uint32(0); i < h.TexMapCount; i++ {
		if err := section.ReadTag(r, section.TagTexMap); err != nil {
			return nil, err
		}
		meta, err := section.ReadTexMapMeta(r, false)
		if err != nil {
			return nil, err
		}
		uv, err := r.ReadF32Array(int(h.VertexCount) * 2)
		if err != nil {
			return nil, err
		}
		mesh.TexMaps = append(mesh.TexMaps, TexMap{Name: meta.Name, Filename: meta.Filename, UV: uv})
	}

	for i := uint32(0); i < h.AttribMapCount; i++ {
		if err := section.ReadTag(r, section.TagAttrMap); err != nil {
			return nil, err
		}
		meta, err := section.ReadAttribMapMeta(r, false)
		if err != nil {
			return nil, err
		}
		data, err := r.ReadF32Array(int(h.VertexCount) * 4)
		if err != nil {
			return nil, err
		}
		mesh.AttribMaps = append(mesh.AttribMaps, AttribMap{Name: meta.Name, Data: data})
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	return mesh, nil
}

// buildHeader assembles the section.Header shared by all three methods;
// method-specific fields (everything past the container header) are
// written separately by each codec.
func buildHeader(mesh *Mesh, method format.Method, comment string) *section.Header {
	h := &section.Header{
		Method:         method,
		VertexCount:    uint32(mesh.VertexCount()),
		TriangleCount:  uint32(mesh.TriangleCount()),
		TexMapCount:    uint32(len(mesh.TexMaps)),
		AttribMapCount: uint32(len(mesh.AttribMaps)),
		Comment:        comment,
	}
	h.SetHasNormals(mesh.HasNormals())

	return h
}
