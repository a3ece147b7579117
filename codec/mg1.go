package codec

import (
	"github.com/wangfeilong321/openctm/compress"
	"github.com/wangfeilong321/openctm/delta"
	"github.com/wangfeilong321/openctm/format"
	"github.com/wangfeilong321/openctm/reindex"
	"github.com/wangfeilong321/openctm/section"
	"github.com/wangfeilong321/openctm/stream"
)

// EncodeMG1 writes the lossless pipeline: reindex triangles and vertices
// into canonical order, delta-encode the index stream, then interleave
// and LZMA-compress every array. Vertex/normal/UV/attribute floats are
// carried bit-exact; only their storage order changes, which is why
// decode returns the mesh in canonical order rather than the caller's
// original array order.
func EncodeMG1(w *stream.Writer, mesh *Mesh, opts EncodeOptions) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	vc := mesh.VertexCount()
	result := reindex.MG1(mesh.Triangles, vc)

	h := buildHeader(mesh, format.MethodMG1, opts.Comment)
	if err := h.Write(w); err != nil {
		return err
	}

	codec := compress.NewLZMACodec(opts.LZMALevel)

	if err := section.WriteTag(w, section.TagIndex); err != nil {
		return err
	}
	deltas := delta.EncodeIndices(result.Triangles)
	if err := writeCompressedI32Array(w, codec, deltas); err != nil {
		return err
	}

	if err := section.WriteTag(w, section.TagVertex); err != nil {
		return err
	}
	permVerts := result.Permute(mesh.Vertices, 3)
	if err := writeCompressedF32Array(w, codec, permVerts); err != nil {
		return err
	}

	if mesh.HasNormals() {
		if err := section.WriteTag(w, section.TagNormal); err != nil {
			return err
		}
		permNormals := result.Permute(mesh.Normals, 3)
		if err := writeCompressedF32Array(w, codec, permNormals); err != nil {
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
		permUV := result.Permute(t.UV, 2)
		if err := writeCompressedF32Array(w, codec, permUV); err != nil {
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
		permData := result.Permute(a.Data, 4)
		if err := writeCompressedF32Array(w, codec, permData); err != nil {
			return err
		}
	}

	return nil
}

// DecodeMG1 reads an MG1-method CTM file. h must already have been read via
// section.ReadHeader. The returned mesh is in canonical (reindexed) order.
func DecodeMG1(r *stream.Reader, h *section.Header) (*Mesh, error) {
	mesh := &Mesh{Comment: h.Comment}
	codec := compress.NewLZMACodec(0) // level has no bearing on decode

	triCount := int(h.TriangleCount)
	vc := int(h.VertexCount)

	if err := section.ReadTag(r, section.TagIndex); err != nil {
		return nil, err
	}
	deltas, err := readCompressedI32Array(r, codec, triCount*3)
	if err != nil {
		return nil, err
	}
	mesh.Triangles = delta.DecodeIndices(deltas)

	if err := section.ReadTag(r, section.TagVertex); err != nil {
		return nil, err
	}
	verts, err := readCompressedF32Array(r, codec, vc*3)
	if err != nil {
		return nil, err
	}
	mesh.Vertices = verts

	if h.HasNormals() {
		if err := section.ReadTag(r, section.TagNormal); err != nil {
			return nil, err
		}
		normals, err := readCompressedF32Array(r, codec, vc*3)
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
		uv, err := readCompressedF32Array(r, codec, vc*2)
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
		data, err := readCompressedF32Array(r, codec, vc*4)
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
