package codec

import (
	"github.com/wangfeilong321/openctm/compress"
	"github.com/wangfeilong321/openctm/delta"
	"github.com/wangfeilong321/openctm/format"
	"github.com/wangfeilong321/openctm/quantize"
	"github.com/wangfeilong321/openctm/reindex"
	"github.com/wangfeilong321/openctm/section"
	"github.com/wangfeilong321/openctm/stream"
)

// EncodeMG2 writes the fixed-point lossy pipeline: spatial reindexing,
// per-axis quantization, component-wise delta, spherical reparameterization
// of normals relative to a recomputed smooth basis, then interleave and
// LZMA compression of every resulting integer array.
func EncodeMG2(w *stream.Writer, mesh *Mesh, opts EncodeOptions) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	vc := mesh.VertexCount()
	result := reindex.MG2(mesh.Triangles, vc, mesh.Vertices)

	h := buildHeader(mesh, format.MethodMG2, opts.Comment)
	if err := h.Write(w); err != nil {
		return err
	}

	codec := compress.NewLZMACodec(opts.LZMALevel)

	if err := section.WriteTag(w, section.TagIndex); err != nil {
		return err
	}
	indexDeltas := delta.EncodeIndices(result.Triangles)
	if err := writeCompressedI32Array(w, codec, indexDeltas); err != nil {
		return err
	}

	permVerts := result.Permute(mesh.Vertices, 3)
	vertPrecision := resolveVertexPrecision(mesh, opts)
	vertRanges := quantize.ComputeRangesInterleaved(permVerts, 3, vertPrecision)
	quantVerts := quantize.QuantizeInterleaved(permVerts, 3, vertRanges)

	if err := section.WriteTag(w, section.TagVertex); err != nil {
		return err
	}
	if err := writeRanges(w, vertRanges); err != nil {
		return err
	}
	if err := writeCompressedI32Array(w, codec, delta.EncodeComponents(quantVerts, 3)); err != nil {
		return err
	}

	// Decoded (quantized-then-dequantized) positions are what both the
	// encoder and decoder use to derive the smooth predicted normal basis,
	// so the two sides reconstruct identical predictions without the
	// decoder ever seeing the true normals.
	reconVerts := quantize.DequantizeInterleaved(quantVerts, 3, vertRanges)
	predicted := computePredictedNormals(result.Triangles, reconVerts, vc)

	if mesh.HasNormals() {
		if err := section.WriteTag(w, section.TagNormal); err != nil {
			return err
		}
		permNormals := result.Permute(mesh.Normals, 3)
		spherical := make([]float32, len(permNormals))
		for i := 0; i < vc; i++ {
			n := quantize.Vec3{X: permNormals[3*i], Y: permNormals[3*i+1], Z: permNormals[3*i+2]}
			rho, theta, phi := quantize.ToSpherical(n, predicted[i])
			spherical[3*i], spherical[3*i+1], spherical[3*i+2] = rho, theta, phi
		}

		normPrecision := opts.NormalPrecision
		if normPrecision <= 0 {
			normPrecision = format.DefaultNormalPrecision
		}
		normRanges := quantize.ComputeRangesInterleaved(spherical, 3, normPrecision)
		quantNorm := quantize.QuantizeInterleaved(spherical, 3, normRanges)

		if err := writeRanges(w, normRanges); err != nil {
			return err
		}
		if err := writeCompressedI32Array(w, codec, delta.EncodeComponents(quantNorm, 3)); err != nil {
			return err
		}
	}

	for i, t := range mesh.TexMaps {
		if err := section.WriteTag(w, section.TagTexMap); err != nil {
			return err
		}
		precision := opts.resolveTexPrecision(i, t.Precision)
		meta := section.TexMapMeta{Name: t.Name, Filename: t.Filename, Precision: precision}
		if err := meta.Write(w, true); err != nil {
			return err
		}

		permUV := result.Permute(t.UV, 2)
		ranges := quantize.ComputeRangesInterleaved(permUV, 2, precision)
		quant := quantize.QuantizeInterleaved(permUV, 2, ranges)

		if err := writeRanges(w, ranges); err != nil {
			return err
		}
		if err := writeCompressedI32Array(w, codec, delta.EncodeComponents(quant, 2)); err != nil {
			return err
		}
	}

	for i, a := range mesh.AttribMaps {
		if err := section.WriteTag(w, section.TagAttrMap); err != nil {
			return err
		}
		precision := opts.resolveAttribPrecision(i, a.Precision)
		meta := section.AttribMapMeta{Name: a.Name, Precision: precision}
		if err := meta.Write(w, true); err != nil {
			return err
		}

		permData := result.Permute(a.Data, 4)
		ranges := quantize.ComputeRangesInterleaved(permData, 4, precision)
		quant := quantize.QuantizeInterleaved(permData, 4, ranges)

		if err := writeRanges(w, ranges); err != nil {
			return err
		}
		if err := writeCompressedI32Array(w, codec, delta.EncodeComponents(quant, 4)); err != nil {
			return err
		}
	}

	return nil
}

// DecodeMG2 reads an MG2-method CTM file. h must already have been read via
// section.ReadHeader. The returned mesh is in canonical (reindexed) order
// and its floating-point values are the fixed-point reconstructions, not
// the original bit patterns.
func DecodeMG2(r *stream.Reader, h *section.Header) (*Mesh, error) {
	mesh := &Mesh{Comment: h.Comment}
	codec := compress.NewLZMACodec(0)

	triCount := int(h.TriangleCount)
	vc := int(h.VertexCount)

	if err := section.ReadTag(r, section.TagIndex); err != nil {
		return nil, err
	}
	indexDeltas, err := readCompressedI32Array(r, codec, triCount*3)
	if err != nil {
		return nil, err
	}
	mesh.Triangles = delta.DecodeIndices(indexDeltas)

	if err := section.ReadTag(r, section.TagVertex); err != nil {
		return nil, err
	}
	vertRanges, err := readRanges(r, 3)
	if err != nil {
		return nil, err
	}
	vertDeltas, err := readCompressedI32Array(r, codec, vc*3)
	if err != nil {
		return nil, err
	}
	quantVerts := delta.DecodeComponents(vertDeltas, 3)
	mesh.Vertices = quantize.DequantizeInterleaved(quantVerts, 3, vertRanges)

	predicted := computePredictedNormals(mesh.Triangles, mesh.Vertices, vc)

	if h.HasNormals() {
		if err := section.ReadTag(r, section.TagNormal); err != nil {
			return nil, err
		}
		normRanges, err := readRanges(r, 3)
		if err != nil {
			return nil, err
		}
		normDeltas, err := readCompressedI32Array(r, codec, vc*3)
		if err != nil {
			return nil, err
		}
		quantNorm := delta.DecodeComponents(normDeltas, 3)
		spherical := quantize.DequantizeInterleaved(quantNorm, 3, normRanges)

		normals := make([]float32, vc*3)
		for i := 0; i < vc; i++ {
			n := quantize.FromSpherical(spherical[3*i], spherical[3*i+1], spherical[3*i+2], predicted[i])
			normals[3*i], normals[3*i+1], normals[3*i+2] = n.X, n.Y, n.Z
		}
		mesh.Normals = normals
	}

	for i := uint32(0); i < h.TexMapCount; i++ {
		if err := section.ReadTag(r, section.TagTexMap); err != nil {
			return nil, err
		}
		meta, err := section.ReadTexMapMeta(r, true)
		if err != nil {
			return nil, err
		}
		ranges, err := readRanges(r, 2)
		if err != nil {
			return nil, err
		}
		deltas, err := readCompressedI32Array(r, codec, vc*2)
		if err != nil {
			return nil, err
		}
		quant := delta.DecodeComponents(deltas, 2)
		uv := quantize.DequantizeInterleaved(quant, 2, ranges)
		mesh.TexMaps = append(mesh.TexMaps, TexMap{Name: meta.Name, Filename: meta.Filename, UV: uv, Precision: meta.Precision})
	}

	for i := uint32(0); i < h.AttribMapCount; i++ {
		if err := section.ReadTag(r, section.TagAttrMap); err != nil {
			return nil, err
		}
		meta, err := section.ReadAttribMapMeta(r, true)
		if err != nil {
			return nil, err
		}
		ranges, err := readRanges(r, 4)
		if err != nil {
			return nil, err
		}
		deltas, err := readCompressedI32Array(r, codec, vc*4)
		if err != nil {
			return nil, err
		}
		quant := delta.DecodeComponents(deltas, 4)
		data := quantize.DequantizeInterleaved(quant, 4, ranges)
		mesh.AttribMaps = append(mesh.AttribMaps, AttribMap{Name: meta.Name, Data: data, Precision: meta.Precision})
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	return mesh, nil
}

// writeRanges writes one axis minimum per component followed by the shared
// precision, uncompressed: these are a handful of floats per section, not
// worth framing through LZMA.
func writeRanges(w *stream.Writer, ranges []quantize.Range) error {
	for _, r := range ranges {
		if err := w.WriteF32(r.Min); err != nil {
			return err
		}
	}

	return w.WriteF32(ranges[0].Precision)
}

// readRanges reads back what writeRanges wrote for a stride-component
// array.
func readRanges(r *stream.Reader, stride int) ([]quantize.Range, error) {
	mins := make([]float32, stride)
	for c := range mins {
		m, err := r.ReadF32()
		if err != nil {
			return nil, err
		}
		mins[c] = m
	}

	precision, err := r.ReadF32()
	if err != nil {
		return nil, err
	}

	ranges := make([]quantize.Range, stride)
	for c := range ranges {
		ranges[c] = quantize.Range{Min: mins[c], Precision: precision}
	}

	return ranges, nil
}

// resolveVertexPrecision applies the relative-precision rule: when
// VertexRelPrecision is set, the absolute step is that fraction of the
// mesh's mean triangle edge length, recomputed fresh at encode time.
func resolveVertexPrecision(mesh *Mesh, opts EncodeOptions) float32 {
	if opts.VertexRelPrecision > 0 {
		return opts.VertexRelPrecision * meanEdgeLength(mesh)
	}
	if opts.VertexPrecision > 0 {
		return opts.VertexPrecision
	}

	return format.DefaultVertexPrecision
}

func meanEdgeLength(mesh *Mesh) float32 {
	tc := mesh.TriangleCount()
	if tc == 0 {
		return format.DefaultVertexPrecision
	}

	var total float64
	for t := 0; t < tc; t++ {
		i0, i1, i2 := mesh.Triangles[3*t], mesh.Triangles[3*t+1], mesh.Triangles[3*t+2]
		v0 := vertexAt(mesh.Vertices, i0)
		v1 := vertexAt(mesh.Vertices, i1)
		v2 := vertexAt(mesh.Vertices, i2)

		total += float64(v0.Sub(v1).Length())
		total += float64(v1.Sub(v2).Length())
		total += float64(v2.Sub(v0).Length())
	}

	mean := total / float64(3*tc)
	if mean <= 0 {
		return format.DefaultVertexPrecision
	}

	return float32(mean)
}

func vertexAt(vertices []float32, idx uint32) quantize.Vec3 {
	return quantize.Vec3{X: vertices[3*idx], Y: vertices[3*idx+1], Z: vertices[3*idx+2]}
}

// computePredictedNormals builds an area-weighted vertex normal from the
// canonical triangle list and reconstructed positions: each triangle's
// cross-product face normal, whose magnitude already tracks twice its
// area, is accumulated into its three vertices and then normalized. A
// vertex touched by no triangle predicts straight up.
func computePredictedNormals(triangles []uint32, positions []float32, vertexCount int) []quantize.Vec3 {
	acc := make([]quantize.Vec3, vertexCount)

	tc := len(triangles) / 3
	for t := 0; t < tc; t++ {
		i0, i1, i2 := triangles[3*t], triangles[3*t+1], triangles[3*t+2]
		v0 := vertexAt(positions, i0)
		v1 := vertexAt(positions, i1)
		v2 := vertexAt(positions, i2)

		face := v1.Sub(v0).Cross(v2.Sub(v0))
		acc[i0] = acc[i0].Add(face)
		acc[i1] = acc[i1].Add(face)
		acc[i2] = acc[i2].Add(face)
	}

	out := make([]quantize.Vec3, vertexCount)
	for i, v := range acc {
		n := v.Normalize()
		if n.Length() < 0.5 {
			n = quantize.Vec3{X: 0, Y: 0, Z: 1}
		}
		out[i] = n
	}

	return out
}
