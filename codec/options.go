package codec

import "github.com/wangfeilong321/openctm/format"

// EncodeOptions carries every EXPORT-time configuration value. The root
// package's With* options fill one of these via the functional-options
// pattern; codec itself stays agnostic of how the values were assembled.
type EncodeOptions struct {
	Method format.Method

	// VertexPrecision is the MG2 position quantization step. When
	// VertexRelPrecision is non-zero, VertexPrecision is recomputed at
	// encode time as VertexRelPrecision * mean triangle edge length.
	VertexPrecision    float32
	VertexRelPrecision float32

	NormalPrecision float32

	// TexPrecision/AttribPrecision are indexed in parallel with the
	// mesh's TexMaps/AttribMaps; a zero entry falls back to the map's own
	// Precision field, and if that is also zero, to the package default.
	TexPrecision    []float32
	AttribPrecision []float32

	// LZMALevel (0-9) is passed to the LZMA codec, which does not use it;
	// it changes neither the encoded output nor decoding.
	LZMALevel int

	Comment string
}

// DefaultEncodeOptions returns the library's defaults: method MG1, vertex
// precision 2^-10, normal precision 2^-8, LZMA level 6.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Method:          format.MethodMG1,
		VertexPrecision: format.DefaultVertexPrecision,
		NormalPrecision: format.DefaultNormalPrecision,
		LZMALevel:       6,
	}
}

// resolveTexPrecision returns the effective precision for tex map i.
func (o *EncodeOptions) resolveTexPrecision(i int, mapPrecision float32) float32 {
	if i < len(o.TexPrecision) && o.TexPrecision[i] > 0 {
		return o.TexPrecision[i]
	}
	if mapPrecision > 0 {
		return mapPrecision
	}

	return format.DefaultTexMapPrecision
}

// resolveAttribPrecision returns the effective precision for attribute
// map i.
func (o *EncodeOptions) resolveAttribPrecision(i int, mapPrecision float32) float32 {
	if i < len(o.AttribPrecision) && o.AttribPrecision[i] > 0 {
		return o.AttribPrecision[i]
	}
	if mapPrecision > 0 {
		return mapPrecision
	}

	return format.DefaultAttribPrecision
}
