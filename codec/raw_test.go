package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wangfeilong321/openctm/format"
	"github.com/wangfeilong321/openctm/section"
	"github.com/wangfeilong321/openctm/stream"
)

func pyramidMesh() *Mesh {
	return &Mesh{
		Vertices: []float32{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
			0.5, 0.5, 1,
		},
		Triangles: []uint32{
			0, 1, 2,
			0, 2, 3,
			0, 1, 4,
			1, 2, 4,
			2, 3, 4,
			3, 0, 4,
		},
		Comment: "a pyramid",
	}
}

func TestRAW_RoundTrip_ExactOrder(t *testing.T) {
	mesh := pyramidMesh()
	opts := EncodeOptions{Method: format.MethodRaw, Comment: mesh.Comment}

	var buf bytes.Buffer
	require.NoError(t, EncodeRAW(stream.NewWriter(&buf), mesh, opts))

	h, err := section.ReadHeader(stream.NewReader(&buf))
	require.NoError(t, err)
	require.Equal(t, format.MethodRaw, h.Method)

	got, err := DecodeRAW(stream.NewReader(&buf), h)
	require.NoError(t, err)

	require.Equal(t, mesh.Vertices, got.Vertices)
	require.Equal(t, mesh.Triangles, got.Triangles)
	require.Equal(t, mesh.Comment, got.Comment)
}

func TestRAW_RoundTrip_WithNormalsAndMaps(t *testing.T) {
	mesh := pyramidMesh()
	mesh.Normals = make([]float32, len(mesh.Vertices))
	for i := range mesh.Normals {
		mesh.Normals[i] = 0.1 * float32(i+1)
	}
	mesh.TexMaps = []TexMap{{
		Name: "diffuse",
		UV:   make([]float32, 2*mesh.VertexCount()),
	}}
	mesh.AttribMaps = []AttribMap{{
		Name: "color",
		Data: make([]float32, 4*mesh.VertexCount()),
	}}

	opts := EncodeOptions{Method: format.MethodRaw}

	var buf bytes.Buffer
	require.NoError(t, EncodeRAW(stream.NewWriter(&buf), mesh, opts))

	h, err := section.ReadHeader(stream.NewReader(&buf))
	require.NoError(t, err)

	got, err := DecodeRAW(stream.NewReader(&buf), h)
	require.NoError(t, err)

	require.Equal(t, mesh.Normals, got.Normals)
	require.Len(t, got.TexMaps, 1)
	require.Equal(t, "diffuse", got.TexMaps[0].Name)
	require.Len(t, got.AttribMaps, 1)
	require.Equal(t, "color", got.AttribMaps[0].Name)
}

func TestRAW_Encode_RejectsInvalidMesh(t *testing.T) {
	mesh := &Mesh{}
	opts := EncodeOptions{Method: format.MethodRaw}

	var buf bytes.Buffer
	err := EncodeRAW(stream.NewWriter(&buf), mesh, opts)
	require.Error(t, err)
}
