package codec

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wangfeilong321/openctm/format"
	"github.com/wangfeilong321/openctm/section"
	"github.com/wangfeilong321/openctm/stream"
)

// canonicalTriangles returns, for every triangle in mesh, a position-based
// (not index-based) canonical key: the triangle's three vertex positions,
// rotated so the lexicographically smallest position leads while
// preserving winding. Since MG1/MG2 relabel vertices and reorder
// triangles, comparing these position keys (rather than raw indices) is
// the only order-independent way to check topology survived.
func canonicalTriangles(mesh *Mesh) []string {
	keys := make([]string, 0, mesh.TriangleCount())

	for t := 0; t < mesh.TriangleCount(); t++ {
		idx := [3]uint32{mesh.Triangles[3*t], mesh.Triangles[3*t+1], mesh.Triangles[3*t+2]}
		pos := [3][3]float32{}
		for j := 0; j < 3; j++ {
			pos[j] = [3]float32{
				mesh.Vertices[3*idx[j]],
				mesh.Vertices[3*idx[j]+1],
				mesh.Vertices[3*idx[j]+2],
			}
		}

		minJ := 0
		for j := 1; j < 3; j++ {
			if lessPos(pos[j], pos[minJ]) {
				minJ = j
			}
		}

		keys = append(keys, fmt.Sprintf("%v|%v|%v", pos[minJ], pos[(minJ+1)%3], pos[(minJ+2)%3]))
	}

	sort.Strings(keys)

	return keys
}

func lessPos(a, b [3]float32) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}

func sortedVertices(mesh *Mesh) []string {
	keys := make([]string, 0, mesh.VertexCount())
	for i := 0; i < mesh.VertexCount(); i++ {
		keys = append(keys, fmt.Sprintf("%v", [3]float32{mesh.Vertices[3*i], mesh.Vertices[3*i+1], mesh.Vertices[3*i+2]}))
	}
	sort.Strings(keys)

	return keys
}

func TestMG1_RoundTrip_TopologyAndValuesPreserved(t *testing.T) {
	mesh := pyramidMesh()
	opts := DefaultEncodeOptions()
	opts.Method = format.MethodMG1

	var buf bytes.Buffer
	require.NoError(t, EncodeMG1(stream.NewWriter(&buf), mesh, opts))

	h, err := section.ReadHeader(stream.NewReader(&buf))
	require.NoError(t, err)
	require.Equal(t, format.MethodMG1, h.Method)

	got, err := DecodeMG1(stream.NewReader(&buf), h)
	require.NoError(t, err)

	require.Equal(t, mesh.VertexCount(), got.VertexCount())
	require.Equal(t, mesh.TriangleCount(), got.TriangleCount())
	require.Equal(t, sortedVertices(mesh), sortedVertices(got))
	require.Equal(t, canonicalTriangles(mesh), canonicalTriangles(got))
}

func TestMG1_RoundTrip_WithNormalsAndMaps(t *testing.T) {
	mesh := pyramidMesh()
	mesh.Normals = make([]float32, len(mesh.Vertices))
	for i := range mesh.Normals {
		mesh.Normals[i] = float32(i%3) - 1
	}
	mesh.TexMaps = []TexMap{{Name: "uv0", UV: make([]float32, 2*mesh.VertexCount())}}
	mesh.AttribMaps = []AttribMap{{Name: "attr0", Data: make([]float32, 4*mesh.VertexCount())}}
	for i := range mesh.TexMaps[0].UV {
		mesh.TexMaps[0].UV[i] = float32(i) * 0.1
	}
	for i := range mesh.AttribMaps[0].Data {
		mesh.AttribMaps[0].Data[i] = float32(i) * 0.2
	}

	opts := DefaultEncodeOptions()
	opts.Method = format.MethodMG1

	var buf bytes.Buffer
	require.NoError(t, EncodeMG1(stream.NewWriter(&buf), mesh, opts))

	h, err := section.ReadHeader(stream.NewReader(&buf))
	require.NoError(t, err)

	got, err := DecodeMG1(stream.NewReader(&buf), h)
	require.NoError(t, err)

	require.True(t, got.HasNormals())
	require.Len(t, got.TexMaps, 1)
	require.Len(t, got.AttribMaps, 1)
	require.Equal(t, canonicalTriangles(mesh), canonicalTriangles(got))
}
