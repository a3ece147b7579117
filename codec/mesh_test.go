package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wangfeilong321/openctm/errs"
)

func cubeMesh() *Mesh {
	return &Mesh{
		Vertices: []float32{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
		},
		Triangles: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestMesh_Validate_Valid(t *testing.T) {
	require.NoError(t, cubeMesh().Validate())
}

func TestMesh_Validate_EmptyIsInvalid(t *testing.T) {
	m := &Mesh{}

	err := m.Validate()
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidMesh, errs.CodeOf(err))
}

func TestMesh_Validate_OutOfRangeIndex(t *testing.T) {
	m := cubeMesh()
	m.Triangles[0] = 99

	err := m.Validate()
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidMesh, errs.CodeOf(err))
}

func TestMesh_Validate_NaNIsInvalid(t *testing.T) {
	m := cubeMesh()
	m.Vertices[0] = float32(math.NaN())

	err := m.Validate()
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidMesh, errs.CodeOf(err))
}

func TestMesh_Validate_DuplicateTexMapName(t *testing.T) {
	m := cubeMesh()
	uv := make([]float32, 2*m.VertexCount())
	m.TexMaps = []TexMap{{Name: "a", UV: uv}, {Name: "a", UV: uv}}

	err := m.Validate()
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidArgument, errs.CodeOf(err))
}

func TestMesh_TexMapByName(t *testing.T) {
	m := cubeMesh()
	uv := make([]float32, 2*m.VertexCount())
	m.TexMaps = []TexMap{{Name: "diffuse", UV: uv}}

	idx, ok := m.TexMapByName("diffuse")
	require.True(t, ok)
	require.Equal(t, 0, idx)

	_, ok = m.TexMapByName("missing")
	require.False(t, ok)
}
