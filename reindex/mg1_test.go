package reindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMG1_Idempotent(t *testing.T) {
	triangles := []uint32{3, 1, 2, 0, 2, 1, 4, 0, 3}
	vc := 5

	first := MG1(triangles, vc)
	second := MG1(first.Triangles, vc)

	require.Equal(t, first.Triangles, second.Triangles)
}

func TestMG1_RotatesToSmallestIndexFirst(t *testing.T) {
	triangles := []uint32{3, 1, 2}

	result := MG1(triangles, 4)

	// After relabeling in first-use order, the smallest original index (1)
	// becomes new vertex 0, and it must still lead its triangle.
	require.Equal(t, uint32(0), result.Triangles[0])
}

func TestMG1_PreservesUnreferencedVertices(t *testing.T) {
	triangles := []uint32{0, 1, 2}
	vc := 4 // vertex 3 is never referenced

	result := MG1(triangles, vc)

	require.Len(t, result.VertexOrder, vc)
	require.Contains(t, result.VertexOrder, uint32(3))
}

func TestResult_Permute_MatchesVertexOrder(t *testing.T) {
	triangles := []uint32{2, 0, 1}
	result := MG1(triangles, 3)

	values := []float32{
		0, 0, 0, // vertex 0
		1, 1, 1, // vertex 1
		2, 2, 2, // vertex 2
	}

	permuted := result.Permute(values, 3)

	for newIdx, oldIdx := range result.VertexOrder {
		require.Equal(t, values[int(oldIdx)*3], permuted[newIdx*3])
	}
}
