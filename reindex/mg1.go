package reindex

import "sort"

// MG1 computes the canonical order used by the lossless pipeline: rotate
// each triangle so its smallest index is first, sort triangles ascending
// by (v0, v1, v2), then relabel vertices in first-use order under that
// sort. The result is idempotent: reapplying MG1 to
// already-canonical triangles reproduces the same order, since the sort
// key and first-use relabeling are both already fixed points.
func MG1(triangles []uint32, vertexCount int) *Result {
	m := len(triangles) / 3
	rotated := make([][3]uint32, m)
	for t := 0; t < m; t++ {
		rotated[t] = rotateMin([3]uint32{triangles[3*t], triangles[3*t+1], triangles[3*t+2]})
	}

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := rotated[order[i]], rotated[order[j]]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}

		return a[2] < b[2]
	})

	rl := newRelabeler(vertexCount)
	newTriangles := make([]uint32, len(triangles))
	for newT, oldT := range order {
		tri := rotated[oldT]
		for j := 0; j < 3; j++ {
			newTriangles[3*newT+j] = rl.assign(tri[j])
		}
	}

	rl.appendUnreferenced(vertexCount)

	return &Result{Triangles: newTriangles, VertexOrder: rl.vertexOrder}
}

// Permute reorders a component-major per-vertex array (stride components
// per vertex) according to result.VertexOrder: out[new] = in[VertexOrder[new]].
func (r *Result) Permute(values []float32, stride int) []float32 {
	out := make([]float32, len(r.VertexOrder)*stride)
	for newIdx, oldIdx := range r.VertexOrder {
		copy(out[newIdx*stride:newIdx*stride+stride], values[int(oldIdx)*stride:int(oldIdx)*stride+stride])
	}

	return out
}
