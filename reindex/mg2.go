package reindex

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// MG2 extends MG1's canonical ordering with a spatial grid-cell sort:
// triangles are grouped by the grid cell containing their
// first vertex (after the MG1 rotation rule), falling back to MG1's
// (v0, v1, v2) tie-breakers within a cell. This clusters spatially coherent
// vertices so their quantized positions delta-encode to small integers.
//
// positions is the original (pre-reindex), component-major vertex array
// (stride 3) used only to compute grid membership; the returned Result
// still carries plain vertex indices, so the caller applies Result.Permute
// to positions, normals, UVs, and attributes exactly as it would for MG1.
func MG2(triangles []uint32, vertexCount int, positions []float32) *Result {
	m := len(triangles) / 3
	rotated := make([][3]uint32, m)
	for t := 0; t < m; t++ {
		rotated[t] = rotateMin([3]uint32{triangles[3*t], triangles[3*t+1], triangles[3*t+2]})
	}

	cellOf := gridCells(positions, vertexCount)

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := rotated[order[i]], rotated[order[j]]
		ca, cb := cellOf[a[0]], cellOf[b[0]]
		if ca != cb {
			return ca < cb
		}
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

// gridCells buckets each vertex into a uniform 3-D grid sized so expected
// cell occupancy is approximately 1 (gridDim ~= cbrt(vertexCount)), then
// hashes the integer cell coordinate to a single sortable key with
// xxHash64. Using a hash (rather than a packed bit-field) avoids picking an
// arbitrary per-axis bit budget that could overflow for extreme aspect
// ratios or vertex counts.
func gridCells(positions []float32, vertexCount int) []uint64 {
	if vertexCount == 0 {
		return nil
	}

	minV := [3]float32{positions[0], positions[1], positions[2]}
	maxV := minV
	for i := 0; i < vertexCount; i++ {
		for c := 0; c < 3; c++ {
			v := positions[3*i+c]
			if v < minV[c] {
				minV[c] = v
			}
			if v > maxV[c] {
				maxV[c] = v
			}
		}
	}

	gridDim := int(math.Ceil(math.Cbrt(float64(vertexCount))))
	if gridDim < 1 {
		gridDim = 1
	}

	var cellSize [3]float32
	for c := 0; c < 3; c++ {
		extent := maxV[c] - minV[c]
		if extent <= 0 {
			cellSize[c] = 1
		} else {
			cellSize[c] = extent / float32(gridDim)
		}
	}

	cells := make([]uint64, vertexCount)
	var key [12]byte
	for i := 0; i < vertexCount; i++ {
		for c := 0; c < 3; c++ {
			cell := int32((positions[3*i+c] - minV[c]) / cellSize[c])
			if cell < 0 {
				cell = 0
			}
			if cell >= int32(gridDim) {
				cell = int32(gridDim) - 1
			}
			binary.LittleEndian.PutUint32(key[4*c:4*c+4], uint32(cell))
		}
		cells[i] = xxhash.Sum64(key[:])
	}

	return cells
}
