// Package codec implements the CTM compression pipeline: the RAW, MG1, and
// MG2 encoders/decoders that read and write a complete mesh against the
// container framing defined in package section.
package codec

import (
	"math"

	"github.com/wangfeilong321/openctm/errs"
	"github.com/wangfeilong321/openctm/format"
)

// Mesh is the in-memory representation of everything a CTM file carries:
// vertices, triangle indices, optional per-vertex normals, up to eight
// texture maps, and up to eight custom attribute maps, plus a file
// comment.
type Mesh struct {
	// Vertices is a component-major (x,y,z) array, length 3*VertexCount().
	Vertices []float32
	// Triangles is a component-major (a,b,c) array of vertex indices,
	// length 3*TriangleCount().
	Triangles []uint32
	// Normals is an optional component-major (x,y,z) array, length
	// 3*VertexCount() when present.
	Normals []float32
	TexMaps []TexMap
	AttribMaps []AttribMap
	Comment string
}

// TexMap is one 2-D texture coordinate set: a name, an optional source
// filename, and a component-major (u,v) array.
type TexMap struct {
	Name       string
	Filename   string
	UV         []float32
	Precision  float32 // MG2 only; zero means "use the default"
}

// AttribMap is one 4-component custom per-vertex attribute set.
type AttribMap struct {
	Name      string
	Data      []float32 // component-major, length 4*VertexCount()
	Precision float32   // MG2 only; zero means "use the default"
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// HasNormals reports whether the mesh carries per-vertex normals.
func (m *Mesh) HasNormals() bool { return len(m.Normals) > 0 }

// TexMapByName resolves name to its index. ok is false when no map by
// that name exists, rather than overloading an error code or sentinel
// index for "not found".
func (m *Mesh) TexMapByName(name string) (int, bool) {
	for i, t := range m.TexMaps {
		if t.Name == name {
			return i, true
		}
	}

	return 0, false
}

// AttribMapByName resolves name to its index, mirroring TexMapByName.
func (m *Mesh) AttribMapByName(name string) (int, bool) {
	for i, a := range m.AttribMaps {
		if a.Name == name {
			return i, true
		}
	}

	return 0, false
}

// Validate checks the invariants required before encoding and after
// decoding: non-empty vertex/triangle arrays, in-range indices, finite
// floats, and well-formed map metadata.
func (m *Mesh) Validate() error {
	n := m.VertexCount()
	tc := m.TriangleCount()

	if n == 0 {
		return errs.InvalidMesh("mesh has no vertices")
	}
	if tc == 0 {
		return errs.InvalidMesh("mesh has no triangles")
	}
	if len(m.Vertices)%3 != 0 {
		return errs.InvalidMesh("vertex array length %d is not a multiple of 3", len(m.Vertices))
	}
	if len(m.Triangles)%3 != 0 {
		return errs.InvalidMesh("triangle array length %d is not a multiple of 3", len(m.Triangles))
	}

	if err := validateFinite(m.Vertices, "vertex"); err != nil {
		return err
	}

	for _, idx := range m.Triangles {
		if int(idx) >= n {
			return errs.InvalidMesh("triangle index %d out of range [0, %d)", idx, n)
		}
	}

	if len(m.Normals) > 0 {
		if len(m.Normals) != len(m.Vertices) {
			return errs.InvalidMesh("normal array length %d does not match vertex array length %d", len(m.Normals), len(m.Vertices))
		}
		if err := validateFinite(m.Normals, "normal"); err != nil {
			return err
		}
	}

	if len(m.TexMaps) > format.MaxTexMaps {
		return errs.InvalidArgument("too many texture maps: %d > %d", len(m.TexMaps), format.MaxTexMaps)
	}
	if len(m.AttribMaps) > format.MaxAttribMaps {
		return errs.InvalidArgument("too many attribute maps: %d > %d", len(m.AttribMaps), format.MaxAttribMaps)
	}

	seen := map[string]bool{}
	for _, t := range m.TexMaps {
		if t.Name == "" {
			return errs.InvalidArgument("texture map name is empty")
		}
		if seen[t.Name] {
			return errs.InvalidArgument("duplicate texture map name %q", t.Name)
		}
		seen[t.Name] = true

		if len(t.UV) != 2*n {
			return errs.InvalidMesh("texture map %q UV array length %d does not match 2*vertexCount %d", t.Name, len(t.UV), 2*n)
		}
		if err := validateFinite(t.UV, "uv"); err != nil {
			return err
		}
	}

	seen = map[string]bool{}
	for _, a := range m.AttribMaps {
		if a.Name == "" {
			return errs.InvalidArgument("attribute map name is empty")
		}
		if seen[a.Name] {
			return errs.InvalidArgument("duplicate attribute map name %q", a.Name)
		}
		seen[a.Name] = true

		if len(a.Data) != 4*n {
			return errs.InvalidMesh("attribute map %q data length %d does not match 4*vertexCount %d", a.Name, len(a.Data), 4*n)
		}
		if err := validateFinite(a.Data, "attribute"); err != nil {
			return err
		}
	}

	return nil
}

func validateFinite(values []float32, what string) error {
	for _, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errs.InvalidMesh("%s array contains NaN/Inf", what)
		}
	}

	return nil
}
