// Package openctm implements the OpenCTM compressed triangle mesh format:
// a small binary container plus three interchangeable compression methods
// (RAW, MG1, MG2) for vertices, triangle indices, optional normals, and up
// to eight texture and attribute maps per mesh.
//
// The package exposes two layers. Context gives the stateful IMPORT/EXPORT
// workflow of the reference C API, with a sticky error slot instead of a
// global error variable. Encode/Decode give a single-call alternative for
// callers who already have a complete in-memory Mesh and don't need the
// state machine.
package openctm

import (
	"io"

	"github.com/wangfeilong321/openctm/codec"
)

// Mesh, TexMap, and AttribMap are re-exported from package codec so callers
// never need to import it directly.
type (
	Mesh      = codec.Mesh
	TexMap    = codec.TexMap
	AttribMap = codec.AttribMap
)

// Encode writes mesh to w, applying opts over DefaultEncodeOptions's
// defaults (method MG1, reference precisions, LZMA level 6).
func Encode(w io.Writer, mesh *Mesh, opts ...Option) error {
	cfg := codec.DefaultEncodeOptions()
	if err := applyOptions(&cfg, opts); err != nil {
		return err
	}

	return codec.Encode(w, mesh, cfg)
}

// Decode reads a complete CTM file from r and returns its mesh. The
// returned mesh is in canonical (reindexed) order for MG1/MG2 files; RAW
// files round-trip in their original array order.
func Decode(r io.Reader) (*Mesh, error) {
	return codec.Decode(r)
}
