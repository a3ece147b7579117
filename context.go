package openctm

import (
	"io"
	"os"

	"github.com/wangfeilong321/openctm/codec"
	"github.com/wangfeilong321/openctm/errs"
	"github.com/wangfeilong321/openctm/format"
)

// Mode selects whether a Context builds a mesh for writing (Export) or
// reads one from a stream (Import), mirroring the reference API's
// CTM_EXPORT/CTM_IMPORT context kinds.
type Mode int

const (
	ModeExport Mode = iota
	ModeImport
)

// state tracks the context's position in its lifecycle:
//
//	EXPORT: Empty -> MeshDefined -> {MapsDefined}* -> Saved
//	IMPORT: Empty -> Loaded
type state int

const (
	stateEmpty state = iota
	stateMeshDefined
	stateMapsDefined
	stateSaved
	stateLoaded
)

// Context is the stateful handle the reference API exposes as
// CTMcontext: a mesh under construction (Export) or just read (Import),
// plus a sticky error slot that records the most recent failure until
// GetError consumes it. Illegal calls set the sticky error without mutating state.
type Context struct {
	mode   Mode
	state  state
	closed bool
	mesh   codec.Mesh
	sticky *errs.Error
}

// NewExportContext creates a Context for building and saving a mesh.
func NewExportContext() *Context {
	return &Context{mode: ModeExport}
}

// NewImportContext creates a Context for loading a mesh from a stream.
func NewImportContext() *Context {
	return &Context{mode: ModeImport}
}

// Close releases the context. After Close, DefineMesh, AddTexMap,
// AddAttribMap, Save, and Load report INVALID_CONTEXT. GetError and the
// read-only accessors keep working, and SaveFile still creates (or
// truncates) its file before Save reports the error.
func (c *Context) Close() {
	c.closed = true
}

// GetError returns the context's sticky error, if any, and clears it: a
// second call immediately after returns nil until another operation fails.
func (c *Context) GetError() *errs.Error {
	e := c.sticky
	c.sticky = nil

	return e
}

func (c *Context) fail(err error) error {
	e := asSticky(err)
	c.sticky = e

	return e
}

func asSticky(err error) *errs.Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*errs.Error); ok { //nolint:errorlint
		return e
	}

	return errs.InternalError("%v", err)
}

func (c *Context) checkOpen() error {
	if c.closed {
		return errs.InvalidContext("context is closed")
	}

	return nil
}

// DefineMesh begins an export: it records vertices, triangle indices, and
// optional normals. It is only legal once, on a fresh export context
// (the Empty -> MeshDefined transition).
func (c *Context) DefineMesh(vertices []float32, triangles []uint32, normals []float32) error {
	if err := c.checkOpen(); err != nil {
		return c.fail(err)
	}
	if c.mode != ModeExport {
		return c.fail(errs.InvalidOperation("DefineMesh requires an export context"))
	}
	if c.state != stateEmpty {
		return c.fail(errs.InvalidOperation("DefineMesh called more than once"))
	}

	mesh := codec.Mesh{Vertices: vertices, Triangles: triangles, Normals: normals}
	if err := mesh.Validate(); err != nil {
		return c.fail(err)
	}

	c.mesh = mesh
	c.state = stateMeshDefined

	return nil
}

// AddTexMap attaches a named texture coordinate set. It is legal any time
// after DefineMesh and before Save.
func (c *Context) AddTexMap(uv []float32, name, filename string) error {
	if err := c.checkOpen(); err != nil {
		return c.fail(err)
	}
	if c.mode != ModeExport {
		return c.fail(errs.InvalidOperation("AddTexMap requires an export context"))
	}
	if c.state != stateMeshDefined && c.state != stateMapsDefined {
		return c.fail(errs.InvalidOperation("AddTexMap called before DefineMesh or after Save"))
	}
	if name == "" {
		return c.fail(errs.InvalidArgument("texture map name is empty"))
	}
	if len(c.mesh.TexMaps) >= format.MaxTexMaps {
		return c.fail(errs.InvalidArgument("mesh already has the maximum of %d texture maps", format.MaxTexMaps))
	}

	c.mesh.TexMaps = append(c.mesh.TexMaps, codec.TexMap{Name: name, Filename: filename, UV: uv})
	c.state = stateMapsDefined

	return nil
}

// AddAttribMap attaches a named custom per-vertex attribute set. It is
// legal any time after DefineMesh and before Save.
func (c *Context) AddAttribMap(data []float32, name string) error {
	if err := c.checkOpen(); err != nil {
		return c.fail(err)
	}
	if c.mode != ModeExport {
		return c.fail(errs.InvalidOperation("AddAttribMap requires an export context"))
	}
	if c.state != stateMeshDefined && c.state != stateMapsDefined {
		return c.fail(errs.InvalidOperation("AddAttribMap called before DefineMesh or after Save"))
	}
	if name == "" {
		return c.fail(errs.InvalidArgument("attribute map name is empty"))
	}
	if len(c.mesh.AttribMaps) >= format.MaxAttribMaps {
		return c.fail(errs.InvalidArgument("mesh already has the maximum of %d attribute maps", format.MaxAttribMaps))
	}

	c.mesh.AttribMaps = append(c.mesh.AttribMaps, codec.AttribMap{Name: name, Data: data})
	c.state = stateMapsDefined

	return nil
}

// Save encodes the defined mesh to w and transitions the context to Saved.
func (c *Context) Save(w io.Writer, opts ...Option) error {
	if err := c.checkOpen(); err != nil {
		return c.fail(err)
	}
	if c.mode != ModeExport {
		return c.fail(errs.InvalidOperation("Save requires an export context"))
	}
	if c.state != stateMeshDefined && c.state != stateMapsDefined {
		return c.fail(errs.InvalidOperation("Save called before DefineMesh or more than once"))
	}

	cfg := codec.DefaultEncodeOptions()
	if err := applyOptions(&cfg, opts); err != nil {
		return c.fail(err)
	}

	if err := codec.Encode(w, &c.mesh, cfg); err != nil {
		return c.fail(err)
	}

	c.state = stateSaved

	return nil
}

// SaveFile creates (or truncates) path and Saves the mesh to it.
func (c *Context) SaveFile(path string, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return c.fail(errs.FileError("create %s: %v", path, err))
	}
	defer f.Close()

	return c.Save(f, opts...)
}

// Load decodes a complete CTM file from r. It is only legal once, on a
// fresh import context (the Empty -> Loaded transition). A failed decode
// leaves the context in Empty, so a caller may retry with a fresh reader.
func (c *Context) Load(r io.Reader) error {
	if err := c.checkOpen(); err != nil {
		return c.fail(err)
	}
	if c.mode != ModeImport {
		return c.fail(errs.InvalidOperation("Load requires an import context"))
	}
	if c.state != stateEmpty {
		return c.fail(errs.InvalidOperation("Load called more than once"))
	}

	mesh, err := codec.Decode(r)
	if err != nil {
		return c.fail(err)
	}

	c.mesh = *mesh
	c.state = stateLoaded

	return nil
}

// LoadFile opens path and Loads the mesh from it.
func (c *Context) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return c.fail(errs.FileError("open %s: %v", path, err))
	}
	defer f.Close()

	return c.Load(f)
}

func (c *Context) hasMesh() bool {
	switch c.state {
	case stateMeshDefined, stateMapsDefined, stateSaved, stateLoaded:
		return true
	default:
		return false
	}
}

// VertexCount returns the mesh's vertex count, or 0 if no mesh has been
// defined or loaded yet.
func (c *Context) VertexCount() int {
	if !c.hasMesh() {
		return 0
	}

	return c.mesh.VertexCount()
}

// TriangleCount returns the mesh's triangle count, or 0 if no mesh has been
// defined or loaded yet.
func (c *Context) TriangleCount() int {
	if !c.hasMesh() {
		return 0
	}

	return c.mesh.TriangleCount()
}

// HasNormals reports whether the mesh carries per-vertex normals.
func (c *Context) HasNormals() bool {
	return c.hasMesh() && c.mesh.HasNormals()
}

// TexMapCount returns the number of texture maps attached to the mesh.
func (c *Context) TexMapCount() int {
	if !c.hasMesh() {
		return 0
	}

	return len(c.mesh.TexMaps)
}

// AttribMapCount returns the number of attribute maps attached to the mesh.
func (c *Context) AttribMapCount() int {
	if !c.hasMesh() {
		return 0
	}

	return len(c.mesh.AttribMaps)
}

// Comment returns the file comment read back on import. On an export
// context it is always empty: the comment written by Save comes from the
// WithComment option and is not stored on the context.
func (c *Context) Comment() string {
	if !c.hasMesh() {
		return ""
	}

	return c.mesh.Comment
}

// Vertices returns the mesh's component-major vertex array.
func (c *Context) Vertices() []float32 {
	if !c.hasMesh() {
		return nil
	}

	return c.mesh.Vertices
}

// Triangles returns the mesh's component-major triangle index array.
func (c *Context) Triangles() []uint32 {
	if !c.hasMesh() {
		return nil
	}

	return c.mesh.Triangles
}

// Normals returns the mesh's component-major normal array, or nil if the
// mesh has none.
func (c *Context) Normals() []float32 {
	if !c.hasMesh() {
		return nil
	}

	return c.mesh.Normals
}

// TexMap returns texture map i and true, or a zero value and false if i is
// out of range.
func (c *Context) TexMap(i int) (codec.TexMap, bool) {
	if !c.hasMesh() || i < 0 || i >= len(c.mesh.TexMaps) {
		return codec.TexMap{}, false
	}

	return c.mesh.TexMaps[i], true
}

// AttribMap returns attribute map i and true, or a zero value and false if
// i is out of range.
func (c *Context) AttribMap(i int) (codec.AttribMap, bool) {
	if !c.hasMesh() || i < 0 || i >= len(c.mesh.AttribMaps) {
		return codec.AttribMap{}, false
	}

	return c.mesh.AttribMaps[i], true
}

// TexMapByName resolves name to its index.
func (c *Context) TexMapByName(name string) (int, bool) {
	if !c.hasMesh() {
		return 0, false
	}

	return c.mesh.TexMapByName(name)
}

// AttribMapByName resolves name to its index, mirroring TexMapByName.
func (c *Context) AttribMapByName(name string) (int, bool) {
	if !c.hasMesh() {
		return 0, false
	}

	return c.mesh.AttribMapByName(name)
}

// Mesh returns a copy of the context's current mesh, or nil if none has
// been defined or loaded yet.
func (c *Context) Mesh() *codec.Mesh {
	if !c.hasMesh() {
		return nil
	}

	m := c.mesh

	return &m
}
