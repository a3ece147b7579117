package openctm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wangfeilong321/openctm/errs"
	"github.com/wangfeilong321/openctm/format"
)

func triangleMesh() ([]float32, []uint32) {
	vertices := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	triangles := []uint32{0, 1, 2}

	return vertices, triangles
}

func TestContext_ExportLifecycle(t *testing.T) {
	verts, tris := triangleMesh()
	ctx := NewExportContext()
	defer ctx.Close()

	require.NoError(t, ctx.DefineMesh(verts, tris, nil))
	require.NoError(t, ctx.AddTexMap(make([]float32, 2*3), "uv0", ""))

	var buf bytes.Buffer
	require.NoError(t, ctx.Save(&buf))

	require.Nil(t, ctx.GetError())
}

func TestContext_AddTexMapBeforeDefineMeshIsInvalidOperation(t *testing.T) {
	ctx := NewExportContext()
	defer ctx.Close()

	err := ctx.AddTexMap(nil, "uv0", "")
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidOperation, errs.CodeOf(err))

	sticky := ctx.GetError()
	require.NotNil(t, sticky)
	require.Equal(t, errs.CodeInvalidOperation, sticky.Code)

	// GetError clears the sticky slot.
	require.Nil(t, ctx.GetError())
}

func TestContext_AddTexMapEmptyNameIsInvalidArgument(t *testing.T) {
	verts, tris := triangleMesh()
	ctx := NewExportContext()
	defer ctx.Close()

	require.NoError(t, ctx.DefineMesh(verts, tris, nil))

	err := ctx.AddTexMap(make([]float32, 2*3), "", "")
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidArgument, errs.CodeOf(err))
}

func TestContext_SaveOnImportContextIsInvalidOperation(t *testing.T) {
	ctx := NewImportContext()
	defer ctx.Close()

	var buf bytes.Buffer
	err := ctx.Save(&buf)
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidOperation, errs.CodeOf(err))
}

func TestContext_DoubleDefineMeshIsInvalidOperation(t *testing.T) {
	verts, tris := triangleMesh()
	ctx := NewExportContext()
	defer ctx.Close()

	require.NoError(t, ctx.DefineMesh(verts, tris, nil))
	err := ctx.DefineMesh(verts, tris, nil)
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidOperation, errs.CodeOf(err))
}

func TestContext_ImportExportRoundTrip(t *testing.T) {
	verts, tris := triangleMesh()
	exportCtx := NewExportContext()
	defer exportCtx.Close()

	require.NoError(t, exportCtx.DefineMesh(verts, tris, nil))

	var buf bytes.Buffer
	require.NoError(t, exportCtx.Save(&buf, WithMethod(format.MethodRaw), WithComment("hi")))

	importCtx := NewImportContext()
	defer importCtx.Close()

	require.NoError(t, importCtx.Load(&buf))
	require.Equal(t, 3, importCtx.VertexCount())
	require.Equal(t, 1, importCtx.TriangleCount())
}

func TestContext_LoadTruncatedStreamLeavesContextEmpty(t *testing.T) {
	ctx := NewImportContext()
	defer ctx.Close()

	err := ctx.Load(bytes.NewReader([]byte{0x01, 0x02}))
	require.Error(t, err)
	require.Equal(t, errs.CodeFileError, errs.CodeOf(err))

	require.Equal(t, 0, ctx.VertexCount())

	// A fresh, valid Load should still be legal: the failed attempt did
	// not advance the state machine past Empty.
	verts, tris := triangleMesh()
	exportCtx := NewExportContext()
	defer exportCtx.Close()
	require.NoError(t, exportCtx.DefineMesh(verts, tris, nil))

	var buf bytes.Buffer
	require.NoError(t, exportCtx.Save(&buf))
	require.NoError(t, ctx.Load(&buf))
}

func TestContext_ClosedContextIsInvalidContext(t *testing.T) {
	ctx := NewExportContext()
	ctx.Close()

	err := ctx.DefineMesh(nil, nil, nil)
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidContext, errs.CodeOf(err))
}
