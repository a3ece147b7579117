package stream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wangfeilong321/openctm/errs"
)

func TestWriteReadPrimitives_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteU32(0xDEADBEEF))
	require.NoError(t, w.WriteF32(3.5))
	require.NoError(t, w.WriteString("hello"))
	require.NoError(t, w.WriteU32Array([]uint32{1, 2, 3}))
	require.NoError(t, w.WriteF32Array([]float32{1.5, -2.5}))

	r := NewReader(&buf)

	u, err := r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u)

	f, err := r.ReadF32()
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f)

	s, err := r.ReadString(1024)
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	arr, err := r.ReadU32Array(3)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2, 3}, arr)

	farr, err := r.ReadF32Array(2)
	require.NoError(t, err)
	require.Equal(t, []float32{1.5, -2.5}, farr)
}

func TestReadExact_ShortReadIsFileError(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02}))

	_, err := r.ReadU32()
	require.Error(t, err)
	require.Equal(t, errs.CodeFileError, errs.CodeOf(err))
}

func TestReadString_RejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteU32(1<<20))

	r := NewReader(&buf)
	_, err := r.ReadString(16)
	require.Error(t, err)
	require.Equal(t, errs.CodeFormatError, errs.CodeOf(err))
}
