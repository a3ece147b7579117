package quantize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToFromSpherical_RoundTrip(t *testing.T) {
	predicted := Vec3{X: 0, Y: 0, Z: 1}
	cases := []Vec3{
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0.5, Y: 0.5, Z: 0.707},
		{X: -0.3, Y: 0.8, Z: -0.2},
	}

	for _, n := range cases {
		n = n.Normalize()
		rho, theta, phi := ToSpherical(n, predicted)
		got := FromSpherical(rho, theta, phi, predicted)

		require.InDelta(t, n.X, got.X, 1e-4)
		require.InDelta(t, n.Y, got.Y, 1e-4)
		require.InDelta(t, n.Z, got.Z, 1e-4)
	}
}

func TestBasis_Orthonormal(t *testing.T) {
	p := Vec3{X: 0.267, Y: 0.534, Z: 0.802}.Normalize()
	u, v := Basis(p)

	require.InDelta(t, 1.0, float64(u.Length()), 1e-4)
	require.InDelta(t, 1.0, float64(v.Length()), 1e-4)
	require.InDelta(t, 0.0, float64(u.Dot(v)), 1e-4)
	require.InDelta(t, 0.0, float64(u.Dot(p)), 1e-4)
	require.InDelta(t, 0.0, float64(v.Dot(p)), 1e-4)
}

func TestToSpherical_ZeroVectorIsDegenerate(t *testing.T) {
	rho, theta, phi := ToSpherical(Vec3{}, Vec3{X: 0, Y: 0, Z: 1})

	require.Equal(t, float32(0), rho)
	require.Equal(t, float32(0), theta)
	require.Equal(t, float32(0), phi)
}

func TestVec3_Cross_RightHanded(t *testing.T) {
	x := Vec3{X: 1, Y: 0, Z: 0}
	y := Vec3{X: 0, Y: 1, Z: 0}

	z := x.Cross(y)

	require.InDelta(t, 0.0, float64(z.X), 1e-6)
	require.InDelta(t, 0.0, float64(z.Y), 1e-6)
	require.InDelta(t, 1.0, float64(z.Z), 1e-6)
}
