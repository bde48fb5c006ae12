package swarms

import (
	"errors"
	"math"
	"testing"

	"github.com/rmera/swarms/vn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMatrix(t *testing.T, nvars int, data ...float64) *vn.Matrix {
	t.Helper()
	m, err := vn.NewMatrix(data, nvars)
	require.NoError(t, err)
	return m
}

func assertSameString(t *testing.T, expected, actual *vn.Matrix, delta float64) {
	t.Helper()
	require.Equal(t, expected.NVecs(), actual.NVecs())
	require.Equal(t, expected.NVars(), actual.NVars())
	for i := 0; i < expected.NVecs(); i++ {
		assert.InDeltaSlice(t, expected.RawVec(i), actual.RawVec(i), delta, "image %d", i)
	}
}

func TestReparametrizeLine(t *testing.T) {
	S := mustMatrix(t, 2, 0, 0, 1, 0, 3, 0, 10, 0)
	R, err := Reparametrize(S, 6, nil)
	require.NoError(t, err)
	expected := mustMatrix(t, 2, 0, 0, 2, 0, 4, 0, 6, 0, 8, 0, 10, 0)
	assertSameString(t, expected, R, 1e-9)
	//anchors are copied, not recomputed.
	assert.Equal(t, S.RawVec(0), R.RawVec(0))
	assert.Equal(t, S.RawVec(3), R.RawVec(5))
	//S is not modified
	assert.Equal(t, []float64{3, 0}, S.RawVec(2))
}

func TestReparametrizeEqualSegments(t *testing.T) {
	//a noisy, unevenly spaced straight line in 3D.
	S := mustMatrix(t, 3,
		0, 0, 0,
		0.1, 0.2, 0.3,
		0.2, 0.4, 0.6,
		1, 2, 3,
		1.1, 2.2, 3.3,
		4, 8, 12)
	for _, nimg := range []int{2, 3, 6, 17, 40} {
		R, err := Reparametrize(S, nimg, nil)
		require.NoError(t, err)
		require.Equal(t, nimg, R.NVecs())
		seg, err := SegmentLengths(R, nil)
		require.NoError(t, err)
		for _, s := range seg {
			assert.InDelta(t, seg[0], s, 1e-4, "nimg=%d", nimg)
		}
		assert.Equal(t, S.RawVec(0), R.RawVec(0))
		assert.Equal(t, S.RawVec(5), R.RawVec(nimg-1))
	}
}

func TestReparametrizeCurve(t *testing.T) {
	S := mustMatrix(t, 2, 0, 0, 1, 2, 3, 3, 6, 3.5, 8, 6)
	arc, err := ArcLength(S, nil)
	require.NoError(t, err)
	spacing := arc.Total() / 10
	R, err := Reparametrize(S, 11, nil)
	require.NoError(t, err)
	seg, err := SegmentLengths(R, nil)
	require.NoError(t, err)
	//a chord is never longer than the arc it cuts.
	for _, s := range seg {
		assert.LessOrEqual(t, s, spacing+1e-9)
	}
	assert.Equal(t, S.RawVec(4), R.RawVec(10))
}

func TestReparametrizeIdempotent(t *testing.T) {
	//vertices of a regular polygon are already equally spaced.
	n := 7
	data := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		a := float64(i) * 15 * math.Pi / 180
		data = append(data, 10*math.Cos(a), 10*math.Sin(a))
	}
	S := mustMatrix(t, 2, data...)
	R, err := Reparametrize(S, n, nil)
	require.NoError(t, err)
	assertSameString(t, S, R, 1e-9)
	R2, err := Reparametrize(R, n, nil)
	require.NoError(t, err)
	assertSameString(t, R, R2, 1e-9)
}

func TestReparametrizePeriodic(t *testing.T) {
	ang := NewAngular(0)
	S := mustMatrix(t, 2, 170, 0, -150, 10)
	R, err := Reparametrize(S, 3, ang)
	require.NoError(t, err)
	//the string goes through 180, not through 0.
	assert.InDelta(t, -170, R.At(1, 0), 1e-9)
	assert.InDelta(t, 5, R.At(1, 1), 1e-9)
	assert.Equal(t, []float64{-150, 10}, R.RawVec(2))

	seg, err := SegmentLengths(R, ang)
	require.NoError(t, err)
	assert.InDelta(t, seg[0], seg[1], 1e-9)
}

func TestReparametrizeShort(t *testing.T) {
	//a string much shorter than the endpoint tolerance, in absolute terms.
	S := mustMatrix(t, 2, 0, 0, 4e-7, 0, 8e-7, 0)
	R, err := Reparametrize(S, 5, nil)
	require.NoError(t, err)
	expected := mustMatrix(t, 2, 0, 0, 2e-7, 0, 4e-7, 0, 6e-7, 0, 8e-7, 0)
	assertSameString(t, expected, R, 1e-15)
	assert.Equal(t, S.RawVec(2), R.RawVec(4))
}

func TestReparametrizeErrors(t *testing.T) {
	S := mustMatrix(t, 2, 0, 0, 1, 1, 1, 1, 2, 2)
	_, err := Reparametrize(S, 4, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, DegenerateGeometry))
	assert.Equal(t, 1, ImageOf(err))

	_, err = Reparametrize(S, 1, nil)
	assert.True(t, errors.Is(err, MalformedInput))

	_, err = Reparametrize(S, 4, NewAngular(3))
	assert.True(t, errors.Is(err, MalformedInput))

	one := mustMatrix(t, 2, 0, 0)
	_, err = Reparametrize(one, 4, nil)
	assert.True(t, errors.Is(err, MalformedInput))
}

func TestLinear(t *testing.T) {
	S, err := Linear([]float64{0, 0}, []float64{4, 8}, 5, nil)
	require.NoError(t, err)
	expected := mustMatrix(t, 2, 0, 0, 1, 2, 2, 4, 3, 6, 4, 8)
	assertSameString(t, expected, S, 1e-12)

	S, err = Linear([]float64{-150, 0}, []float64{150, 0}, 4, NewAngular(0))
	require.NoError(t, err)
	//the short way around, through 180.
	assert.InDelta(t, -170, S.At(1, 0), 1e-9)
	assert.InDelta(t, 170, S.At(2, 0), 1e-9)

	_, err = Linear([]float64{0}, []float64{1, 2}, 4, nil)
	assert.Error(t, err)
}
