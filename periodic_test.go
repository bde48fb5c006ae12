package swarms

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	d, err := Distance([]float64{0, 0}, []float64{3, 4}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-12)

	ang := NewAngular(0)
	d, err = Distance([]float64{170, 0}, []float64{-170, 0}, ang)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, d, 1e-9)

	//the same points, but the first variable is not periodic.
	d, err = Distance([]float64{170, 0}, []float64{-170, 0}, NewAngular(1))
	require.NoError(t, err)
	assert.InDelta(t, 340.0, d, 1e-9)

	_, err = Distance([]float64{0, 0}, []float64{1, 2, 3}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, MalformedInput))
}

func TestWrapAngle(t *testing.T) {
	cases := []struct{ in, out180, out360 float64 }{
		{190, -170, 190},
		{-190, 170, 170},
		{540, -180, 180},
		{180, -180, 180},
		{-180, -180, 180},
		{0, 0, 0},
		{359.5, -0.5, 359.5},
		{-10, -10, 350},
		{725, 5, 5},
	}
	for _, c := range cases {
		assert.InDelta(t, c.out180, WrapAngle180(c.in), 1e-9, "WrapAngle180(%v)", c.in)
		assert.InDelta(t, c.out360, WrapAngle360(c.in), 1e-9, "WrapAngle360(%v)", c.in)
	}
	for _, x := range []float64{-1e6, -725.3, -180, -179.999, 0.1, 179.999, 180, 333.3, 1e7} {
		w := WrapAngle180(x)
		assert.Equal(t, w, WrapAngle180(w), "not idempotent for %v", x)
		assert.True(t, w >= -180 && w < 180, "%v out of range", w)
		w = WrapAngle360(x)
		assert.Equal(t, w, WrapAngle360(w), "not idempotent for %v", x)
		assert.True(t, w >= 0 && w < 360, "%v out of range", w)
	}
}

func TestAngularWrap(t *testing.T) {
	ang := NewAngular(0).SetAbs(2)
	v := ang.Wrap([]float64{200, 200, -30})
	assert.InDeltaSlice(t, []float64{-160, 200, 30}, v, 1e-9)
	assert.Equal(t, []int{0, 2}, ang.Dims())

	ang.Zero360 = true
	v = ang.Wrap([]float64{-20, -20, -20})
	assert.InDeltaSlice(t, []float64{340, -20, 340}, v, 1e-9)

	var none *Angular
	assert.False(t, none.Is(0))
	assert.Empty(t, none.Dims())
	assert.NoError(t, none.Validate(3))
	assert.Equal(t, []float64{500}, none.Wrap([]float64{500}))

	err := NewAngular(5).Validate(2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, MalformedInput))

	//the zero value must be usable too.
	var z Angular
	z.SetAbs(1)
	assert.True(t, z.Is(1))
}

func TestDifference(t *testing.T) {
	ang := NewAngular(0, 1)
	d, err := Difference([]float64{170, -10}, []float64{-170, 10}, ang, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{20, 20}, d, 1e-9)

	dst := make([]float64, 2)
	d, err = Difference([]float64{0, 0}, []float64{180, -180}, ang, dst)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{180, 180}, d, 1e-9)
	assert.Equal(t, &dst[0], &d[0], "dst was not reused")

	d, err = Difference([]float64{1, 2}, []float64{4, 6}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, d)
	assert.InDelta(t, 5.0, Magnitude(d), 1e-12)
}

func TestNormalizeAdd(t *testing.T) {
	u, err := Normalize([]float64{3, 0, 4}, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.6, 0, 0.8}, u, 1e-12)

	_, err = Normalize([]float64{0, 0}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, DegenerateGeometry))
	_, err = Normalize([]float64{math.NaN(), 1}, nil)
	assert.True(t, errors.Is(err, DegenerateGeometry))

	s, err := Add([]float64{1, 2}, []float64{3, 4}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6}, s)
	_, err = Add([]float64{1}, []float64{3, 4}, nil)
	assert.True(t, errors.Is(err, MalformedInput))
}

func TestParseDims(t *testing.T) {
	d, err := ParseDims("0, 1,14-16")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 14, 15, 16}, d)

	d, err = ParseDims("")
	require.NoError(t, err)
	assert.Nil(t, d)

	for _, bad := range []string{"a", "3-1", "1,,2", "2-x"} {
		_, err = ParseDims(bad)
		assert.Error(t, err, bad)
	}
}
