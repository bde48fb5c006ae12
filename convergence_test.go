package swarms

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChange(t *testing.T) {
	prev := mustMatrix(t, 2, 0, 0, 1, 1, 2, 2, 3, 3)
	cur := mustMatrix(t, 2, 0, 0, 1.5, 1, 2, 1, 3, 3)
	c, err := Change(prev, cur, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, c, 1e-12)

	c, err = Change(prev, prev, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c)

	//across the periodic boundary.
	a := mustMatrix(t, 1, 0, 179, 0)
	b := mustMatrix(t, 1, 0, -179, 0)
	c, err = Change(a, b, NewAngular(0))
	require.NoError(t, err)
	assert.InDelta(t, 2, c, 1e-9)

	_, err = Change(prev, a, nil)
	assert.True(t, errors.Is(err, MalformedInput))
}

func TestRMSD(t *testing.T) {
	a := mustMatrix(t, 2, 0, 0, 1, 1, 2, 2, 3, 3)
	b := mustMatrix(t, 2, 0, 0, 1, 3, 2, 2, 3, 3)
	r, err := RMSD(a, b, nil)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(4.0/4), r, 1e-12)
}
