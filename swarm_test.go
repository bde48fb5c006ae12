package swarms

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/rmera/swarms/vn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//shiftOracle returns, for each image, a swarm of two trajectories
//around target+shift.
func shiftOracle(shift float64) OracleFunc {
	return func(ctx context.Context, image, cycle int, target []float64) (*vn.Matrix, error) {
		sw := vn.Zeros(2, len(target))
		for j, v := range target {
			sw.Set(0, j, v+shift-1)
			sw.Set(1, j, v+shift+1)
		}
		return sw, nil
	}
}

func TestAverageSwarm(t *testing.T) {
	sw := mustMatrix(t, 2, 1, 10, 2, 20, 3, 30, 6, 40)
	avg, err := AverageSwarm(sw)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 25}, avg, 1e-12)

	_, err = AverageSwarm(nil)
	assert.True(t, errors.Is(err, ExternalOracleFailure))
}

func TestEvolve(t *testing.T) {
	S := mustMatrix(t, 2, 0, 0, 1, 1, 2, 2, 3, 3)
	var calls int32
	o := OracleFunc(func(ctx context.Context, image, cycle int, target []float64) (*vn.Matrix, error) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 7, cycle)
		return shiftOracle(0.5)(ctx, image, cycle, target)
	})
	for _, parallel := range []int{0, 1, 3} {
		atomic.StoreInt32(&calls, 0)
		R, err := Evolve(context.Background(), o, S, 7, parallel)
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "anchors must not be simulated")
		assert.Equal(t, S.RawVec(0), R.RawVec(0))
		assert.Equal(t, S.RawVec(3), R.RawVec(3))
		assert.InDeltaSlice(t, []float64{1.5, 1.5}, R.RawVec(1), 1e-12)
		assert.InDeltaSlice(t, []float64{2.5, 2.5}, R.RawVec(2), 1e-12)
	}
	//S is not modified
	assert.Equal(t, []float64{1, 1}, S.RawVec(1))
}

func TestEvolveErrors(t *testing.T) {
	S := mustMatrix(t, 2, 0, 0, 1, 1, 2, 2, 3, 3)
	failing := OracleFunc(func(ctx context.Context, image, cycle int, target []float64) (*vn.Matrix, error) {
		if image == 2 {
			return nil, fmt.Errorf("ABNORMAL termination")
		}
		return shiftOracle(0)(ctx, image, cycle, target)
	})
	_, err := Evolve(context.Background(), failing, S, 1, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ExternalOracleFailure))
	assert.Equal(t, 2, ImageOf(err))
	assert.Contains(t, err.Error(), "ABNORMAL")

	wrongSize := OracleFunc(func(ctx context.Context, image, cycle int, target []float64) (*vn.Matrix, error) {
		return vn.Zeros(3, 5), nil
	})
	_, err = Evolve(context.Background(), wrongSize, S, 1, 0)
	assert.True(t, errors.Is(err, ExternalOracleFailure))

	//an oracle that returns nothing, and no error.
	empty := OracleFunc(func(ctx context.Context, image, cycle int, target []float64) (*vn.Matrix, error) {
		if image == 1 {
			return nil, nil
		}
		return shiftOracle(0)(ctx, image, cycle, target)
	})
	_, err = Evolve(context.Background(), empty, S, 1, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ExternalOracleFailure))
	assert.Equal(t, 1, ImageOf(err))
	assert.Contains(t, err.Error(), "no swarm returned")
}
