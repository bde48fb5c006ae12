/*
 * swarm.go, part of swarms.
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosDOTutaDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package swarms

import (
	"context"
	"math"

	"github.com/rmera/swarms/vn"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//AverageSwarm returns the mean of each variable over all the trajectories (rows) of the swarm sw.
//Angular variables are averaged as plain numbers, as in the simulation engine output they are
//already unwrapped around the target.
func AverageSwarm(sw *vn.Matrix) ([]float64, error) {
	if sw == nil || sw.Dense == nil || sw.NVecs() == 0 {
		return nil, NewError(ExternalOracleFailure, -1, "AverageSwarm", "empty swarm")
	}
	nvars := sw.NVars()
	ret := make([]float64, nvars)
	col := make([]float64, sw.NVecs())
	for j := 0; j < nvars; j++ {
		mat.Col(col, j, sw.Dense)
		ret[j] = stat.Mean(col, nil)
		if math.IsNaN(ret[j]) || math.IsInf(ret[j], 0) {
			return nil, NewError(ExternalOracleFailure, -1, "AverageSwarm", "variable %d averages to %v", j, ret[j])
		}
	}
	return ret, nil
}

//Evolve runs a swarm for every interior image of prev, using it as target, and returns the
//string formed by the swarm averages. The first and last images are copied from prev.
//At most parallel swarms run at the same time (no limit if parallel<1). The first error
//cancels the swarms not yet finished and is returned decorated with the failing image.
func Evolve(ctx context.Context, o Oracle, prev *vn.Matrix, cycle, parallel int) (*vn.Matrix, error) {
	n := prev.NVecs()
	nvars := prev.NVars()
	ret := prev.Clone()
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i := 1; i < n-1; i++ {
		i := i //per-iteration copy; go.mod targets go 1.21 (pre-1.22 loopvar semantics)
		g.Go(func() error {
			target := prev.CopyVec(nil, i)
			sw, err := o.Swarm(ctx, i, cycle, target)
			if err != nil {
				return oracleErr(err, i)
			}
			if sw == nil || sw.Dense == nil || sw.NVecs() == 0 {
				return NewError(ExternalOracleFailure, i, "Evolve", "no swarm returned")
			}
			if sw.NVars() != nvars {
				return NewError(ExternalOracleFailure, i, "Evolve", "swarm has %d variables, string has %d", sw.NVars(), nvars)
			}
			avg, err := AverageSwarm(sw)
			if err != nil {
				return oracleErr(err, i)
			}
			//each goroutine writes to its own row.
			ret.SetVec(i, avg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}

//oracleErr makes sure errors coming from an oracle carry the failing image.
func oracleErr(err error, image int) error {
	if ImageOf(err) >= 0 {
		return Decorate(err, "Evolve")
	}
	return NewError(ExternalOracleFailure, image, "Evolve", "%v", err)
}
