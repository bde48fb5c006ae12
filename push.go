/*
 * push.go, part of swarms.
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
	"math"
	"math/rand"

	"github.com/rmera/swarms/vn"
	"gonum.org/v1/gonum/floats"
)

//below this, the two normals around an image are considered to cancel each other.
const foldTol = 1e-8

//Push returns a new string where each interior image of S has been displaced along a
//direction (quasi) orthogonal to the string, by Annealing.Value(cycle)*multiplier.
//The first and last images are copied unchanged. S is not modified.
func Push(S *vn.Matrix, cycle float64, o *PushOptions) (*vn.Matrix, error) {
	if o == nil {
		o = DefaultPushOptions()
	}
	n := S.NVecs()
	if n < 3 {
		return nil, NewError(MalformedInput, -1, "Push", "a string needs at least 3 images to be pushed, got %d", n)
	}
	if err := o.Annealing.Validate(); err != nil {
		return nil, Decorate(err, "Push")
	}
	if err := o.Angular.Validate(S.NVars()); err != nil {
		return nil, Decorate(err, "Push")
	}
	dirs, err := PushDirections(S, o.Mode, o.Angular, o.rng())
	if err != nil {
		return nil, Decorate(err, "Push")
	}
	sa := o.Annealing.Value(cycle)
	mult := o.Multiplier
	if o.Policy == AverageDistanceMultiplier {
		seg, err := SegmentLengths(S, o.Angular)
		if err != nil {
			return nil, Decorate(err, "Push")
		}
		mult = (floats.Sum(seg) / float64(len(seg))) * (1 + sa)
	}
	scale := sa * mult
	ret := S.Clone()
	for i := 1; i < n-1; i++ {
		v := ret.RawVec(i)
		floats.AddScaled(v, scale, dirs.RawVec(i))
		o.Angular.Wrap(v)
	}
	return ret, nil
}

//PushDirections returns a matrix with the unit push direction for each image of S.
//The vectors for the first and last images are zero, as those are never pushed.
func PushDirections(S *vn.Matrix, mode PushMode, ang *Angular, rng *rand.Rand) (*vn.Matrix, error) {
	var ret *vn.Matrix
	var err error
	switch mode {
	case TangentND:
		ret, err = tangentsND(S, ang, rng)
	case Normal2D:
		ret, err = normals2D(S, ang, rng)
	default:
		err = NewError(MalformedInput, -1, "PushDirections", "unknown push mode %s", mode)
	}
	if err != nil {
		return nil, Decorate(err, "PushDirections")
	}
	return ret, nil
}

func unitAt(v []float64, image int, caller string) ([]float64, error) {
	u, err := Normalize(v, v)
	if err != nil {
		return nil, NewError(DegenerateGeometry, image, caller, "%v", err)
	}
	return u, nil
}

//For each triple a,b,c the normals to b-a and c-b, both taken on the same side of the
//path, are summed, which gives the normal to the bisector of the two chords. Which side
//is used is chosen once per call, so all pushes are coherent.
func normals2D(S *vn.Matrix, ang *Angular, rng *rand.Rand) (*vn.Matrix, error) {
	n := S.NVecs()
	if S.NVars() != 2 {
		return nil, NewError(MalformedInput, -1, "normals2D", "explicit normals need 2 variables, got %d", S.NVars())
	}
	direction := rng.Intn(2)
	perp := func(v []float64) []float64 {
		if direction == 0 {
			return []float64{-v[1], v[0]}
		}
		return []float64{v[1], -v[0]}
	}
	ret := vn.Zeros(n, 2)
	for i := 1; i < n-1; i++ {
		v1, err := Difference(S.RawVec(i-1), S.RawVec(i), ang, nil)
		if err != nil {
			return nil, Decorate(err, "normals2D")
		}
		v2, err := Difference(S.RawVec(i), S.RawVec(i+1), ang, nil)
		if err != nil {
			return nil, Decorate(err, "normals2D")
		}
		u1, err := unitAt(perp(v1), i, "normals2D")
		if err != nil {
			return nil, err
		}
		u2, err := unitAt(perp(v2), i, "normals2D")
		if err != nil {
			return nil, err
		}
		sum := make([]float64, 2)
		floats.AddTo(sum, u1, u2)
		if Magnitude(sum) < foldTol {
			//the string folds back on itself at b, the normals cancel.
			ret.SetVec(i, u1)
			continue
		}
		u, err := unitAt(sum, i, "normals2D")
		if err != nil {
			return nil, err
		}
		ret.SetVec(i, u)
	}
	return ret, nil
}

//The direction for each image is one of the infinitely many vectors orthogonal to the
//secant from the previous image, picked at random.
func tangentsND(S *vn.Matrix, ang *Angular, rng *rand.Rand) (*vn.Matrix, error) {
	n := S.NVecs()
	nvars := S.NVars()
	if nvars < 2 {
		return nil, NewError(MalformedInput, -1, "tangentsND", "no direction is orthogonal to a 1-dimensional string")
	}
	ret := vn.Zeros(n, nvars)
	for i := 1; i < n-1; i++ {
		d, err := Difference(S.RawVec(i-1), S.RawVec(i), ang, nil)
		if err != nil {
			return nil, Decorate(err, "tangentsND")
		}
		t, err := Orthogonal(d, rng)
		if err != nil {
			return nil, NewError(DegenerateGeometry, i, "tangentsND", "%v", err)
		}
		ret.SetVec(i, t)
	}
	return ret, nil
}

//Orthogonal returns a random unit vector orthogonal to d. All but one of its coordinates
//are drawn uniformly from [-1,1]; the remaining one, chosen at random, is solved from
//sum(t_i*d_i)=0. If d is zero in that coordinate, the coordinate where |d| is largest
//is solved instead.
func Orthogonal(d []float64, rng *rand.Rand) ([]float64, error) {
	n := len(d)
	if n < 2 {
		return nil, NewError(MalformedInput, -1, "Orthogonal", "need at least 2 dimensions, got %d", n)
	}
	calc := rng.Intn(n)
	t := make([]float64, n)
	for i := range t {
		t[i] = 2*rng.Float64() - 1
	}
	if d[calc] == 0 {
		for i, v := range d {
			if math.Abs(v) > math.Abs(d[calc]) {
				calc = i
			}
		}
	}
	if d[calc] == 0 {
		return nil, NewError(DegenerateGeometry, -1, "Orthogonal", "zero-length secant")
	}
	var sum float64
	for i, v := range d {
		if i != calc {
			sum += t[i] * v
		}
	}
	t[calc] = -sum / d[calc]
	u, err := Normalize(t, t)
	if err != nil {
		return nil, Decorate(err, "Orthogonal")
	}
	return u, nil
}
