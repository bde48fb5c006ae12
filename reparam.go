/*
 * reparam.go, part of swarms.
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
	"sort"

	"github.com/rmera/swarms/vn"
	"gonum.org/v1/gonum/floats"
)

//EndpointTolerance is the tolerance, relative to the total length of the string,
//used to decide that a target arc length corresponds to the last image of a string.
const EndpointTolerance = 1e-5

//ArcTable contains the arc-length information for a string. Grad has one unit
//vector per segment (i.e. NVecs()-1 of them) going from image i to image i+1.
//Length[i] is the length of the string from the first image to the ith image.
type ArcTable struct {
	Grad   *vn.Matrix
	Length []float64
}

//Total returns the total length of the string.
func (A *ArcTable) Total() float64 {
	return A.Length[len(A.Length)-1]
}

//ArcLength builds the ArcTable for the string S, taking into account the
//periodic variables in ang. A segment of zero length is a DegenerateGeometry error
//associated to the first image of the segment.
func ArcLength(S *vn.Matrix, ang *Angular) (*ArcTable, error) {
	n := S.NVecs()
	if n < 2 {
		return nil, NewError(MalformedInput, -1, "ArcLength", "a string needs at least 2 images, got %d", n)
	}
	nvars := S.NVars()
	A := &ArcTable{Grad: vn.Zeros(n-1, nvars), Length: make([]float64, n)}
	for i := 0; i < n-1; i++ {
		g := A.Grad.RawVec(i)
		if _, err := Difference(S.RawVec(i), S.RawVec(i+1), ang, g); err != nil {
			return nil, Decorate(err, "ArcLength")
		}
		dist := Magnitude(g)
		if dist == 0 || math.IsNaN(dist) || math.IsInf(dist, 0) {
			return nil, NewError(DegenerateGeometry, i, "ArcLength", "segment between images %d and %d has length %v", i, i+1, dist)
		}
		floats.Scale(1/dist, g)
		A.Length[i+1] = A.Length[i] + dist
	}
	return A, nil
}

//SegmentLengths returns the NVecs()-1 distances between consecutive images in S,
//measured taking into account the periodic variables in ang.
func SegmentLengths(S *vn.Matrix, ang *Angular) ([]float64, error) {
	n := S.NVecs()
	ret := make([]float64, 0, n)
	for i := 0; i < n-1; i++ {
		d, err := Distance(S.RawVec(i), S.RawVec(i+1), ang)
		if err != nil {
			return nil, Decorate(err, "SegmentLengths")
		}
		ret = append(ret, d)
	}
	return ret, nil
}

//Reparametrize returns a new string with nimg images equally spaced, by arc length,
//along the piecewise-linear path defined by the images in S. S can have more or fewer than
//nimg images. The first and last image of the new string are exact copies of those of S.
//The periodic variables of the new interior images are wrapped into their canonical range.
//S is not modified.
func Reparametrize(S *vn.Matrix, nimg int, ang *Angular) (*vn.Matrix, error) {
	if nimg < 2 {
		return nil, NewError(MalformedInput, -1, "Reparametrize", "can't build a string with %d images", nimg)
	}
	if err := ang.Validate(S.NVars()); err != nil {
		return nil, Decorate(err, "Reparametrize")
	}
	arc, err := ArcLength(S, ang)
	if err != nil {
		return nil, Decorate(err, "Reparametrize")
	}
	total := arc.Total()
	last := S.NVecs() - 1
	spacing := total / float64(nimg-1)
	tol := EndpointTolerance * total
	ret := vn.Zeros(nimg, S.NVars())
	for i := 0; i < nimg; i++ {
		tot := spacing * float64(i)
		if i == 0 || tot == 0 {
			ret.SetVec(i, S.RawVec(0))
			continue
		}
		if math.Abs(tot-total) <= tol {
			ret.SetVec(i, S.RawVec(last))
			continue
		}
		link := segment(arc.Length, tot)
		newpt := ret.RawVec(i)
		floats.AddScaledTo(newpt, S.RawVec(link), tot-arc.Length[link], arc.Grad.RawVec(link))
		ang.Wrap(newpt)
	}
	return ret, nil
}

//segment returns the index of the last image with cumulative length <= tot, which
//is also the index of the segment where a point at arc length tot lies.
func segment(length []float64, tot float64) int {
	link := sort.SearchFloat64s(length, tot)
	if link >= len(length) || length[link] > tot {
		link--
	}
	if link < 0 {
		link = 0
	}
	if link > len(length)-2 {
		link = len(length) - 2
	}
	return link
}

//Linear returns a string of nimg images linearly interpolated between start and stop.
//If ang is not nil, the interpolation follows the shortest way between the periodic
//variables, and the interior images are wrapped into the canonical range.
func Linear(start, stop []float64, nimg int, ang *Angular) (*vn.Matrix, error) {
	if nimg < 2 {
		return nil, NewError(MalformedInput, -1, "Linear", "can't build a string with %d images", nimg)
	}
	step, err := Difference(start, stop, ang, nil)
	if err != nil {
		return nil, Decorate(err, "Linear")
	}
	floats.Scale(1/float64(nimg-1), step)
	ret := vn.Zeros(nimg, len(start))
	ret.SetVec(0, start)
	ret.SetVec(nimg-1, stop)
	for i := 1; i < nimg-1; i++ {
		v := ret.RawVec(i)
		floats.AddScaledTo(v, start, float64(i), step)
		ang.Wrap(v)
	}
	return ret, nil
}
