/*
 * periodic.go, part of swarms.
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
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//Angular describes which of the variables of an image are periodic angles, in degrees.
//A nil *Angular is valid, and means that no variable is periodic.
type Angular struct {
	mask map[int]bool
	abs  map[int]bool
	//Zero360 sets the canonical range of the angles to [0,360) instead of
	//the default [-180,180)
	Zero360 bool
}

//NewAngular returns an Angular where the variables with indexes dims are periodic.
func NewAngular(dims ...int) *Angular {
	A := &Angular{mask: make(map[int]bool, len(dims)), abs: make(map[int]bool)}
	for _, v := range dims {
		A.mask[v] = true
	}
	return A
}

//SetAbs marks the given variables as angles that are reported as their absolute value after
//wrapping (polar angles). The variables are also marked as periodic. It returns the receiver.
func (A *Angular) SetAbs(dims ...int) *Angular {
	if A.mask == nil {
		A.mask = make(map[int]bool)
	}
	if A.abs == nil {
		A.abs = make(map[int]bool)
	}
	for _, v := range dims {
		A.mask[v] = true
		A.abs[v] = true
	}
	return A
}

//Is returns true if the ith variable is periodic.
func (A *Angular) Is(i int) bool {
	if A == nil {
		return false
	}
	return A.mask[i]
}

//Dims returns the sorted indexes of the periodic variables.
func (A *Angular) Dims() []int {
	if A == nil {
		return nil
	}
	r := make([]int, 0, len(A.mask))
	for k := range A.mask {
		r = append(r, k)
	}
	sort.Ints(r)
	return r
}

//Validate returns an error if any periodic variable is out of the range of an
//image with nvars variables.
func (A *Angular) Validate(nvars int) error {
	for _, v := range A.Dims() {
		if v < 0 || v >= nvars {
			return NewError(MalformedInput, -1, "Angular.Validate", "angular variable %d out of range for %d variables", v, nvars)
		}
	}
	return nil
}

//WrapScalar brings x, the value of the ith variable, to the canonical range, if
//the variable is periodic. Otherwise, x is returned unchanged.
func (A *Angular) WrapScalar(i int, x float64) float64 {
	if !A.Is(i) {
		return x
	}
	if A.Zero360 {
		x = WrapAngle360(x)
	} else {
		x = WrapAngle180(x)
	}
	if A.abs[i] {
		x = math.Abs(x)
	}
	return x
}

//Wrap brings all the periodic variables of v to their canonical range, in place.
//It returns v.
func (A *Angular) Wrap(v []float64) []float64 {
	if A == nil {
		return v
	}
	for i, x := range v {
		v[i] = A.WrapScalar(i, x)
	}
	return v
}

//WrapAngle180 returns x in the [-180,180) range. Values already in the range
//are returned untouched, so the function is idempotent.
func WrapAngle180(x float64) float64 {
	if x >= -180 && x < 180 {
		return x
	}
	r := math.Mod(x+180, 360)
	if r < 0 {
		r += 360
	}
	if r >= 360 {
		r = 0
	}
	return r - 180
}

//WrapAngle360 returns x in the [0,360) range. Values already in the range
//are returned untouched.
func WrapAngle360(x float64) float64 {
	if x >= 0 && x < 360 {
		return x
	}
	r := math.Mod(x, 360)
	if r < 0 {
		r += 360
	}
	if r >= 360 {
		r = 0
	}
	return r
}

//wraps an angle difference into (-180,180]
func wrapDiff(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

func getDst(dst []float64, l int) []float64 {
	if dst == nil || len(dst) != l {
		return make([]float64, l)
	}
	return dst
}

//Difference puts b-a in dst, which is allocated if nil or of the wrong size, and returns it.
//Periodic variables, according to ang, are wrapped into the (-180,180] range.
func Difference(a, b []float64, ang *Angular, dst []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, NewError(MalformedInput, -1, "Difference", "vectors with %d and %d variables", len(a), len(b))
	}
	dst = getDst(dst, len(a))
	floats.SubTo(dst, b, a)
	if ang == nil {
		return dst, nil
	}
	for i, v := range dst {
		if ang.Is(i) {
			dst[i] = wrapDiff(v)
		}
	}
	return dst, nil
}

//Magnitude returns the Euclidean norm of v.
func Magnitude(v []float64) float64 {
	return floats.Norm(v, 2)
}

//Normalize puts v/|v| in dst, which is allocated if needed, and returns it.
//It returns a DegenerateGeometry error if v has zero (or non-finite) magnitude.
func Normalize(v, dst []float64) ([]float64, error) {
	m := Magnitude(v)
	if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return nil, NewError(DegenerateGeometry, -1, "Normalize", "can't normalize a vector with magnitude %v", m)
	}
	dst = getDst(dst, len(v))
	floats.ScaleTo(dst, 1/m, v)
	return dst, nil
}

//Add puts a+b in dst, which is allocated if needed, and returns it.
func Add(a, b, dst []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, NewError(MalformedInput, -1, "Add", "vectors with %d and %d variables", len(a), len(b))
	}
	dst = getDst(dst, len(a))
	floats.AddTo(dst, a, b)
	return dst, nil
}

//Distance returns the Euclidean distance between a and b, taking
//into account the periodicity of the variables marked in ang.
func Distance(a, b []float64, ang *Angular) (float64, error) {
	if len(a) != len(b) {
		return 0, NewError(MalformedInput, -1, "Distance", "vectors with %d and %d variables", len(a), len(b))
	}
	if len(ang.Dims()) == 0 {
		return floats.Distance(a, b, 2), nil
	}
	d, err := Difference(a, b, ang, nil)
	if err != nil {
		return 0, Decorate(err, "Distance")
	}
	return Magnitude(d), nil
}

//Metric is a distance function between two images with the same number of variables.
type Metric func(a, b []float64) (float64, error)

//EuclideanMetric is the plain Euclidean distance, ignoring periodicity.
func EuclideanMetric(a, b []float64) (float64, error) {
	return Distance(a, b, nil)
}

//PeriodicMetric returns a Metric that takes into account the periodic variables in ang.
func PeriodicMetric(ang *Angular) Metric {
	return func(a, b []float64) (float64, error) {
		return Distance(a, b, ang)
	}
}

//ParseDims parses a list of variable indexes, given as comma-separated
//values and/or ranges, i.e. "0,1,14-16". An empty string gives a nil slice.
func ParseDims(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var ret []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		lim := strings.SplitN(f, "-", 2)
		first, err := strconv.Atoi(strings.TrimSpace(lim[0]))
		if err != nil {
			return nil, NewError(MalformedInput, -1, "ParseDims", "invalid index %q", f)
		}
		last := first
		if len(lim) == 2 {
			last, err = strconv.Atoi(strings.TrimSpace(lim[1]))
			if err != nil || last < first {
				return nil, NewError(MalformedInput, -1, "ParseDims", "invalid range %q", f)
			}
		}
		for i := first; i <= last; i++ {
			ret = append(ret, i)
		}
	}
	return ret, nil
}
