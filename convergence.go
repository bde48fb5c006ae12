/*
 * convergence.go, part of swarms.
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

	"github.com/rmera/swarms/vn"
	"gonum.org/v1/gonum/floats"
)

//Change returns the sum, over all the interior images and all variables, of the absolute
//difference between the strings prev and cur. It is a simple measure of how much the string
//moved in one cycle, and goes to (noisy) zero as the string converges.
func Change(prev, cur *vn.Matrix, ang *Angular) (float64, error) {
	if err := sameShape(prev, cur, "Change"); err != nil {
		return 0, err
	}
	var ret float64
	d := make([]float64, prev.NVars())
	for i := 1; i < prev.NVecs()-1; i++ {
		if _, err := Difference(prev.RawVec(i), cur.RawVec(i), ang, d); err != nil {
			return 0, Decorate(err, "Change")
		}
		ret += floats.Norm(d, 1)
	}
	return ret, nil
}

//RMSD returns the root mean square deviation between the images of the strings a and b.
//This is a VERY naive implementation, there is no superposition of any kind.
func RMSD(a, b *vn.Matrix, ang *Angular) (float64, error) {
	if err := sameShape(a, b, "RMSD"); err != nil {
		return 0, err
	}
	var rmsd float64
	d := make([]float64, a.NVars())
	for i := 0; i < a.NVecs(); i++ {
		if _, err := Difference(a.RawVec(i), b.RawVec(i), ang, d); err != nil {
			return 0, Decorate(err, "RMSD")
		}
		rmsd += floats.Dot(d, d)
	}
	return math.Sqrt(rmsd / float64(a.NVecs())), nil
}

func sameShape(a, b *vn.Matrix, caller string) error {
	if a.NVecs() != b.NVecs() || a.NVars() != b.NVars() {
		return NewError(MalformedInput, -1, caller, "strings of %dx%d and %dx%d", a.NVecs(), a.NVars(), b.NVecs(), b.NVars())
	}
	return nil
}
