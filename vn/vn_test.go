/*
 * vn_test.go
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

package vn

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8}
	A, err := NewMatrix(a, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 4 || A.NVars() != 2 {
		Te.Errorf("Wrong dimensions: %d x %d", A.NVecs(), A.NVars())
	}
	fmt.Println(A)
	if _, err = NewMatrix(a, 3); err == nil {
		Te.Error("Expected an error for a slice not divisible by 3")
	}
	if _, err = NewMatrix(nil, 3); err == nil {
		Te.Error("Expected an error for an empty slice")
	}
	if _, err = NewMatrix(a, 0); err == nil {
		Te.Error("Expected an error for zero variables")
	}
}

func TestViews(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a, 3)
	if err != nil {
		Te.Fatal(err)
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Errorf("View change not reflected in the matrix: %v", A)
	}
	raw := A.RawVec(2)
	raw[2] = -9
	if A.At(2, 2) != -9 {
		Te.Errorf("RawVec change not reflected in the matrix: %v", A)
	}
	c := A.CopyVec(nil, 0)
	c[0] = 55
	if A.At(0, 0) != 1 {
		Te.Errorf("CopyVec should not share memory with the matrix")
	}
	A.SetVec(0, []float64{-1, -2, -3})
	if !mat.Equal(A.VecView(0), mat.NewDense(1, 3, []float64{-1, -2, -3})) {
		Te.Errorf("SetVec failed: %v", A)
	}
	B := A.Clone()
	B.Set(0, 0, 1000)
	if A.At(0, 0) == 1000 {
		Te.Errorf("Clone should not share memory with the original")
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a, 3)
	if err != nil {
		Te.Fatal(err)
	}
	B := Zeros(3, 3)
	cind := []int{1, 3, 5}
	err = B.SomeVecsSafe(A, cind)
	if err != nil {
		Te.Error(err)
	}
	fmt.Println(A, "\n", B)
	for key, val := range cind {
		if !mat.Equal(B.VecView(key), A.VecView(val)) {
			Te.Errorf("vector %d of the selection differs from vector %d of the original", key, val)
		}
	}
	C := Zeros(2, 3)
	if err = C.SomeVecsSafe(A, cind); err == nil {
		Te.Error("Expected an error for a wrongly sized receiver")
	}
	if err = B.SomeVecsSafe(A, []int{0, 1, 6}); err == nil {
		Te.Error("Expected an error for an out of range index")
	}
}
