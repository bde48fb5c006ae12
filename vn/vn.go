/*
 * vn.go, part of swarms.
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
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors (images) in an n-dimensional space.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//collective variables of one image. The name of some funcitions in
//the library reflect this.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with nvars columns from data.
//data is used as the backing slice, it is not copied.
func NewMatrix(data []float64, nvars int) (*Matrix, error) {
	l := len(data)
	if nvars <= 0 {
		return nil, Error{fmt.Sprintf("Invalid number of variables: %d", nvars), []string{"NewMatrix"}, true}
	}
	if l == 0 {
		return nil, Error{"Empty data slice", []string{"NewMatrix"}, true}
	}
	if l%nvars != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, nvars, l%nvars), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(l/nvars, nvars, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and nvars in the other dimension.
func Zeros(vecs, nvars int) *Matrix {
	f := make([]float64, vecs*nvars)
	return &Matrix{mat.NewDense(vecs, nvars, f)}
}

//NVecs return the number of vecs (images) in F.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//NVars returns the number of variables (columns) of each vector in F.
func (F *Matrix) NVars() int {
	_, c := F.Dims()
	return c
}

//VecView returns view of the given vector of the matrix.
//Changes in the view are reflected in F and vice-versa
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, F.NVars()).(*mat.Dense)
	return &Matrix{r}
}

//RawVec returns the slice backing the ith vector of F. As with VecView,
//changes in the slice are reflected in F.
func (F *Matrix) RawVec(i int) []float64 {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	return F.Dense.RawRowView(i)
}

//CopyVec copies the ith vector of F into dst, which is allocated if nil
//and returned.
func (F *Matrix) CopyVec(dst []float64, i int) []float64 {
	if dst == nil {
		dst = make([]float64, F.NVars())
	}
	if len(dst) != F.NVars() {
		panic(ErrShape)
	}
	copy(dst, F.RawVec(i))
	return dst
}

//SetVec sets the ith vector of F to the values in v.
func (F *Matrix) SetVec(i int, v []float64) {
	if len(v) != F.NVars() {
		panic(ErrShape)
	}
	copy(F.RawVec(i), v)
}

//Clone returns a deep copy of F.
func (F *Matrix) Clone() *Matrix {
	r := Zeros(F.NVecs(), F.NVars())
	r.Copy(F.Dense)
	return r
}

//SomeVecs puts in F the ith vectors of matrix A,
//where i are the numbers in clist. The vectors are in the same order
//than the clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val < 0 || val >= ar {
			panic(ErrIndexOutOfRange)
		}
		copy(F.RawVec(key), A.RawVec(val))
	}
}

//SomeVecsSafe returns a matrix contaning all the ith vectors of matrix A,
//where i are the numbers in clist. The vectors are in the same order
//than the clist. Returns an error instead of panicking.
func (F *Matrix) SomeVecsSafe(A *Matrix, clist []int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case PanicMsg:
				err = Error{string(e), []string{"SomeVecsSafe"}, true}
			case mat.Error:
				err = Error{fmt.Sprintf("swarms/vn: Error in a gonum function: %s", e), []string{"SomeVecsSafe"}, true}
			default:
				panic(r)
			}
		}
	}()
	F.SomeVecs(A, clist)
	return err
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, 0, r+2)
	v = append(v, "\n[")
	num := make([]string, c)
	for i := 0; i < r; i++ {
		for j, val := range F.RawVec(i) {
			num[j] = fmt.Sprintf("%8.3f", val)
		}
		v = append(v, " "+strings.Join(num, " "))
	}
	v = append(v, " ]")
	return strings.Join(v, "\n")
}

//Errors

type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrShape           = PanicMsg("swarms/vn: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("swarms/vn: index out of range")
)
