/*
 * neighbors.go, part of swarms.
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
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/rmera/swarms/vn"
)

//DefaultK is the default number of neighbors in a NeighborTable.
const DefaultK = 5

//Policy is a strategy to build a path through the images of a string
//using their nearest neighbors.
type Policy int

const (
	//MonotonicIncreasing walks from the first image, always jumping to the nearest
	//image with a larger index. Images can be skipped, never revisited.
	MonotonicIncreasing Policy = iota
	//NoRevisit walks from the first image, always jumping to the nearest image
	//not yet visited, regardless of its index.
	NoRevisit
	//TopKTable only builds the table of the K nearest neighbors of each image.
	//It does not produce a path.
	TopKTable
)

func (p Policy) String() string {
	switch p {
	case MonotonicIncreasing:
		return "monotonic"
	case NoRevisit:
		return "norevisit"
	case TopKTable:
		return "topk"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

//ParsePolicy returns the Policy with the name s, as given by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range []Policy{MonotonicIncreasing, NoRevisit, TopKTable} {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, NewError(MalformedInput, -1, "ParsePolicy", "unknown nearest-neighbor policy %q", s)
}

//NeighborTable contains, for each image i, the indexes of its nearest
//images, closest first.
type NeighborTable [][]int

//neighbor is one candidate in a nearest-neighbor search.
type neighbor struct {
	index int
	dist  float64
}

//ranked returns all images of S except from, sorted by their distance to from.
//Ties are broken by the lower index.
func ranked(S *vn.Matrix, from int, metric Metric) ([]neighbor, error) {
	n := S.NVecs()
	ret := make([]neighbor, 0, n-1)
	for j := 0; j < n; j++ {
		if j == from {
			continue
		}
		d, err := metric(S.RawVec(from), S.RawVec(j))
		if err != nil {
			return nil, NewError(MalformedInput, from, "ranked", "distance to image %d: %v", j, err)
		}
		ret = append(ret, neighbor{j, d})
	}
	slices.SortStableFunc(ret, func(a, b neighbor) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		}
		return a.index - b.index
	})
	return ret, nil
}

//TopK returns the table of the k nearest neighbors of each image in S, according to metric.
//If k is larger than the number of other images, all of them are included.
func TopK(S *vn.Matrix, k int, metric Metric) (NeighborTable, error) {
	if k <= 0 {
		return nil, NewError(MalformedInput, -1, "TopK", "invalid number of neighbors %d", k)
	}
	if metric == nil {
		metric = EuclideanMetric
	}
	n := S.NVecs()
	if k > n-1 {
		k = n - 1
	}
	ret := make(NeighborTable, n)
	for i := 0; i < n; i++ {
		r, err := ranked(S, i, metric)
		if err != nil {
			return nil, Decorate(err, "TopK")
		}
		ret[i] = make([]int, k)
		for j := range ret[i] {
			ret[i][j] = r[j].index
		}
	}
	return ret, nil
}

//Resolve returns a path of image indexes through the string S, from the first to the last image,
//built according to the given policy and metric (Euclidean, if nil). The path may skip images.
//The TopKTable policy doesn't produce paths, use TopK for that one.
func Resolve(S *vn.Matrix, policy Policy, metric Metric) ([]int, error) {
	if S.NVecs() < 2 {
		return nil, NewError(MalformedInput, -1, "Resolve", "a string needs at least 2 images, got %d", S.NVecs())
	}
	if metric == nil {
		metric = EuclideanMetric
	}
	var ret []int
	var err error
	switch policy {
	case MonotonicIncreasing:
		ret, err = monotonicWalk(S, metric)
	case NoRevisit:
		ret, err = noRevisitWalk(S, metric)
	default:
		err = NewError(MalformedInput, -1, "Resolve", "policy %s doesn't produce a path", policy)
	}
	if err != nil {
		return nil, Decorate(err, "Resolve")
	}
	return ret, nil
}

func monotonicWalk(S *vn.Matrix, metric Metric) ([]int, error) {
	last := S.NVecs() - 1
	path := []int{0}
	for cur := 0; cur != last; {
		next := -1
		best := math.Inf(1)
		for j := cur + 1; j <= last; j++ {
			d, err := metric(S.RawVec(cur), S.RawVec(j))
			if err != nil {
				return nil, NewError(MalformedInput, cur, "monotonicWalk", "distance to image %d: %v", j, err)
			}
			//strict comparison, so ties go to the lower index.
			if d < best {
				best = d
				next = j
			}
		}
		if next < 0 {
			return nil, NewError(UnreachableTraversal, cur, "monotonicWalk", "no valid forward neighbor before reaching image %d", last)
		}
		path = append(path, next)
		cur = next
	}
	return path, nil
}

func noRevisitWalk(S *vn.Matrix, metric Metric) ([]int, error) {
	n := S.NVecs()
	last := n - 1
	visited := make([]bool, n)
	visited[0] = true
	path := []int{0}
	for cur := 0; cur != last; {
		if len(path) > n {
			return nil, NewError(UnreachableTraversal, cur, "noRevisitWalk", "walk longer than the string")
		}
		r, err := ranked(S, cur, metric)
		if err != nil {
			return nil, Decorate(err, "noRevisitWalk")
		}
		next := -1
		for _, v := range r {
			if !visited[v.index] && !math.IsNaN(v.dist) {
				next = v.index
				break
			}
		}
		if next < 0 {
			return nil, NewError(UnreachableTraversal, cur, "noRevisitWalk", "all images visited without reaching image %d", last)
		}
		visited[next] = true
		path = append(path, next)
		cur = next
	}
	return path, nil
}

//Select returns a new string with the images of S with indexes in idx, in that order.
func Select(S *vn.Matrix, idx []int) (*vn.Matrix, error) {
	if len(idx) == 0 {
		return nil, NewError(MalformedInput, -1, "Select", "empty selection")
	}
	ret := vn.Zeros(len(idx), S.NVars())
	if err := ret.SomeVecsSafe(S, idx); err != nil {
		return nil, NewError(MalformedInput, -1, "Select", "%v", err)
	}
	return ret, nil
}

//Knots returns the indexes of the images skipped by the given path through
//a string with n images.
func Knots(path []int, n int) []int {
	in := make([]bool, n)
	for _, v := range path {
		if v >= 0 && v < n {
			in[v] = true
		}
	}
	var ret []int
	for i, v := range in {
		if !v {
			ret = append(ret, i)
		}
	}
	return ret
}
