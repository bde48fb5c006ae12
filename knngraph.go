/*
 * knngraph.go, part of swarms.
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
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

//KNNGraph returns an undirected graph where each image of S is a node (with the image index as ID)
//connected to its k nearest neighbors. Edges are weighted by the distance between the images.
func KNNGraph(S *vn.Matrix, k int, metric Metric) (*simple.WeightedUndirectedGraph, error) {
	if metric == nil {
		metric = EuclideanMetric
	}
	table, err := TopK(S, k, metric)
	if err != nil {
		return nil, Decorate(err, "KNNGraph")
	}
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := range table {
		g.AddNode(simple.Node(i))
	}
	for i, neighs := range table {
		for _, j := range neighs {
			if g.HasEdgeBetween(int64(i), int64(j)) {
				continue
			}
			d, err := metric(S.RawVec(i), S.RawVec(j))
			if err != nil {
				return nil, NewError(MalformedInput, i, "KNNGraph", "distance to image %d: %v", j, err)
			}
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), d))
		}
	}
	return g, nil
}

//KNNPath returns the shortest path, through the k-nearest-neighbor graph of S, between the first
//and the last image, and its length. An UnreachableTraversal error is returned if the graph is not connected.
//This is a diagnostic: a knot-free string has the trivial path 0,1,...,n-1 (or a subset of it).
func KNNPath(S *vn.Matrix, k int, metric Metric) ([]int, float64, error) {
	g, err := KNNGraph(S, k, metric)
	if err != nil {
		return nil, 0, Decorate(err, "KNNPath")
	}
	last := int64(S.NVecs() - 1)
	shortest := path.DijkstraFrom(g.Node(0), g)
	nodes, weight := shortest.To(last)
	if len(nodes) == 0 || math.IsInf(weight, 1) {
		return nil, 0, NewError(UnreachableTraversal, 0, "KNNPath", "image %d not reachable through the %d-nearest-neighbor graph", last, k)
	}
	return nodeIDs(nodes), weight, nil
}

func nodeIDs(nodes []graph.Node) []int {
	ret := make([]int, len(nodes))
	for i, v := range nodes {
		ret[i] = int(v.ID())
	}
	return ret
}
