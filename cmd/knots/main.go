//knots finds the images that are out of place in a string (knots), by walking
//through the nearest neighbors of each image from the first to the last one.
//
//The policies are the ones of the swarms package (monotonic, norevisit, topk), plus
//"graph", which prints the shortest path through the k-nearest-neighbor graph.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/rmera/swarms"
)

func main() {
	nvars := flag.Int("nvars", 2, "Number of variables per image")
	policy := flag.String("policy", "monotonic", "monotonic, norevisit, topk or graph")
	k := flag.Int("k", swarms.DefaultK, "Number of neighbors for the topk and graph policies")
	angular := flag.String("angular", "", "Angular variables, i.e. 0,1 or 0-3 (0-based)")
	periodic := flag.Bool("periodic", false, "Take periodicity into account when measuring distances")
	out := flag.String("o", "", "Write the string without the knots, reparametrized to the original number of images, to this file")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: knots [flags] string_file")
	}
	S, err := swarms.ReadStringFile(flag.Arg(0), *nvars)
	if err != nil {
		log.Fatal(err)
	}
	dims, err := swarms.ParseDims(*angular)
	if err != nil {
		log.Fatal(err)
	}
	var ang *swarms.Angular
	if len(dims) > 0 {
		ang = swarms.NewAngular(dims...)
	}
	var metric swarms.Metric = swarms.EuclideanMetric
	if *periodic {
		metric = swarms.PeriodicMetric(ang)
	}

	var path []int
	switch *policy {
	case "graph":
		var length float64
		path, length, err = swarms.KNNPath(S, *k, metric)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("shortest path length: %.4f\n", length)
	case "topk":
		table, err := swarms.TopK(S, *k, metric)
		if err != nil {
			log.Fatal(err)
		}
		for i, v := range table {
			fmt.Printf("%3d: %s\n", i, ints(v))
		}
		return
	default:
		p, err := swarms.ParsePolicy(*policy)
		if err != nil {
			log.Fatal(err)
		}
		path, err = swarms.Resolve(S, p, metric)
		if err != nil {
			log.Fatal(err)
		}
	}
	knots := swarms.Knots(path, S.NVecs())
	fmt.Printf("path:  %s\n", ints(path))
	fmt.Printf("knots: %s\n", ints(knots))
	if *out == "" {
		return
	}
	R, err := swarms.Select(S, path)
	if err == nil {
		R, err = swarms.Reparametrize(R, S.NVecs(), ang)
	}
	if err == nil {
		err = swarms.WriteStringFile(*out, R)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func ints(v []int) string {
	s := make([]string, len(v))
	for i, j := range v {
		s[i] = fmt.Sprint(j)
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, " ")
}
