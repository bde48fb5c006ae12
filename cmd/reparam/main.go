//reparam reparametrizes a string so its images are equally spaced, or builds a
//linear initial string between two points.
//
//	reparam -nvars 2 -nimages 12 -angular 0,1 string_normal_5.dat > string_5.dat
//	reparam -nimages 12 -angular 0,1 -from -80,150 -to 60,-60 -o string_0.dat
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/swarms"
	"github.com/rmera/swarms/vn"
)

func main() {
	nvars := flag.Int("nvars", 2, "Number of variables per image")
	nimages := flag.Int("nimages", 0, "Number of images in the output string (default: same as the input)")
	angular := flag.String("angular", "", "Angular variables, i.e. 0,1 or 0-3 (0-based)")
	abs := flag.String("abs", "", "Angular variables reported as absolute values")
	range360 := flag.Bool("range360", false, "Put angles in [0,360) instead of [-180,180)")
	from := flag.String("from", "", "Comma-separated first image of a linear string (no input file is read)")
	to := flag.String("to", "", "Comma-separated last image of a linear string")
	out := flag.String("o", "", "Output file (default: standard output). A .zst extension compresses it")
	verbose := flag.Bool("v", false, "Print the segment lengths of the output string to stderr")
	flag.Parse()

	ang, err := angularVars(*angular, *abs, *range360)
	if err != nil {
		log.Fatal(err)
	}
	var S *vn.Matrix
	if *from != "" || *to != "" {
		S, err = linear(*from, *to, *nimages, ang)
	} else {
		S, err = reparam(flag.Args(), *nvars, *nimages, ang)
	}
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		seg, err := swarms.SegmentLengths(S, ang)
		if err != nil {
			log.Fatal(err)
		}
		for i, v := range seg {
			fmt.Fprintf(os.Stderr, "%d-%d %.5f\n", i, i+1, v)
		}
	}
	if *out == "" {
		err = swarms.WriteString(os.Stdout, S)
	} else {
		err = swarms.WriteStringFile(*out, S)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func angularVars(angular, abs string, range360 bool) (*swarms.Angular, error) {
	dims, err := swarms.ParseDims(angular)
	if err != nil {
		return nil, err
	}
	adims, err := swarms.ParseDims(abs)
	if err != nil {
		return nil, err
	}
	if len(dims)+len(adims) == 0 {
		return nil, nil
	}
	ang := swarms.NewAngular(dims...).SetAbs(adims...)
	ang.Zero360 = range360
	return ang, nil
}

func reparam(args []string, nvars, nimages int, ang *swarms.Angular) (*vn.Matrix, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("usage: reparam [flags] string_file")
	}
	S, err := swarms.ReadStringFile(args[0], nvars)
	if err != nil {
		return nil, err
	}
	if nimages <= 0 {
		nimages = S.NVecs()
	}
	return swarms.Reparametrize(S, nimages, ang)
}

func linear(from, to string, nimages int, ang *swarms.Angular) (*vn.Matrix, error) {
	start, err := parseVec(from)
	if err != nil {
		return nil, fmt.Errorf("-from: %w", err)
	}
	stop, err := parseVec(to)
	if err != nil {
		return nil, fmt.Errorf("-to: %w", err)
	}
	if nimages <= 0 {
		return nil, fmt.Errorf("-nimages is needed to build a linear string")
	}
	return swarms.Linear(start, stop, nimages, ang)
}

func parseVec(s string) ([]float64, error) {
	if s == "" {
		return nil, fmt.Errorf("empty image")
	}
	fields := strings.Split(s, ",")
	ret := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		ret[i] = v
	}
	return ret, nil
}
