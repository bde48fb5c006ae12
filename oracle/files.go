/*
 * files.go, part of swarms.
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

//Package oracle contains implementations of the swarms.Oracle interface, which stand between
//the string method and the program that actually runs the simulations.
package oracle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/swarms"
	"github.com/rmera/swarms/vn"
)

//DefaultPattern is the default name for the file with the final collective variables of one
//trajectory of a swarm. The verbs are, in order, the image, the cycle and the trajectory.
const DefaultPattern = "img_%d_cycle_%d.swm%d"

//SwarmFiles is an Oracle that doesn't run anything. It just collects the results of swarms that have
//already been run, from one file per trajectory. Each file contains the nvars collective variables
//of the trajectory, as whitespace-separated numbers in any number of lines. Lines starting with '#'
//are ignored. Files ending in ".zst" are decompressed.
type SwarmFiles struct {
	Dir     string
	NTraj   int
	Pattern string //DefaultPattern if empty
}

//NewSwarmFiles returns a SwarmFiles that reads ntraj trajectories per swarm from dir, with the default pattern.
func NewSwarmFiles(dir string, ntraj int) *SwarmFiles {
	return &SwarmFiles{Dir: dir, NTraj: ntraj, Pattern: DefaultPattern}
}

//Name returns the name of the file for the given image, cycle and trajectory.
func (O *SwarmFiles) Name(image, cycle, traj int) string {
	p := O.Pattern
	if p == "" {
		p = DefaultPattern
	}
	return filepath.Join(O.Dir, fmt.Sprintf(p, image, cycle, traj))
}

//Swarm reads the swarm for the given image and cycle. Only the length of target is used.
func (O *SwarmFiles) Swarm(ctx context.Context, image, cycle int, target []float64) (*vn.Matrix, error) {
	nvars := len(target)
	if O.NTraj <= 0 {
		return nil, swarms.NewError(swarms.MalformedInput, image, "SwarmFiles.Swarm", "invalid number of trajectories %d", O.NTraj)
	}
	ret := vn.Zeros(O.NTraj, nvars)
	for t := 0; t < O.NTraj; t++ {
		if err := ctx.Err(); err != nil {
			return nil, swarms.NewError(swarms.ExternalOracleFailure, image, "SwarmFiles.Swarm", "%v", err)
		}
		name := O.Name(image, cycle, t)
		cv, err := ReadCVFile(name)
		if err != nil {
			return nil, swarms.NewError(swarms.ExternalOracleFailure, image, "SwarmFiles.Swarm", "trajectory %d: %v", t, err)
		}
		if len(cv) != nvars {
			return nil, swarms.NewError(swarms.ExternalOracleFailure, image, "SwarmFiles.Swarm", "%s has %d values, %d expected", name, len(cv), nvars)
		}
		ret.SetVec(t, cv)
	}
	return ret, nil
}

//ReadCVFile returns all the numbers in the file name, in order.
func ReadCVFile(name string) ([]float64, error) {
	f, err := swarms.OpenString(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCV(f)
}

func readCV(r io.Reader) ([]float64, error) {
	var ret []float64
	s := bufio.NewScanner(r)
	for s.Scan() {
		l := strings.TrimSpace(s.Text())
		if strings.HasPrefix(l, "#") {
			continue
		}
		for _, field := range strings.Fields(l) {
			f, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%q is not a number", field)
			}
			ret = append(ret, f)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}
