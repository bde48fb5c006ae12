//Package cycle runs complete cycles of the string method: swarms, averaging,
//reparametrization, push and knot removal, reading and writing the string files
//in a working directory.
package cycle

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/rmera/swarms"
	"github.com/rmera/swarms/vn"
)

//Result contains the strings produced in each stage of a cycle.
type Result struct {
	Cycle int
	Phase swarms.Phase
	//Unparam is the string of swarm averages, before any reparametrization.
	Unparam *vn.Matrix
	//Pushed is the pushed string, before reparametrization. Nil if there was no push.
	Pushed *vn.Matrix
	//Path is the path found while resolving knots, and Knots the images it skipped.
	//Both nil if knots were not resolved in this cycle.
	Path  []int
	Knots []int
	//Resolved is the string with only the images in Path, before reparametrization.
	//Nil if knots were not resolved in this cycle.
	Resolved *vn.Matrix
	//String is the final string of the cycle.
	String *vn.Matrix
	//Change is the total displacement of the interior images with respect to the previous string.
	Change float64
}

//Orchestrator runs cycles of the string method with the given configuration.
type Orchestrator struct {
	Config *Config
	Oracle swarms.Oracle
	//Log receives progress messages. If nil, log.Default() is used.
	Log *log.Logger
}

//New returns an Orchestrator for config, with the oracle it describes.
func New(config *Config) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	o, err := config.NewOracle()
	if err != nil {
		return nil, err
	}
	return &Orchestrator{Config: config, Oracle: o}, nil
}

func (O *Orchestrator) logger() *log.Logger {
	if O.Log == nil {
		return log.Default()
	}
	return O.Log
}

//stageErr adds the stage of the cycle to an error.
func stageErr(err error, stage string) error {
	return swarms.Decorate(err, "stage "+stage)
}

//Step runs a cycle starting from the string prev, and returns all the strings produced.
//It doesn't read or write any string file, but the oracle may.
func (O *Orchestrator) Step(ctx context.Context, prev *vn.Matrix, cycle int) (*Result, error) {
	c := O.Config
	if prev.NVars() != c.NVars || prev.NVecs() != c.NImages {
		return nil, swarms.NewError(swarms.MalformedInput, -1, "Step", "string has %d images of %d variables, expected %d of %d", prev.NVecs(), prev.NVars(), c.NImages, c.NVars)
	}
	ang := c.AngularVars()
	sa := swarms.Annealing{Period: c.Period}
	res := &Result{Cycle: cycle, Phase: sa.Phase(float64(cycle))}
	l := O.logger()

	unparam, err := swarms.Evolve(ctx, O.Oracle, prev, cycle, c.Parallel)
	if err != nil {
		return nil, stageErr(err, "swarms")
	}
	res.Unparam = unparam
	S, err := swarms.Reparametrize(unparam, c.NImages, ang)
	if err != nil {
		return nil, stageErr(err, "reparametrize")
	}

	if !c.Push.Disabled {
		popts, err := c.PushOptions(cycle)
		if err != nil {
			return nil, stageErr(err, "push")
		}
		l.Printf("push cycle %d, annealing factor %.3f", cycle, sa.Value(float64(cycle)))
		res.Pushed, err = swarms.Push(S, float64(cycle), popts)
		if err != nil {
			return nil, stageErr(err, "push")
		}
		S, err = swarms.Reparametrize(res.Pushed, c.NImages, ang)
		if err != nil {
			return nil, stageErr(err, "reparametrize pushed")
		}
	}

	if !c.Resolve.Disabled && (c.Resolve.Every || res.Phase == swarms.Optimization) {
		l.Printf("calc nn cycle %d (reduced cycle %g, %s)", cycle, sa.Reduced(float64(cycle)), res.Phase)
		policy, err := swarms.ParsePolicy(c.Resolve.Policy)
		if err != nil {
			return nil, stageErr(err, "resolve")
		}
		res.Path, err = swarms.Resolve(S, policy, c.Metric())
		if err != nil {
			return nil, stageErr(err, "resolve")
		}
		res.Knots = swarms.Knots(res.Path, S.NVecs())
		if len(res.Knots) > 0 {
			l.Printf("cycle %d: removing images %v", cycle, res.Knots)
		}
		res.Resolved, err = swarms.Select(S, res.Path)
		if err != nil {
			return nil, stageErr(err, "resolve")
		}
		if len(res.Knots) > 0 {
			S, err = swarms.Reparametrize(res.Resolved, c.NImages, ang)
			if err != nil {
				return nil, stageErr(err, "reparametrize resolved")
			}
		}
	}
	res.String = S
	res.Change, err = swarms.Change(prev, S, ang)
	if err != nil {
		return nil, stageErr(err, "convergence")
	}
	l.Printf("cycle %d: string change %.4f", cycle, res.Change)
	return res, nil
}

//StringName returns the name of the final string file for the given cycle. kind
//can be "" for the final string, or "unparam", "normal" or "nn" for the intermediates.
func (O *Orchestrator) StringName(cycle int, kind string) string {
	name := fmt.Sprintf("string_%d.dat", cycle)
	if kind != "" {
		name = fmt.Sprintf("string_%s_%d.dat", kind, cycle)
	}
	if O.Config.Compress {
		name += ".zst"
	}
	return filepath.Join(O.Config.WorkDir, name)
}

//findString returns the name of the existing string file for the cycle, compressed or not.
func (O *Orchestrator) findString(cycle int) (string, error) {
	base := filepath.Join(O.Config.WorkDir, fmt.Sprintf("string_%d.dat", cycle))
	for _, name := range []string{base, base + ".zst"} {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", swarms.NewError(swarms.MalformedInput, -1, "findString", "no string file for cycle %d in %s", cycle, O.Config.WorkDir)
}

//Run reads the string of the previous cycle from the working directory, runs the cycle,
//and writes the new string (and the intermediate ones, if so configured).
func (O *Orchestrator) Run(ctx context.Context, cycle int) (*Result, error) {
	name, err := O.findString(cycle - 1)
	if err != nil {
		return nil, stageErr(err, "read")
	}
	prev, err := swarms.ReadStringFile(name, O.Config.NVars)
	if err != nil {
		return nil, stageErr(err, "read")
	}
	res, err := O.Step(ctx, prev, cycle)
	if err != nil {
		return nil, err
	}
	if O.Config.KeepIntermediates {
		inter := map[string]*vn.Matrix{"unparam": res.Unparam, "normal": res.Pushed, "nn": res.Resolved}
		for kind, S := range inter {
			if S == nil {
				continue
			}
			if err := swarms.WriteStringFile(O.StringName(cycle, kind), S); err != nil {
				return nil, stageErr(err, "write")
			}
		}
	}
	if err := swarms.WriteStringFile(O.StringName(cycle, ""), res.String); err != nil {
		return nil, stageErr(err, "write")
	}
	O.logger().Printf("cycle %d done, string written to %s", cycle, O.StringName(cycle, ""))
	return res, nil
}
