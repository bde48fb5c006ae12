/*
 * command.go, part of swarms.
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

package oracle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/swarms"
	"github.com/rmera/swarms/vn"
)

//the output of the engine is searched for this, from tailSize bytes before the end.
const (
	abnormal = "ABNORMAL"
	tailSize = 5000
)

//Command is an Oracle that runs a program (through "sh -c") for each swarm, and then
//reads the results with a SwarmFiles. The command is a template where the following
//strings are replaced:
//
//	{image}            the image index
//	{cycle}            the cycle
//	{target}           the name of the file with the target for the image, in string format
//	{seed1}...{seed4}  random seeds in [100,1000000], new for each attempt ({seed} is {seed1})
//
//The seeds depend only on the seed of the Command, the image, the cycle and the attempt,
//so they don't change with the order in which concurrent swarms are run.
//
//The output of the program goes to img_<image>_cycle_<cycle>.out in the working directory.
//If the last 5000 bytes of that output contain "ABNORMAL" or the program fails, the
//command is repeated, up to Retries more times.
type Command struct {
	command string
	retries int
	files   *SwarmFiles
	log     *log.Logger
	seed    int64
}

//NewCommand returns a Command that runs command and reads the swarms with files. The working directory
//of the command is files.Dir.
func NewCommand(command string, files *SwarmFiles) *Command {
	run := new(Command)
	run.SetDefaults()
	run.command = command
	run.files = files
	return run
}

//SetDefaults sets no retries, the default logger and a seed of 1.
func (O *Command) SetDefaults() {
	O.retries = 0
	O.log = log.Default()
	O.seed = 1
}

func (O *Command) Command() string {
	return O.command
}

//SetRetries sets the number of times a failed swarm will be re-run.
func (O *Command) SetRetries(r int) {
	if r < 0 {
		r = 0
	}
	O.retries = r
}

//SetSeed sets the seed from which the seeds passed to the command are derived.
func (O *Command) SetSeed(seed int64) {
	O.seed = seed
}

//SetLogger sets the logger for the retry messages.
func (O *Command) SetLogger(l *log.Logger) {
	if l != nil {
		O.log = l
	}
}

//Seeds returns the 4 seeds passed to the command for the given attempt of a swarm.
func (O *Command) Seeds(image, cycle, attempt int) [4]int {
	rnd := rand.New(rand.NewSource(O.seed ^ int64(image)<<32 ^ int64(cycle)<<16 ^ int64(attempt)))
	var r [4]int
	for i := range r {
		r[i] = 100 + rnd.Intn(1000000-100+1)
	}
	return r
}

func (O *Command) dir() string {
	if O.files.Dir == "" {
		return "."
	}
	return O.files.Dir
}

//TargetName returns the name of the file where the target of the given swarm is written.
func (O *Command) TargetName(image, cycle int) string {
	return filepath.Join(O.dir(), fmt.Sprintf("img_%d_cycle_%d.target", image, cycle))
}

//OutputName returns the name of the file where the output of the given swarm is written.
func (O *Command) OutputName(image, cycle int) string {
	return filepath.Join(O.dir(), fmt.Sprintf("img_%d_cycle_%d.out", image, cycle))
}

func (O *Command) commandLine(image, cycle, attempt int) string {
	s := O.Seeds(image, cycle, attempt)
	r := strings.NewReplacer(
		"{image}", strconv.Itoa(image),
		"{cycle}", strconv.Itoa(cycle),
		"{target}", filepath.Base(O.TargetName(image, cycle)),
		"{seed}", strconv.Itoa(s[0]),
		"{seed1}", strconv.Itoa(s[0]),
		"{seed2}", strconv.Itoa(s[1]),
		"{seed3}", strconv.Itoa(s[2]),
		"{seed4}", strconv.Itoa(s[3]),
	)
	return r.Replace(O.command)
}

//Swarm writes the target, runs the command and reads the resulting swarm.
func (O *Command) Swarm(ctx context.Context, image, cycle int, target []float64) (*vn.Matrix, error) {
	if O.files == nil {
		return nil, swarms.NewError(swarms.MalformedInput, image, "Command.Swarm", "no swarm files set")
	}
	t, err := vn.NewMatrix(append([]float64(nil), target...), len(target))
	if err != nil {
		return nil, swarms.NewError(swarms.MalformedInput, image, "Command.Swarm", "%v", err)
	}
	if err := swarms.WriteStringFile(O.TargetName(image, cycle), t); err != nil {
		return nil, swarms.NewError(swarms.ExternalOracleFailure, image, "Command.Swarm", "writing target: %v", err)
	}
	var lasterr error
	for attempt := 0; attempt <= O.retries; attempt++ {
		if attempt > 0 {
			O.log.Printf("re-running image %d cycle %d (attempt %d): %v", image, cycle, attempt+1, lasterr)
		}
		lasterr = O.run(ctx, image, cycle, attempt)
		if lasterr == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	if lasterr != nil {
		return nil, swarms.NewError(swarms.ExternalOracleFailure, image, "Command.Swarm", "%v", lasterr)
	}
	sw, err := O.files.Swarm(ctx, image, cycle, target)
	if err != nil {
		return nil, errDecorate(err, "Command.Swarm")
	}
	return sw, nil
}

func (O *Command) run(ctx context.Context, image, cycle, attempt int) error {
	outname := O.OutputName(image, cycle)
	out, err := os.Create(outname)
	if err != nil {
		return err
	}
	command := exec.CommandContext(ctx, "sh", "-c", O.commandLine(image, cycle, attempt))
	command.Dir = O.dir()
	command.Stdout = out
	command.Stderr = out
	err = command.Run()
	out.Close()
	if err != nil {
		return fmt.Errorf("running command: %w", err)
	}
	bad, err := abnormalTail(outname)
	if err != nil {
		return err
	}
	if bad {
		return fmt.Errorf("%s termination reported in %s", abnormal, outname)
	}
	return nil
}

//abnormalTail returns true if the last tailSize bytes of the file name contain the abnormal-termination mark.
func abnormalTail(name string) (bool, error) {
	f, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if off := info.Size() - tailSize; off > 0 {
		if _, err := f.Seek(off, io.SeekStart); err != nil {
			return false, err
		}
	}
	tail, err := io.ReadAll(f)
	if err != nil {
		return false, err
	}
	return bytes.Contains(tail, []byte(abnormal)), nil
}

func errDecorate(err error, caller string) error {
	return swarms.Decorate(err, caller)
}
