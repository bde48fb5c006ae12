/*
 * anneal.go, part of swarms.
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

import "math"

//DefaultPeriod is the period, in cycles, of the default annealing schedule.
//With 100 cycles, it gives 4 full heating/cooling periods.
const DefaultPeriod = 25.0

//Phase tells whether a cycle is used to explore (the push grows towards its maximum)
//or to optimize (the push decreases, and knots are removed from the string).
type Phase int

const (
	Exploration Phase = iota
	Optimization
)

func (p Phase) String() string {
	if p == Optimization {
		return "optimization"
	}
	return "exploration"
}

//Annealing is a simulated-annealing schedule with the given period, in cycles.
type Annealing struct {
	Period float64
}

//Validate returns an error if the period of the schedule is not positive.
func (A Annealing) Validate() error {
	if !(A.Period > 0) || math.IsInf(A.Period, 0) {
		return NewError(MalformedInput, -1, "Annealing.Validate", "invalid annealing period %v", A.Period)
	}
	return nil
}

//Value returns the push magnitude factor, in [0,1], for the given cycle:
//0.5*cos(2*pi*cycle/period - pi) + 0.5. It is 0 at multiples of the period
//and 1 at half-periods.
func (A Annealing) Value(cycle float64) float64 {
	return 0.5*math.Cos(2*math.Pi*(cycle/A.Period)-math.Pi) + 0.5
}

//Reduced returns the cycle brought to the (0,period] range. Positive multiples of
//the period are mapped to the period itself, not to 0, so the last cycle of a
//period (where there is no push) is counted as part of the optimization.
func (A Annealing) Reduced(cycle float64) float64 {
	if cycle <= 0 {
		return cycle
	}
	r := math.Mod(cycle, A.Period)
	if r == 0 {
		r = A.Period
	}
	return r
}

//Phase returns Optimization if the cycle is past the maximum of its period, Exploration otherwise.
func (A Annealing) Phase(cycle float64) Phase {
	if A.Reduced(cycle) > A.Period/2 {
		return Optimization
	}
	return Exploration
}
