/*
 * options.go, part of swarms.
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
	"math/rand"
	"strings"
)

//PushMode is the way the push direction is obtained for each image.
type PushMode int

const (
	//TangentND uses a random vector orthogonal to the secant between an image and the
	//previous one. Works for any number of variables > 1.
	TangentND PushMode = iota
	//Normal2D uses the sum of the normals to the two secants around an image. Only for 2 variables.
	Normal2D
)

func (m PushMode) String() string {
	switch m {
	case TangentND:
		return "tangent"
	case Normal2D:
		return "normal2d"
	default:
		return fmt.Sprintf("PushMode(%d)", int(m))
	}
}

//MultiplierPolicy decides the magnitude of the push before the annealing factor is applied.
type MultiplierPolicy int

const (
	//FixedMultiplier uses PushOptions.Multiplier as is.
	FixedMultiplier MultiplierPolicy = iota
	//AverageDistanceMultiplier uses avg_dist*(1+annealing), where avg_dist is the
	//average distance between consecutive images in the string.
	AverageDistanceMultiplier
)

func (m MultiplierPolicy) String() string {
	switch m {
	case FixedMultiplier:
		return "fixed"
	case AverageDistanceMultiplier:
		return "average"
	default:
		return fmt.Sprintf("MultiplierPolicy(%d)", int(m))
	}
}

//ParsePushMode returns the PushMode with the name s.
func ParsePushMode(s string) (PushMode, error) {
	for _, m := range []PushMode{TangentND, Normal2D} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, NewError(MalformedInput, -1, "ParsePushMode", "unknown push mode %q", s)
}

//ParseMultiplierPolicy returns the MultiplierPolicy with the name s.
func ParseMultiplierPolicy(s string) (MultiplierPolicy, error) {
	for _, m := range []MultiplierPolicy{FixedMultiplier, AverageDistanceMultiplier} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, NewError(MalformedInput, -1, "ParseMultiplierPolicy", "unknown multiplier policy %q", s)
}

//PushOptions contains the options for the Push function.
type PushOptions struct {
	Mode       PushMode
	Policy     MultiplierPolicy
	Multiplier float64 //only used with FixedMultiplier
	Annealing  Annealing
	Angular    *Angular
	//Rand is the source for all random choices. If nil, a new one is
	//created from Seed in each call to Push.
	Rand *rand.Rand
	Seed int64
}

//DefaultPushOptions returns the options used in the original runs of the method: n-dimensional
//tangent pushes, a fixed multiplier of 20 and an annealing period of 25 cycles.
func DefaultPushOptions() *PushOptions {
	r := new(PushOptions)
	r.Mode = TangentND
	r.Policy = FixedMultiplier
	r.Multiplier = 20.0 //empirical
	r.Annealing = Annealing{Period: DefaultPeriod}
	r.Seed = 1
	return r
}

func (O *PushOptions) rng() *rand.Rand {
	if O.Rand != nil {
		return O.Rand
	}
	return rand.New(rand.NewSource(O.Seed))
}
