/*
 * interfaces.go, part of swarms.
 *
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
 *
 */

package swarms

import (
	"context"

	"github.com/rmera/swarms/vn"
)

// Oracle is anything that can run a swarm of short simulations restrained to a target image,
// and return the final value of the collective variables for each trajectory of the swarm.
// An Oracle is usually a wrapper around an MD engine.
type Oracle interface {

	//Swarm runs the swarm for the given image and cycle, restrained at target, and returns
	//one row per trajectory, with the same number of variables as target.
	//It may be called concurrently for different images.
	Swarm(ctx context.Context, image, cycle int, target []float64) (*vn.Matrix, error)
}

// OracleFunc allows using an ordinary function as an Oracle.
type OracleFunc func(ctx context.Context, image, cycle int, target []float64) (*vn.Matrix, error)

// Swarm calls f.
func (f OracleFunc) Swarm(ctx context.Context, image, cycle int, target []float64) (*vn.Matrix, error) {
	return f(ctx, image, cycle, target)
}
