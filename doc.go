/*
 * doc.go, part of swarms.
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

/*Package swarms implements the geometric machinery of the string method with swarms of trajectories,
used to find minimum free energy paths between two states of a molecular system in the space of
a few collective variables (CVs).

A string is an ordered set of images, each of them a point in CV space. The first and last image
are fixed. In every cycle, a swarm of short simulations is run from each interior image, the
images are moved to the swarm averages, and the string is reparametrized so its images are
again equally spaced in arc length.

	**Capabilities**

    Wrapping and differences for periodic (angular) CVs, in degrees.

    Reparametrization of a string to any number of equally spaced images.

    Removal of knots (sections where the string folds onto itself) by nearest-neighbor walks,
    plus a k-nearest-neighbor graph for diagnostics.

    Pushing the string orthogonally to itself, with a magnitude given by a
    simulated-annealing schedule, to explore the CV space.

    Reading and writing string files, optionally zstd-compressed.

    Running the swarms concurrently through any Oracle.

The vn subpackage contains the matrix type used to represent strings and swarms (one image or
trajectory per row). The cycle subpackage puts everything together into one cycle of the method,
configured through a YAML file, and the oracle subpackage contains Oracle implementations that
read swarm files or call an external program.

Errors returned by this library are of type *Error, and can be tested for their category with
errors.Is against the Kind constants (MalformedInput, DegenerateGeometry, UnreachableTraversal,
ExternalOracleFailure).

*/
package swarms
