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

/*Package vn implements a Matrix type representing a row-major NxM matrix, where each
row is one point (an "image") in an M-dimensional space of collective variables.
The vn.Matrix is used to represent strings (ordered sets of images) and swarms of
trajectories in swarms. It is based on gonum's (github.com/gonum) Dense type, with
a few additional functions that were found useful for handling sets of images.

Unlike goChem's v3.Matrix, the number of columns is not fixed, but it cannot change
once the matrix has been created.
*/
package vn
