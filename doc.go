/*
 * doc.go, part of gocell.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package cell implements the unit cell of molecular simulations, the parallelepiped
that defines the periodic boundary conditions of a system.

A UnitCell can be built from three lengths (a Rectangular cell), from three lengths and
three angles (a Triclinic cell), or from the box vectors given by a trajectory.
It gives the lengths, angles (in degrees), volume and matrix of the cell, and it can
wrap vectors into the cell, i.e. apply the periodic boundary conditions.

The shape of a cell is stored, not deduced from its angles. A cell created with
NewTriclinic is Triclinic even if all its angles are 90 degrees.

	c, err := cell.New(cell.Vector3D{2, 3, 4})
	if err != nil {
		//...
	}
	w, err := c.Wrap(cell.Vector3D{0.8, 1.7, -6}) // {0.8, -1.3, 2}

Subpackages:

v3: Nx3 matrices of coordinates.

traj/stf: Reading and writing of the simple trajectory format, with box vectors.

chemjson: JSON serialization of cells.

chemstat: Statistics of the cells along a trajectory.

chemplot: Plots of the cells along a trajectory.

capi: A boundary layer with status codes, handles and a process-wide error message and logger.

*/
package cell
