/*
 * doc.go, part of gocell.
 *
 * Copyright 2021 Raul Mera <rauldotmeraatusachdotcl>
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

/*
Package stf implements the simple trajectory format (STF), a trajectory format which
is easy to read and write, and which stores the simulation box of each frame, so the
unit cell of each frame can be rebuilt with cell.FromTraj.

Format Specification

An STF file is compressed with z-standard (zstd), unless its name ends with "z", in which
case gzip is used. A STF file may only contain ASCII symbols.

A STF file has a "header" starting in the first line, and ending with a line that starts with the
characters "**" followed by one or more spaces, and the number of atoms per frame.
Each line of the header is a pair key=value. The precision (an integer greater than 0,
see below) is given with the key "prec", for example:

	prec=2

If no precision is given, 2 is assumed.

After the header, the file has one line per atom, per frame. Each line contains 3 integers,
the x, y and z cartesian coordinates in Angstrom, multiplied by 10 to the
power of the precision and rounded.

Each frame ends with a line starting with the character "*" (no whitespaces before), optionally
followed by one or more whitespace and 9 floating-point numbers separated by spaces: the
three vectors defining the simulation box, in Angstrom, one after the other.

The "**" sequence may only be used as a header termination.

The zstd compression level can be given to NewWriter.
*/
package stf
