/*
 * doc.go, part of gocell
 *
 * Copyright 2012 Raul Mera Adasme <rmera_changeforat_chem-dot-helsinki-dot-fi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

/*
Package dcd reads and writes CHARMM/NAMD binary (DCD) trajectories, including
the unit cell of each frame.

When the header flags the presence of a unit cell, each frame starts with a block
of 6 double-precision numbers: a, gamma, b, beta, alpha and c. The angles can
be given in degrees (NAMD) or as cosines (newer CHARMM versions). If the three
angle values are between -1 and 1, they are taken as cosines. Next gives the
cell as the 9 components of the box vectors, in the canonical orientation, so it
can be used with cell.FromBox or cell.FromTraj.

Only CHARMM-style (not X-plor) files without fixed atoms are supported. Files
of either endianness can be read. Files are always written little-endian, with
the angles in degrees.
*/
package dcd
