/*
 * geometry.go, part of gocell.
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

package cell

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const deg2rad = math.Pi / 180

//cosd and sind take degrees. They are exact for 0, 90 and 180, so
//right angles give exactly zero off-diagonal terms.
func cosd(deg float64) float64 {
	switch deg {
	case 0:
		return 1
	case 90:
		return 0
	case 180:
		return -1
	}
	return math.Cos(deg * deg2rad)
}

func sind(deg float64) float64 {
	switch deg {
	case 0, 180:
		return 0
	case 90:
		return 1
	}
	return math.Sin(deg * deg2rad)
}

//canonical returns the cell matrix for the given lengths and angles, with
//the first vector along x and the second one in the xy plane.
func canonical(lengths, angles Vector3D) (Matrix3D, error) {
	var m Matrix3D
	cosa, cosb, cosg := cosd(angles[0]), cosd(angles[1]), cosd(angles[2])
	sing := sind(angles[2])
	if sing == 0 {
		return m, NewError(ConstraintViolation, "canonical", "gamma can't be %v degrees, the first two cell vectors would be parallel", angles[2])
	}
	rad := 1 - cosa*cosa - cosb*cosb - cosg*cosg + 2*cosa*cosb*cosg
	if rad < 0 {
		return m, NewError(ConstraintViolation, "canonical", "angles %v don't define a parallelepiped", angles)
	}
	a, b, c := lengths[0], lengths[1], lengths[2]
	m[0] = Vector3D{a, 0, 0}
	m[1] = Vector3D{b * cosg, b * sing, 0}
	m[2] = Vector3D{c * cosb, c * (cosa - cosb*cosg) / sing, c * math.Sqrt(rad) / sing}
	return m, nil
}

//angle returns the angle between u and v in degrees. Orthogonal
//vectors give exactly 90, and so does a zero vector.
func angle(u, v r3.Vec) float64 {
	nu, nv := r3.Norm(u), r3.Norm(v)
	d := r3.Dot(u, v)
	if nu == 0 || nv == 0 || d == 0 {
		return 90
	}
	cos := math.Max(-1, math.Min(1, d/(nu*nv)))
	return math.Acos(cos) / deg2rad
}

//det is the determinant of m, as the triple product of its rows.
func det(m Matrix3D) float64 {
	return r3.Dot(m[0].r3(), r3.Cross(m[1].r3(), m[2].r3()))
}

//diagonal returns true if all the off-diagonal elements of m are zero.
func diagonal(m Matrix3D) bool {
	for i := range m {
		for j := range m[i] {
			if i != j && m[i][j] != 0 {
				return false
			}
		}
	}
	return true
}
