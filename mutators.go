/*
 * mutators.go, part of gocell.
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

import "gonum.org/v1/gonum/spatial/r3"

//All the methods in this file leave the cell untouched when they return an error.

//SetLengths scales each cell vector to the corresponding new length, keeping its direction,
//so the angles don't change. A zero-length vector is first put along its canonical axis
//(x, y and z for the first, second and third vectors).
func (C *UnitCell) SetLengths(lengths Vector3D) error {
	if err := checkLengths(lengths, "SetLengths"); err != nil {
		return err
	}
	m := C.matrix
	for i, l := range lengths {
		old := r3.Norm(m[i].r3())
		if old == 0 {
			m[i] = Vector3D{}
			m[i][i] = l
			continue
		}
		for k := range m[i] {
			m[i][k] = m[i][k] * l / old
		}
	}
	C.matrix = m
	return nil
}

//SetAngles recomputes the cell matrix from the current lengths and the given angles, in degrees.
//Only Triclinic cells can have their angles set, for other cells, call SetShape(Triclinic) first.
func (C *UnitCell) SetAngles(angles Vector3D) error {
	if C.shape != Triclinic {
		return NewError(ConstraintViolation, "SetAngles", "can not set the angles of a %s cell", C.shape)
	}
	if err := checkAngles(angles, "SetAngles"); err != nil {
		return err
	}
	m, err := canonical(C.Lengths(), angles)
	if err != nil {
		return errDecorate(err, "SetAngles")
	}
	C.matrix = m
	return nil
}

//SetShape changes the shape of the cell.
//Rectangular->Triclinic is always allowed, and doesn't change the matrix.
//Any cell can become Infinite. Its matrix is kept, but it is not used for wrapping.
//A cell can only become Rectangular if all its angles are exactly 90 degrees.
//When an Infinite cell becomes periodic again, its matrix is rebuilt in canonical form from
//its current lengths and angles, which can then be changed with SetLengths and SetAngles.
func (C *UnitCell) SetShape(shape Shape) error {
	if !shape.valid() {
		return NewError(InvalidArgument, "SetShape", "unknown cell shape %d", int(shape))
	}
	if shape == C.shape {
		return nil
	}
	switch shape {
	case Infinite:
	case Rectangular:
		angles := C.Angles()
		if angles != (Vector3D{90, 90, 90}) {
			return NewError(ConstraintViolation, "SetShape", "a cell with angles %v can't be rectangular", angles)
		}
		var m Matrix3D
		for i, l := range C.Lengths() {
			m[i][i] = l
		}
		C.matrix = m
	case Triclinic:
		if C.shape == Infinite {
			m, err := canonical(C.Lengths(), C.Angles())
			if err != nil {
				return errDecorate(err, "SetShape")
			}
			C.matrix = m
		}
	}
	C.shape = shape
	return nil
}
