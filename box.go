/*
 * box.go, part of gocell.
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

	v3 "github.com/rmera/gocell/v3"
)

//FromMatrix returns the cell defined by the three row vectors of m.
//A zero matrix gives an Infinite cell, a diagonal one (with non-negative elements) a Rectangular
//cell. Any other matrix gives a Triclinic cell with the same lengths and angles
//as the vectors in m, in the canonical orientation.
func FromMatrix(m Matrix3D) (*UnitCell, error) {
	for _, row := range m {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, NewError(InvalidArgument, "FromMatrix", "invalid element %v in cell matrix", v)
			}
		}
	}
	if m == (Matrix3D{}) {
		return &UnitCell{shape: Infinite}, nil
	}
	if diagonal(m) && m[0][0] >= 0 && m[1][1] >= 0 && m[2][2] >= 0 {
		C, err := New(Vector3D{m[0][0], m[1][1], m[2][2]})
		if err != nil {
			return nil, errDecorate(err, "FromMatrix")
		}
		return C, nil
	}
	tmp := &UnitCell{matrix: m, shape: Triclinic}
	C, err := NewTriclinic(tmp.Lengths(), tmp.Angles())
	if err != nil {
		return nil, errDecorate(err, "FromMatrix")
	}
	return C, nil
}

//FromBox returns the cell for a box given as the 9 components of
//the three box vectors (the first three elements are the first vector,
//and so on), as trajectory readers give them. Only the first 9 elements
//of box are used. A box with all zeros gives an Infinite cell.
func FromBox(box []float64) (*UnitCell, error) {
	if len(box) < 9 {
		return nil, NewError(InvalidArgument, "FromBox", "a box needs 9 elements, got %d", len(box))
	}
	var m Matrix3D
	for i := range m {
		copy(m[i][:], box[3*i:3*i+3])
	}
	C, err := FromMatrix(m)
	if err != nil {
		return nil, errDecorate(err, "FromBox")
	}
	return C, nil
}

//Box returns the cell matrix as a slice of 9 elements, in the format
//taken by FromBox. Infinite cells give a box of zeros.
func (C *UnitCell) Box() []float64 {
	box := make([]float64, 9)
	if C.shape == Infinite {
		return box
	}
	for i, row := range C.matrix {
		copy(box[3*i:3*i+3], row[:])
	}
	return box
}

//FromTraj reads the next frame of the trajectory and returns its cell. If coords is not nil,
//the frame coordinates are put in it, otherwise they are discarded.
//At the end of the trajectory, the LastFrameError from the trajectory is returned.
func FromTraj(t Traj, coords *v3.Matrix) (*UnitCell, error) {
	if t == nil || !t.Readable() {
		return nil, NewError(InvalidArgument, "FromTraj", "trajectory not readable")
	}
	box := make([]float64, 9)
	if err := t.Next(coords, box); err != nil {
		return nil, errDecorate(err, "FromTraj")
	}
	C, err := FromBox(box)
	if err != nil {
		return nil, errDecorate(err, "FromTraj")
	}
	return C, nil
}
