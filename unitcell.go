/*
 * unitcell.go, part of gocell.
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

package cell

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

//Vector3D is a point or a displacement in 3D space, in Angstrom.
type Vector3D [3]float64

//Matrix3D is a 3x3 matrix stored as three row vectors.
type Matrix3D [3]Vector3D

func (v Vector3D) r3() r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

func fromR3(p r3.Vec) Vector3D { return Vector3D{p.X, p.Y, p.Z} }

//Shape is the kind of unit cell. It is stored in the cell and never
//deduced from the angles: a Triclinic cell with 90 degree angles is
//still a Triclinic cell.
type Shape int

const (
	Rectangular Shape = iota //All angles are 90 degrees, the matrix is diagonal.
	Triclinic                //Any parallelepiped.
	Infinite                 //No periodicity.
)

func (s Shape) String() string {
	switch s {
	case Rectangular:
		return "rectangular"
	case Triclinic:
		return "triclinic"
	case Infinite:
		return "infinite"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

func (s Shape) valid() bool {
	return s == Rectangular || s == Triclinic || s == Infinite
}

//UnitCell is the periodic simulation cell. Row i of the matrix is the ith
//cell vector. The matrix is always kept in the canonical form, where the first
//vector lies along the x axis and the second one in the xy plane.
//A UnitCell has value semantics: Copy returns a fully independent cell.
//UnitCells are not safe for concurrent mutation.
type UnitCell struct {
	matrix Matrix3D
	shape  Shape
}

//New returns a Rectangular cell with the given lengths, i.e. a cell
//with a diagonal matrix. If all lengths are zero the cell is Infinite.
func New(lengths Vector3D) (*UnitCell, error) {
	if err := checkLengths(lengths, "New"); err != nil {
		return nil, err
	}
	if lengths == (Vector3D{}) {
		return &UnitCell{shape: Infinite}, nil
	}
	C := &UnitCell{shape: Rectangular}
	for i, l := range lengths {
		C.matrix[i][i] = l
	}
	return C, nil
}

//NewTriclinic returns a Triclinic cell with the given lengths and angles (in degrees).
//alpha (angles[0]) is the angle between the second and third vectors, beta (angles[1]) the one between
//the first and third vectors, and gamma (angles[2]) the one between the first and second.
//The cell is Triclinic even if all angles are 90 degrees.
func NewTriclinic(lengths, angles Vector3D) (*UnitCell, error) {
	if err := checkLengths(lengths, "NewTriclinic"); err != nil {
		return nil, err
	}
	if err := checkAngles(angles, "NewTriclinic"); err != nil {
		return nil, err
	}
	m, err := canonical(lengths, angles)
	if err != nil {
		return nil, errDecorate(err, "NewTriclinic")
	}
	return &UnitCell{matrix: m, shape: Triclinic}, nil
}

//Copy returns a new cell, independent of the receiver.
func (C *UnitCell) Copy() *UnitCell {
	ret := *C
	return &ret
}

//Shape returns the shape of the cell.
func (C *UnitCell) Shape() Shape {
	return C.shape
}

//Matrix returns a copy of the cell matrix. Row i is the ith cell vector.
func (C *UnitCell) Matrix() Matrix3D {
	return C.matrix
}

//Lengths returns the lengths of the three cell vectors.
func (C *UnitCell) Lengths() Vector3D {
	var ret Vector3D
	for i, v := range C.matrix {
		ret[i] = r3.Norm(v.r3())
	}
	return ret
}

//Angles returns alpha, beta and gamma, in degrees.
func (C *UnitCell) Angles() Vector3D {
	a, b, c := C.matrix[0].r3(), C.matrix[1].r3(), C.matrix[2].r3()
	return Vector3D{angle(b, c), angle(a, c), angle(a, b)}
}

//Volume returns the volume of the cell. It is zero for Infinite
//cells and for degenerate ones.
func (C *UnitCell) Volume() float64 {
	if C.shape == Infinite {
		return 0
	}
	return math.Abs(det(C.matrix))
}

//Equal returns true if both cells have the same shape and exactly the same matrix.
func (C *UnitCell) Equal(o *UnitCell) bool {
	if C == nil || o == nil {
		return C == o
	}
	return C.shape == o.shape && C.matrix == o.matrix
}

func (C *UnitCell) String() string {
	l := C.Lengths()
	a := C.Angles()
	return fmt.Sprintf("%s cell: a=%.4f b=%.4f c=%.4f alpha=%.4f beta=%.4f gamma=%.4f", C.shape, l[0], l[1], l[2], a[0], a[1], a[2])
}

func checkLengths(lengths Vector3D, caller string) error {
	for i, v := range lengths {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewError(InvalidArgument, caller, "invalid cell length %d: %v", i, v)
		}
		if v < 0 {
			return NewError(InvalidArgument, caller, "cell lengths can't be negative, got %v for length %d", v, i)
		}
	}
	return nil
}

func checkAngles(angles Vector3D, caller string) error {
	for i, v := range angles {
		if math.IsNaN(v) || v < 0 || v > 180 {
			return NewError(InvalidArgument, caller, "cell angle %d must be between 0 and 180 degrees, got %v", i, v)
		}
	}
	return nil
}
