/*
 * wrap.go, part of gocell.
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
	"errors"
	"math"

	v3 "github.com/rmera/gocell/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Wrap returns the image of v inside the cell, i.e. the vector whose fractional
//coordinates are the ones of v reduced to the [-0.5, 0.5] range.
//Ties are rounded away from zero, so a fractional coordinate of -1.5 becomes 0.5
//and one of 1.5 becomes -0.5.
//Infinite cells return v unchanged. Cells with null volume can't wrap, and return
//a ConstraintViolation error. Vectors with NaN components give an InvalidArgument error.
func (C *UnitCell) Wrap(v Vector3D) (Vector3D, error) {
	if floats.HasNaN(v[:]) {
		return v, NewError(InvalidArgument, "Wrap", "vector %v has NaN components", v)
	}
	if C.shape == Infinite {
		return v, nil
	}
	s, err := C.newSolver()
	if err != nil {
		return v, errDecorate(err, "Wrap")
	}
	w, err := s.wrap(v)
	if err != nil {
		return v, errDecorate(err, "Wrap")
	}
	return w, nil
}

//WrapCoords wraps, in place, each vector of coords. If an error is returned,
//coords is not modified.
func (C *UnitCell) WrapCoords(coords *v3.Matrix) error {
	if coords == nil {
		return NewError(InvalidArgument, "WrapCoords", "given nil coordinates")
	}
	n := coords.NVecs()
	for i := 0; i < n; i++ {
		if floats.HasNaN(coords.RawRowView(i)) {
			return NewError(InvalidArgument, "WrapCoords", "coordinates of vector %d are NaN", i)
		}
	}
	if C.shape == Infinite {
		return nil
	}
	s, err := C.newSolver()
	if err != nil {
		return errDecorate(err, "WrapCoords")
	}
	wrapped := make([]Vector3D, n)
	for i := range wrapped {
		wrapped[i], err = s.wrap(Vector3D(coords.Vec(i)))
		if err != nil {
			return errDecorate(err, "WrapCoords")
		}
	}
	for i, v := range wrapped {
		coords.SetVec(i, [3]float64(v))
	}
	return nil
}

//solver keeps the LU factorization of a cell matrix, so many vectors
//can be wrapped with one factorization.
type solver struct {
	m  Matrix3D
	lu mat.LU
}

func (C *UnitCell) newSolver() (*solver, error) {
	if C.Volume() == 0 {
		return nil, NewError(ConstraintViolation, "newSolver", "can't use a %s cell with null volume for periodic boundary conditions", C.shape)
	}
	s := &solver{m: C.matrix}
	data := make([]float64, 0, 9)
	for _, row := range C.matrix {
		data = append(data, row[:]...)
	}
	s.lu.Factorize(mat.NewDense(3, 3, data))
	return s, nil
}

//fractional solves M^T f = v, as the rows of M are the cell vectors.
func (s *solver) fractional(v Vector3D) (Vector3D, error) {
	var f mat.VecDense
	err := s.lu.SolveVecTo(&f, true, mat.NewVecDense(3, v[:]))
	if err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return v, NewError(GenericFailure, "fractional", "can't obtain fractional coordinates: %s", err.Error())
		}
	}
	return Vector3D{f.AtVec(0), f.AtVec(1), f.AtVec(2)}, nil
}

//cartesian returns f*M.
func (s *solver) cartesian(f Vector3D) Vector3D {
	var ret r3.Vec
	for i, row := range s.m {
		ret = r3.Add(ret, r3.Scale(f[i], row.r3()))
	}
	return fromR3(ret)
}

func (s *solver) wrap(v Vector3D) (Vector3D, error) {
	f, err := s.fractional(v)
	if err != nil {
		return v, err
	}
	for i := range f {
		f[i] -= math.Round(f[i]) //math.Round rounds half away from zero.
	}
	return s.cartesian(f), nil
}
