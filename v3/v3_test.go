/*
 * v3_test.go
 *
 * Copyright 2013 Raul Mera <rmera@zinc>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 *
 *
 */

package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())
	assert.Equal(Te, [3]float64{4, 5, 6}, A.Vec(1))

	_, err = NewMatrix([]float64{1, 2, 3, 4})
	assert.Error(Te, err)
	_, err = NewMatrix(nil)
	assert.Error(Te, err)
}

func TestVecView(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(Te, err)
	view := A.VecView(1)
	view.Set(0, 0, 100)
	assert.Equal(Te, 100.0, A.At(1, 0), "the view should share storage with the matrix")
	assert.Equal(Te, 1, view.NVecs())
}

func TestSetVec(Te *testing.T) {
	A := Zeros(3)
	A.SetVec(2, [3]float64{1, -2, 3})
	assert.Equal(Te, [3]float64{1, -2, 3}, A.Vec(2))
	assert.Equal(Te, [3]float64{}, A.Vec(0))
	v := A.Vec(2)
	v[0] = 50
	assert.Equal(Te, 1.0, A.At(2, 0), "Vec should return a copy")
}

func TestPanics(Te *testing.T) {
	A := Zeros(2)
	assert.PanicsWithValue(Te, ErrIndexOutOfRange, func() { A.Vec(2) })
	assert.PanicsWithValue(Te, ErrNotEnoughElements, func() { Zeros(0) })
	assert.PanicsWithValue(Te, ErrNotXx3Matrix, func() { Dense2Matrix(mat.NewDense(2, 2, nil)) })
}

func TestString(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, "\n[  1.00   2.00   3.00\n   4.00   5.00   6.00 ]", A.String())
}

func TestDense(Te *testing.T) {
	D := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	A := Dense2Matrix(D)
	assert.Equal(Te, [3]float64{4, 5, 6}, A.Vec(1))
	assert.Same(Te, D, Matrix2Dense(A))
	A.SetVec(0, [3]float64{7, 8, 9})
	assert.Equal(Te, 8.0, D.At(0, 1), "the Matrix should share storage with the Dense")
}
