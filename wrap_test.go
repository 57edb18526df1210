/*
 * wrap_test.go, part of gocell.
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
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	v3 "github.com/rmera/gocell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(Te *testing.T) {
	c, err := New(Vector3D{2, 3, 4})
	require.NoError(Te, err)
	w, err := c.Wrap(Vector3D{0.8, 1.7, -6})
	require.NoError(Te, err)
	if diff := cmp.Diff(Vector3D{0.8, -1.3, 2}, w, approx); diff != "" {
		Te.Errorf("wrapped vector mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapTies(Te *testing.T) {
	c, err := New(Vector3D{2, 2, 2})
	require.NoError(Te, err)
	//fractional coordinates 1.5, -1.5 and 0.5. Ties go away from zero.
	w, err := c.Wrap(Vector3D{3, -3, 1})
	require.NoError(Te, err)
	if diff := cmp.Diff(Vector3D{-1, 1, -1}, w, approx); diff != "" {
		Te.Errorf("tie breaking mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapInfinite(Te *testing.T) {
	c, err := NewTriclinic(Vector3D{5, 6, 7}, Vector3D{70, 80, 95})
	require.NoError(Te, err)
	require.NoError(Te, c.SetShape(Infinite))
	v := Vector3D{100, -250, 33.3}
	w, err := c.Wrap(v)
	require.NoError(Te, err)
	assert.Equal(Te, v, w)
}

func TestWrapNullVolume(Te *testing.T) {
	c, err := New(Vector3D{0, 3, 4})
	require.NoError(Te, err)
	v := Vector3D{1, 2, 3}
	w, err := c.Wrap(v)
	assert.True(Te, IsKind(err, ConstraintViolation))
	assert.Equal(Te, v, w)
}

func testCells(Te *testing.T) []*UnitCell {
	r, err := New(Vector3D{2, 3, 4})
	require.NoError(Te, err)
	t1, err := NewTriclinic(Vector3D{20, 21, 22}, Vector3D{90, 100, 120})
	require.NoError(Te, err)
	t2, err := NewTriclinic(Vector3D{5, 6, 7}, Vector3D{80, 89, 100})
	require.NoError(Te, err)
	return []*UnitCell{r, t1, t2}
}

func TestWrapInCell(Te *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, c := range testCells(Te) {
		s, err := c.newSolver()
		require.NoError(Te, err)
		for i := 0; i < 200; i++ {
			v := Vector3D{(rng.Float64() - 0.5) * 200, (rng.Float64() - 0.5) * 200, (rng.Float64() - 0.5) * 200}
			w, err := c.Wrap(v)
			require.NoError(Te, err)
			fw, err := s.fractional(w)
			require.NoError(Te, err)
			fv, err := s.fractional(v)
			require.NoError(Te, err)
			for k := range fw {
				assert.LessOrEqual(Te, math.Abs(fw[k]), 0.5+1e-10, "%s: %v wraps outside the cell", c, v)
				//v and its image differ in a whole number of cell vectors.
				shift := fv[k] - fw[k]
				assert.InDelta(Te, math.Round(shift), shift, 1e-8)
			}
		}
	}
}

func TestWrapIdempotent(Te *testing.T) {
	rng := rand.New(rand.NewSource(7))
	opt := cmpopts.EquateApprox(0, 1e-9)
	for _, c := range testCells(Te) {
		for i := 0; i < 200; i++ {
			v := Vector3D{(rng.Float64() - 0.5) * 80, (rng.Float64() - 0.5) * 80, (rng.Float64() - 0.5) * 80}
			once, err := c.Wrap(v)
			require.NoError(Te, err)
			twice, err := c.Wrap(once)
			require.NoError(Te, err)
			if diff := cmp.Diff(once, twice, opt); diff != "" {
				Te.Errorf("%s: wrapping %v twice differs from once (-once +twice):\n%s", c, v, diff)
			}
		}
	}
}

func TestWrapCoords(Te *testing.T) {
	c, err := New(Vector3D{2, 3, 4})
	require.NoError(Te, err)
	coords, err := v3.NewMatrix([]float64{0.8, 1.7, -6, 0.1, 0.2, 0.3, -2.5, 7, 9})
	require.NoError(Te, err)
	require.NoError(Te, c.WrapCoords(coords))
	want := []Vector3D{{0.8, -1.3, 2}, {0.1, 0.2, 0.3}, {-0.5, 1, 1}}
	for i, w := range want {
		if diff := cmp.Diff(w, Vector3D(coords.Vec(i)), approx); diff != "" {
			Te.Errorf("vector %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	coords.Set(1, 1, math.NaN())
	before := coords.Vec(0)
	assert.True(Te, IsKind(c.WrapCoords(coords), InvalidArgument))
	assert.Equal(Te, before, coords.Vec(0))
	assert.True(Te, IsKind(c.WrapCoords(nil), InvalidArgument))
}

func TestWrapNaN(Te *testing.T) {
	for _, c := range testCells(Te) {
		v := Vector3D{math.NaN(), 0, 0}
		_, err := c.Wrap(v)
		assert.True(Te, IsKind(err, InvalidArgument), "%s", c)
	}
	c, err := New(Vector3D{2, 3, 4})
	require.NoError(Te, err)
	require.NoError(Te, c.SetShape(Infinite))
	_, err = c.Wrap(Vector3D{0, math.NaN(), 0})
	assert.True(Te, IsKind(err, InvalidArgument))
}

//A fractional coordinate of exactly 0.5 is rounded away from zero, so a vector
//on a face of the cell is sent to the opposite face, and wrapping is not
//idempotent there.
func TestWrapTieNotIdempotent(Te *testing.T) {
	c, err := New(Vector3D{2, 3, 4})
	require.NoError(Te, err)
	once, err := c.Wrap(Vector3D{0.8, 1.7, -6})
	require.NoError(Te, err)
	if diff := cmp.Diff(Vector3D{0.8, -1.3, 2}, once, approx); diff != "" {
		Te.Errorf("wrapped vector mismatch (-want +got):\n%s", diff)
	}
	twice, err := c.Wrap(once)
	require.NoError(Te, err)
	if diff := cmp.Diff(Vector3D{0.8, -1.3, -2}, twice, approx); diff != "" {
		Te.Errorf("wrapping a vector on a face mismatch (-want +got):\n%s", diff)
	}
	//the two images differ in exactly one cell vector.
	assert.InDelta(Te, 4.0, once[2]-twice[2], 1e-12)
}
