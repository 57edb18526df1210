/*
 * box_test.go, part of gocell.
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
	"testing"

	"github.com/google/go-cmp/cmp"
	v3 "github.com/rmera/gocell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMatrix(Te *testing.T) {
	c, err := FromMatrix(Matrix3D{})
	require.NoError(Te, err)
	assert.Equal(Te, Infinite, c.Shape())

	c, err = FromMatrix(Matrix3D{{10, 0, 0}, {0, 20, 0}, {0, 0, 30}})
	require.NoError(Te, err)
	assert.Equal(Te, Rectangular, c.Shape())
	assert.Equal(Te, Vector3D{10, 20, 30}, c.Lengths())

	//a rotated triclinic box.
	m := Matrix3D{{0, 5, 0}, {-3, 3, 0}, {1, 1, 6}}
	c, err = FromMatrix(m)
	require.NoError(Te, err)
	assert.Equal(Te, Triclinic, c.Shape())
	ref := &UnitCell{matrix: m, shape: Triclinic}
	if diff := cmp.Diff(ref.Lengths(), c.Lengths(), approx); diff != "" {
		Te.Errorf("lengths mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ref.Angles(), c.Angles(), approx); diff != "" {
		Te.Errorf("angles mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(Te, ref.Volume(), c.Volume(), 1e-9)
	out := c.Matrix()
	assert.Equal(Te, 0.0, out[0][1])
	assert.Equal(Te, 0.0, out[0][2])
	assert.Equal(Te, 0.0, out[1][2])

	_, err = FromMatrix(Matrix3D{{math.NaN(), 0, 0}, {0, 1, 0}, {0, 0, 1}})
	assert.True(Te, IsKind(err, InvalidArgument))
}

func TestBox(Te *testing.T) {
	c, err := NewTriclinic(Vector3D{5, 6, 7}, Vector3D{80, 89, 100})
	require.NoError(Te, err)
	box := c.Box()
	require.Len(Te, box, 9)
	back, err := FromBox(box)
	require.NoError(Te, err)
	assert.Equal(Te, Triclinic, back.Shape())
	if diff := cmp.Diff(c.Matrix(), back.Matrix(), approx); diff != "" {
		Te.Errorf("box round trip mismatch (-want +got):\n%s", diff)
	}

	r, err := New(Vector3D{2, 3, 4})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{2, 0, 0, 0, 3, 0, 0, 0, 4}, r.Box())
	require.NoError(Te, r.SetShape(Infinite))
	assert.Equal(Te, make([]float64, 9), r.Box())

	_, err = FromBox([]float64{1, 2, 3})
	assert.True(Te, IsKind(err, InvalidArgument))
}

//memTraj is a trajectory kept in memory.
type memTraj struct {
	boxes  [][]float64
	coords [][]float64
	frame  int
}

type memLastFrame struct{ deco []string }

func (E *memLastFrame) Error() string { return "EOF" }
func (E *memLastFrame) Decorate(d string) []string {
	if d != "" {
		E.deco = append(E.deco, d)
	}
	return E.deco
}
func (E *memLastFrame) Critical() bool               { return false }
func (E *memLastFrame) FileName() string             { return "" }
func (E *memLastFrame) Format() string               { return "mem" }
func (E *memLastFrame) NormalLastFrameTermination() {}

func (M *memTraj) Readable() bool { return true }
func (M *memTraj) Len() int       { return 1 }
func (M *memTraj) Next(output *v3.Matrix, box ...[]float64) error {
	if M.frame >= len(M.boxes) {
		return &memLastFrame{}
	}
	if output != nil {
		output.SetVec(0, [3]float64(M.coords[M.frame]))
	}
	if len(box) > 0 {
		copy(box[0], M.boxes[M.frame])
	}
	M.frame++
	return nil
}

func TestFromTraj(Te *testing.T) {
	t := &memTraj{
		boxes:  [][]float64{{2, 0, 0, 0, 3, 0, 0, 0, 4}, {0, 0, 0, 0, 0, 0, 0, 0, 0}},
		coords: [][]float64{{0.8, 1.7, -6}, {1, 2, 3}},
	}
	coords := v3.Zeros(1)
	c, err := FromTraj(t, coords)
	require.NoError(Te, err)
	assert.Equal(Te, Rectangular, c.Shape())
	require.NoError(Te, c.WrapCoords(coords))
	if diff := cmp.Diff(Vector3D{0.8, -1.3, 2}, Vector3D(coords.Vec(0)), approx); diff != "" {
		Te.Errorf("wrapped frame mismatch (-want +got):\n%s", diff)
	}

	c, err = FromTraj(t, nil)
	require.NoError(Te, err)
	assert.Equal(Te, Infinite, c.Shape())

	_, err = FromTraj(t, nil)
	require.Error(Te, err)
	_, ok := err.(LastFrameError)
	assert.True(Te, ok, "the end of the trajectory should be reported as such")
	assert.Equal(Te, []string{"FromTraj"}, err.(Error).Decorate(""))

	_, err = FromTraj(nil, nil)
	assert.True(Te, IsKind(err, InvalidArgument))
}
