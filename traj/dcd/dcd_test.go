/*
 * dcd_test.go
 *
 * Copyright 2012 Raul Mera Adasme <rmera_changeforat_chem-dot-helsinki-dot-fi>
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
 */

package dcd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	cell "github.com/rmera/gocell"
	v3 "github.com/rmera/gocell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFrames(Te *testing.T, name string, cosines bool) *cell.UnitCell {
	tric, err := cell.NewTriclinic(cell.Vector3D{5, 6, 7}, cell.Vector3D{80, 89, 100})
	require.NoError(Te, err)
	w, err := NewWriter(name, 2)
	require.NoError(Te, err)
	w.cosines = cosines
	coords, err := v3.NewMatrix([]float64{0.8, 1.7, -6, 1.25, -2.5, 3})
	require.NoError(Te, err)
	require.NoError(Te, w.WNext(coords, []float64{2, 0, 0, 0, 3, 0, 0, 0, 4}))
	require.NoError(Te, w.WNext(coords, tric.Box()))
	require.NoError(Te, w.WNext(coords))
	require.NoError(Te, w.Close())
	return tric
}

func TestDCDRoundTrip(Te *testing.T) {
	opt := cmpopts.EquateApprox(0, 1e-9)
	for _, cosines := range []bool{false, true} {
		name := filepath.Join(Te.TempDir(), "test.dcd")
		tric := writeFrames(Te, name, cosines)

		r, err := New(name)
		require.NoError(Te, err)
		defer r.Close()
		assert.Equal(Te, 2, r.Len())
		assert.Equal(Te, 3, r.Frames())
		assert.True(Te, r.HasCell())

		coords := v3.Zeros(2)
		c, err := cell.FromTraj(r, coords)
		require.NoError(Te, err)
		assert.Equal(Te, cell.Rectangular, c.Shape(), "cosines: %v", cosines)
		assert.Equal(Te, cell.Vector3D{2, 3, 4}, c.Lengths())
		assert.InDelta(Te, 0.8, coords.At(0, 0), 1e-6)
		assert.InDelta(Te, 1.25, coords.At(1, 0), 1e-6)

		c, err = cell.FromTraj(r, nil)
		require.NoError(Te, err)
		assert.Equal(Te, cell.Triclinic, c.Shape())
		if diff := cmp.Diff(tric.Matrix(), c.Matrix(), opt); diff != "" {
			Te.Errorf("cosines: %v, cell mismatch (-want +got):\n%s", cosines, diff)
		}

		c, err = cell.FromTraj(r, coords)
		require.NoError(Te, err)
		assert.Equal(Te, cell.Infinite, c.Shape())

		_, err = cell.FromTraj(r, coords)
		require.Error(Te, err)
		_, ok := err.(cell.LastFrameError)
		assert.True(Te, ok, "expected the end of the trajectory, got %s", err)
		assert.False(Te, r.Readable())
	}
}

func TestDCDErrors(Te *testing.T) {
	dir := Te.TempDir()
	_, err := NewWriter(filepath.Join(dir, "bad.dcd"), 0)
	assert.Equal(Te, cell.InvalidArgument, cell.KindOf(err))

	_, err = New(filepath.Join(dir, "nothere.dcd"))
	require.Error(Te, err)
	assert.Equal(Te, cell.FileFailure, cell.KindOf(err))
	terr, ok := err.(cell.TrajError)
	require.True(Te, ok)
	assert.Equal(Te, "dcd", terr.Format())
	assert.Equal(Te, []string{"os.Open", "initRead", "New"}, terr.Decorate(""))

	notdcd := filepath.Join(dir, "text.dcd")
	require.NoError(Te, os.WriteFile(notdcd, []byte("this is not a trajectory at all, but it is long enough to be read as one............................................"), 0644))
	_, err = New(notdcd)
	assert.Equal(Te, cell.FormatFailure, cell.KindOf(err))

	name := filepath.Join(dir, "test.dcd")
	writeFrames(Te, name, false)
	w, err := NewWriter(filepath.Join(dir, "other.dcd"), 3)
	require.NoError(Te, err)
	defer w.Close()
	assert.Equal(Te, cell.InvalidArgument, cell.KindOf(w.WNext(v3.Zeros(2))))
	assert.Equal(Te, cell.InvalidArgument, cell.KindOf(w.WNext(v3.Zeros(3), []float64{1, 2})))

	r, err := New(name)
	require.NoError(Te, err)
	defer r.Close()
	assert.Equal(Te, cell.InvalidArgument, cell.KindOf(r.Next(v3.Zeros(3))))
}
