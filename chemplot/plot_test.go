/*
 * plot_test.go
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */

package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	cell "github.com/rmera/gocell"
	"github.com/rmera/gocell/chemstat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//breathing returns cells for a box that expands and contracts along a.
func breathing(Te *testing.T, n int) []*cell.UnitCell {
	cells := make([]*cell.UnitCell, n)
	for i := range cells {
		var err error
		cells[i], err = cell.NewTriclinic(cell.Vector3D{20 + float64(i%5), 21, 22}, cell.Vector3D{90, 100, 120})
		require.NoError(Te, err)
	}
	return cells
}

func TestCellPlot(Te *testing.T) {
	cells := breathing(Te, 30)
	name := filepath.Join(Te.TempDir(), "cells")
	require.NoError(Te, CellPlot(cells, "Test cells", name))
	st, err := os.Stat(name + ".png")
	require.NoError(Te, err)
	assert.Greater(Te, st.Size(), int64(0))

	err = CellPlot(nil, "nothing", name)
	assert.True(Te, cell.IsKind(err, cell.InvalidArgument))
	err = CellPlot([]*cell.UnitCell{cells[0], nil}, "nil", name)
	assert.True(Te, cell.IsKind(err, cell.InvalidArgument))
}

func TestCorrelationPlot(Te *testing.T) {
	ac, err := chemstat.VolumeAutocorrelation(breathing(Te, 30))
	require.NoError(Te, err)
	name := filepath.Join(Te.TempDir(), "acf")
	require.NoError(Te, CorrelationPlot(ac, "Volume autocorrelation", name))
	_, err = os.Stat(name + ".png")
	require.NoError(Te, err)
	assert.True(Te, cell.IsKind(CorrelationPlot(nil, "", name), cell.InvalidArgument))
}
