/*
 * json_test.go, part of gocell.
 *
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

package chemjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	cell "github.com/rmera/gocell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCells(Te *testing.T) []*cell.UnitCell {
	r, err := cell.New(cell.Vector3D{2, 3, 4})
	require.NoError(Te, err)
	t, err := cell.NewTriclinic(cell.Vector3D{20, 21, 22}, cell.Vector3D{90, 100, 120})
	require.NoError(Te, err)
	rt, err := cell.NewTriclinic(cell.Vector3D{5, 6, 7}, cell.Vector3D{90, 90, 90})
	require.NoError(Te, err)
	inf, err := cell.NewTriclinic(cell.Vector3D{5, 6, 7}, cell.Vector3D{70, 80, 95})
	require.NoError(Te, err)
	require.NoError(Te, inf.SetShape(cell.Infinite))
	zero, err := cell.New(cell.Vector3D{})
	require.NoError(Te, err)
	return []*cell.UnitCell{r, t, rt, inf, zero}
}

func TestCellRoundTrip(Te *testing.T) {
	cells := testCells(Te)
	var buf bytes.Buffer
	assert.Nil(Te, SendCells(cells, &buf))
	assert.Equal(Te, len(cells), strings.Count(buf.String(), "\n"))
	stream := bufio.NewReader(&buf)
	opt := cmpopts.EquateApprox(0, 1e-10)
	for i, want := range cells {
		got, err := DecodeCell(stream)
		require.NoError(Te, err, "cell %d", i)
		assert.Equal(Te, want.Shape(), got.Shape(), "cell %d", i)
		if diff := cmp.Diff(want.Matrix(), got.Matrix(), opt); diff != "" {
			Te.Errorf("cell %d: matrix mismatch (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(want.Angles(), got.Angles(), opt); diff != "" {
			Te.Errorf("cell %d: angles mismatch (-want +got):\n%s", i, diff)
		}
	}
	_, err := DecodeCell(stream)
	assert.Equal(Te, io.EOF, err)
}

func TestCellFields(Te *testing.T) {
	c, err := cell.New(cell.Vector3D{2, 3, 4})
	require.NoError(Te, err)
	var buf bytes.Buffer
	assert.Nil(Te, EncodeCell(&buf, c))
	raw := make(map[string]interface{})
	require.NoError(Te, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(Te, "rectangular", raw["Shape"])
	assert.Equal(Te, []interface{}{2.0, 3.0, 4.0}, raw["Lengths"])
	assert.Equal(Te, []interface{}{90.0, 90.0, 90.0}, raw["Angles"])
}

func TestDecodeErrors(Te *testing.T) {
	for _, line := range []string{
		"not json\n",
		`{"Shape":"hexagonal","Matrix":[[1,0,0],[0,1,0],[0,0,1]]}` + "\n",
	} {
		_, err := DecodeCell(bufio.NewReader(strings.NewReader(line)))
		require.Error(Te, err)
		assert.Equal(Te, cell.FormatFailure, cell.KindOf(err), line)
		jerr, ok := err.(*Error)
		require.True(Te, ok)
		assert.True(Te, jerr.IsError)
		assert.Equal(Te, "DecodeCell", jerr.Function)
		assert.NotEmpty(Te, jerr.Marshal())
	}
	//a rectangular cell can't have a skewed matrix.
	line := `{"Shape":"rectangular","Matrix":[[1,0,0],[0.5,1,0],[0,0,1]]}` + "\n"
	_, err := DecodeCell(bufio.NewReader(strings.NewReader(line)))
	assert.Equal(Te, cell.ConstraintViolation, cell.KindOf(err))

	jerr := EncodeCell(io.Discard, nil)
	require.NotNil(Te, jerr)
	assert.Equal(Te, cell.InvalidArgument, jerr.Kind())
	assert.Equal(Te, "invalid argument", jerr.Category)
}
