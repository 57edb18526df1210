/*
 * cell.go, part of gocell.
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

package capi

import (
	cell "github.com/rmera/gocell"
)

//Shape is the shape of a cell, with the values of cell.Shape.
type Shape int

const (
	CellOrthorhombic Shape = Shape(cell.Rectangular)
	CellTriclinic    Shape = Shape(cell.Triclinic)
	CellInfinite     Shape = Shape(cell.Infinite)
)

//newCellHandle registers c. err is the error from building c, if any.
func newCellHandle(caller string, c *cell.UnitCell, err error) (Handle, Status) {
	if err != nil {
		return NilHandle, fail(caller, err)
	}
	h, err := register(caller, c)
	if err != nil {
		return NilHandle, fail(caller, err)
	}
	logf(LogDebug, "%s: new %s cell %s", caller, c.Shape(), h)
	return h, Success
}

//NewCell creates a cell with the given lengths. Zero lengths give an infinite cell,
//any other, an orthorhombic one.
func NewCell(lengths [3]float64) (h Handle, st Status) {
	defer catch("NewCell", &st)
	if err := allocFail("NewCell"); err != nil {
		return NilHandle, fail("NewCell", err)
	}
	c, err := cell.New(lengths)
	return newCellHandle("NewCell", c, err)
}

//NewTriclinicCell creates a triclinic cell with the given lengths and angles, even if all angles are 90.
func NewTriclinicCell(lengths, angles [3]float64) (h Handle, st Status) {
	defer catch("NewTriclinicCell", &st)
	if err := allocFail("NewTriclinicCell"); err != nil {
		return NilHandle, fail("NewTriclinicCell", err)
	}
	c, err := cell.NewTriclinic(lengths, angles)
	return newCellHandle("NewTriclinicCell", c, err)
}

//CopyCell creates an independent copy of the cell with handle h.
func CopyCell(h Handle) (cp Handle, st Status) {
	defer catch("CopyCell", &st)
	if err := allocFail("CopyCell"); err != nil {
		return NilHandle, fail("CopyCell", err)
	}
	c, err := lookupCell("CopyCell", h)
	if err != nil {
		return NilHandle, fail("CopyCell", err)
	}
	return newCellHandle("CopyCell", c.Copy(), nil)
}

//CellFromFrame creates a copy of the cell of the frame with handle fh.
func CellFromFrame(fh Handle) (h Handle, st Status) {
	defer catch("CellFromFrame", &st)
	if err := allocFail("CellFromFrame"); err != nil {
		return NilHandle, fail("CellFromFrame", err)
	}
	f, err := lookupFrame("CellFromFrame", fh)
	if err != nil {
		return NilHandle, fail("CellFromFrame", err)
	}
	return newCellHandle("CellFromFrame", f.cell.Copy(), nil)
}

//CellLengths puts the lengths of the cell h in lengths.
func CellLengths(h Handle, lengths *[3]float64) (st Status) {
	defer catch("CellLengths", &st)
	c, err := lookupCell("CellLengths", h)
	if err != nil {
		return fail("CellLengths", err)
	}
	*lengths = c.Lengths()
	return Success
}

//CellAngles puts the angles of the cell h, in degrees, in angles.
func CellAngles(h Handle, angles *[3]float64) (st Status) {
	defer catch("CellAngles", &st)
	c, err := lookupCell("CellAngles", h)
	if err != nil {
		return fail("CellAngles", err)
	}
	*angles = c.Angles()
	return Success
}

//CellVolume puts the volume of the cell h in volume.
func CellVolume(h Handle, volume *float64) (st Status) {
	defer catch("CellVolume", &st)
	c, err := lookupCell("CellVolume", h)
	if err != nil {
		return fail("CellVolume", err)
	}
	*volume = c.Volume()
	return Success
}

//CellMatrix puts the matrix of the cell h, one cell vector per row, in m.
func CellMatrix(h Handle, m *[3][3]float64) (st Status) {
	defer catch("CellMatrix", &st)
	c, err := lookupCell("CellMatrix", h)
	if err != nil {
		return fail("CellMatrix", err)
	}
	for i, v := range c.Matrix() {
		m[i] = v
	}
	return Success
}

//CellShape puts the shape of the cell h in shape.
func CellShape(h Handle, shape *Shape) (st Status) {
	defer catch("CellShape", &st)
	c, err := lookupCell("CellShape", h)
	if err != nil {
		return fail("CellShape", err)
	}
	*shape = Shape(c.Shape())
	return Success
}

//CellSetLengths sets the lengths of the cell h, keeping its angles.
func CellSetLengths(h Handle, lengths [3]float64) (st Status) {
	defer catch("CellSetLengths", &st)
	c, err := lookupCell("CellSetLengths", h)
	if err == nil {
		err = c.SetLengths(lengths)
	}
	if err != nil {
		return fail("CellSetLengths", err)
	}
	return Success
}

//CellSetAngles sets the angles of the cell h, which must be triclinic.
func CellSetAngles(h Handle, angles [3]float64) (st Status) {
	defer catch("CellSetAngles", &st)
	c, err := lookupCell("CellSetAngles", h)
	if err == nil {
		err = c.SetAngles(angles)
	}
	if err != nil {
		return fail("CellSetAngles", err)
	}
	return Success
}

//CellSetShape changes the shape of the cell h.
func CellSetShape(h Handle, shape Shape) (st Status) {
	defer catch("CellSetShape", &st)
	c, err := lookupCell("CellSetShape", h)
	if err == nil {
		err = c.SetShape(cell.Shape(shape))
	}
	if err != nil {
		return fail("CellSetShape", err)
	}
	return Success
}

//CellWrap wraps v, in place, into the cell h.
func CellWrap(h Handle, v *[3]float64) (st Status) {
	defer catch("CellWrap", &st)
	c, err := lookupCell("CellWrap", h)
	if err != nil {
		return fail("CellWrap", err)
	}
	w, err := c.Wrap(*v)
	if err != nil {
		return fail("CellWrap", err)
	}
	*v = w
	return Success
}
