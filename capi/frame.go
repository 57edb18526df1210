/*
 * frame.go, part of gocell.
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
	"path/filepath"
	"strings"

	cell "github.com/rmera/gocell"
	"github.com/rmera/gocell/traj/dcd"
	"github.com/rmera/gocell/traj/stf"
	v3 "github.com/rmera/gocell/v3"
)

//frame is a set of positions and the cell they live in.
type frame struct {
	positions *v3.Matrix //nil for a frame without atoms.
	cell      *cell.UnitCell
}

func newFrame(natoms int) *frame {
	c, _ := cell.New(cell.Vector3D{}) //can't fail
	f := &frame{cell: c}
	if natoms > 0 {
		f.positions = v3.Zeros(natoms)
	}
	return f
}

func (f *frame) natoms() int {
	if f.positions == nil {
		return 0
	}
	return f.positions.NVecs()
}

//NewFrame creates a frame with natoms atoms, all at the origin, and an infinite cell.
func NewFrame(natoms int) (h Handle, st Status) {
	defer catch("NewFrame", &st)
	if natoms < 0 {
		return NilHandle, fail("NewFrame", cell.NewError(cell.InvalidArgument, "NewFrame", "negative number of atoms: %d", natoms))
	}
	h, err := register("NewFrame", newFrame(natoms))
	if err != nil {
		return NilHandle, fail("NewFrame", err)
	}
	return h, Success
}

//FrameAtoms puts the number of atoms in the frame fh in natoms.
func FrameAtoms(fh Handle, natoms *int) (st Status) {
	defer catch("FrameAtoms", &st)
	f, err := lookupFrame("FrameAtoms", fh)
	if err != nil {
		return fail("FrameAtoms", err)
	}
	*natoms = f.natoms()
	return Success
}

//FrameSetCell sets the cell of the frame fh to a copy of the cell ch.
func FrameSetCell(fh, ch Handle) (st Status) {
	defer catch("FrameSetCell", &st)
	f, err := lookupFrame("FrameSetCell", fh)
	if err != nil {
		return fail("FrameSetCell", err)
	}
	c, err := lookupCell("FrameSetCell", ch)
	if err != nil {
		return fail("FrameSetCell", err)
	}
	f.cell = c.Copy()
	return Success
}

//FramePositions returns a copy of the positions in the frame fh.
func FramePositions(fh Handle) (pos [][3]float64, st Status) {
	defer catch("FramePositions", &st)
	f, err := lookupFrame("FramePositions", fh)
	if err != nil {
		return nil, fail("FramePositions", err)
	}
	if err = allocFail("FramePositions"); err != nil {
		return nil, fail("FramePositions", err)
	}
	pos = make([][3]float64, f.natoms())
	for i := range pos {
		pos[i] = f.positions.Vec(i)
	}
	return pos, Success
}

//FrameSetPositions replaces the positions of the frame fh with pos. The number of
//atoms in the frame becomes len(pos).
func FrameSetPositions(fh Handle, pos [][3]float64) (st Status) {
	defer catch("FrameSetPositions", &st)
	f, err := lookupFrame("FrameSetPositions", fh)
	if err != nil {
		return fail("FrameSetPositions", err)
	}
	if err = allocFail("FrameSetPositions"); err != nil {
		return fail("FrameSetPositions", err)
	}
	if len(pos) == 0 {
		f.positions = nil
		return Success
	}
	m := v3.Zeros(len(pos))
	for i, v := range pos {
		m.SetVec(i, v)
	}
	f.positions = m
	return Success
}

//FrameWrap wraps all the positions of the frame fh into its cell. Nothing is done for
//infinite cells. The frame is not modified if the call fails.
func FrameWrap(fh Handle) (st Status) {
	defer catch("FrameWrap", &st)
	f, err := lookupFrame("FrameWrap", fh)
	if err != nil {
		return fail("FrameWrap", err)
	}
	if f.positions == nil {
		return Success
	}
	if err = f.cell.WrapCoords(f.positions); err != nil {
		return fail("FrameWrap", err)
	}
	return Success
}

type trajReader interface {
	cell.Traj
	Close()
}

type trajWriter interface {
	WNext(coords *v3.Matrix, box ...[]float64) error
	Close() error
}

//trajectory is a trajectory file open for reading or for writing.
type trajectory struct {
	path string
	r    trajReader
	w    trajWriter
}

func isDCD(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".dcd"
}

func (t *trajectory) Close() {
	if t.r != nil {
		t.r.Close()
	}
	if t.w != nil {
		if err := t.w.Close(); err != nil {
			logf(LogWarning, "closing trajectory %s: %s", t.path, err.Error())
		}
	}
}

func lookupTrajectory(caller string, h Handle) (*trajectory, error) {
	obj, ok := lookup(h)
	if !ok {
		return nil, cell.NewError(cell.InvalidArgument, caller, "no object with handle %s", h)
	}
	t, ok := obj.(*trajectory)
	if !ok {
		return nil, cell.NewError(cell.InvalidArgument, caller, "handle %s is not a trajectory", h)
	}
	return t, nil
}

func newTrajHandle(caller string, t *trajectory) (Handle, Status) {
	h, err := register(caller, t)
	if err != nil {
		t.Close()
		return NilHandle, fail(caller, err)
	}
	logf(LogInfo, "%s: opened %s", caller, t.path)
	return h, Success
}

//OpenTrajectory opens the trajectory in path for reading. Files with
//the .dcd extension are read as DCD, any other, as STF.
func OpenTrajectory(path string) (h Handle, st Status) {
	defer catch("OpenTrajectory", &st)
	if isDCD(path) {
		r, err := dcd.New(path)
		if err != nil {
			return NilHandle, fail("OpenTrajectory", err)
		}
		if !r.HasCell() {
			logf(LogWarning, "OpenTrajectory: %s has no unit cells, all frames will have infinite cells", path)
		}
		return newTrajHandle("OpenTrajectory", &trajectory{path: path, r: r})
	}
	r, header, err := stf.New(path)
	if err != nil {
		return NilHandle, fail("OpenTrajectory", err)
	}
	for k, v := range header {
		logf(LogDebug, "OpenTrajectory: %s: %s=%s", path, k, v)
	}
	return newTrajHandle("OpenTrajectory", &trajectory{path: path, r: r})
}

//CreateTrajectory creates the trajectory path, for frames with natoms atoms. Files with
//the .dcd extension are written as DCD, any other, as STF.
func CreateTrajectory(path string, natoms int) (h Handle, st Status) {
	defer catch("CreateTrajectory", &st)
	var w trajWriter
	var err error
	if isDCD(path) {
		w, err = dcd.NewWriter(path, natoms)
	} else {
		w, err = stf.NewWriter(path, natoms, nil)
	}
	if err != nil {
		return NilHandle, fail("CreateTrajectory", err)
	}
	return newTrajHandle("CreateTrajectory", &trajectory{path: path, w: w})
}

//TrajectoryRead reads the next frame, with its cell, from the trajectory th. At the end
//of the trajectory, it returns FileError.
func TrajectoryRead(th Handle) (fh Handle, st Status) {
	defer catch("TrajectoryRead", &st)
	t, err := lookupTrajectory("TrajectoryRead", th)
	if err == nil && t.r == nil {
		err = cell.NewError(cell.InvalidArgument, "TrajectoryRead", "trajectory %s is not open for reading", t.path)
	}
	if err != nil {
		return NilHandle, fail("TrajectoryRead", err)
	}
	f := &frame{positions: v3.Zeros(t.r.Len())}
	f.cell, err = cell.FromTraj(t.r, f.positions)
	if err != nil {
		return NilHandle, fail("TrajectoryRead", err)
	}
	fh, err = register("TrajectoryRead", f)
	if err != nil {
		return NilHandle, fail("TrajectoryRead", err)
	}
	return fh, Success
}

//TrajectoryWrite writes the frame fh, with its cell, to the trajectory th.
func TrajectoryWrite(th, fh Handle) (st Status) {
	defer catch("TrajectoryWrite", &st)
	t, err := lookupTrajectory("TrajectoryWrite", th)
	if err == nil && t.w == nil {
		err = cell.NewError(cell.InvalidArgument, "TrajectoryWrite", "trajectory %s is not open for writing", t.path)
	}
	if err != nil {
		return fail("TrajectoryWrite", err)
	}
	f, err := lookupFrame("TrajectoryWrite", fh)
	if err != nil {
		return fail("TrajectoryWrite", err)
	}
	if f.positions == nil {
		return fail("TrajectoryWrite", cell.NewError(cell.InvalidArgument, "TrajectoryWrite", "can't write a frame without atoms"))
	}
	if err = t.w.WNext(f.positions, f.cell.Box()); err != nil {
		return fail("TrajectoryWrite", err)
	}
	return Success
}
