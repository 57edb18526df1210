/*
 * dcd_write.go, part of gocell
 *
 * Copyright 2021 Raul Mera Adasme <rmera_changeforat_chem-dot-helsinki-dot-fi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 *
 */

package dcd

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	cell "github.com/rmera/gocell"
	v3 "github.com/rmera/gocell/v3"
)

//Container for an Charmm/NAMD binary trajectory file.
//opened for writing
type DCDWObj struct {
	natoms    int32
	writable  bool //Is it ready to be written on
	filename  string
	frames    int32
	cosines   bool //write the cell angles as cosines, CHARMM-style.
	fhandle   *os.File
	dcd       *bufio.Writer
	dcdFields [3][]float32
	endian    binary.ByteOrder
}

//NewWriter initializes a DCD trajectory for writing frames with natoms atoms. The frames
//always include a unit cell.
func NewWriter(filename string, natoms int) (*DCDWObj, error) {
	traj := &DCDWObj{natoms: int32(natoms), filename: filename}
	if err := traj.initWrite(filename); err != nil {
		return nil, errDecorate(err, "NewWriter")
	}
	for i := range traj.dcdFields {
		traj.dcdFields[i] = make([]float32, natoms)
	}
	return traj, nil
}

func (D *DCDWObj) write(data interface{}) error {
	if err := binary.Write(D.dcd, D.endian, data); err != nil {
		return &Error{err.Error(), D.filename, []string{"binary.Write"}, cell.FileFailure, true}
	}
	return nil
}

//writes all the given values, stopping at the first error.
func (D *DCDWObj) writeAll(data ...interface{}) error {
	for _, v := range data {
		if err := D.write(v); err != nil {
			return err
		}
	}
	return nil
}

//Len returns the number of atoms per frame.
func (D *DCDWObj) Len() int {
	return int(D.natoms)
}

//Close writes the number of frames in the header, and closes the file.
func (D *DCDWObj) Close() error {
	if !D.writable {
		return nil
	}
	D.writable = false
	err := D.updateFrames()
	if err2 := D.fhandle.Close(); err == nil && err2 != nil {
		err = &Error{err2.Error(), D.filename, []string{"Close"}, cell.FileFailure, true}
	}
	return err
}

//initWrite creates the file and writes the header
func (D *DCDWObj) initWrite(name string) error {
	if D.natoms <= 0 {
		return &Error{fmt.Sprintf("Can't write frames with %d atoms", D.natoms), D.filename, []string{"initWrite"}, cell.InvalidArgument, true}
	}
	D.endian = binary.LittleEndian
	var err error
	D.fhandle, err = os.Create(name)
	if err != nil {
		return &Error{err.Error(), D.filename, []string{"os.Create", "initWrite"}, cell.FileFailure, true}
	}
	D.dcd = bufio.NewWriter(D.fhandle)
	var icntrl [20]int32
	//0 is the number of frames, updated when the file is closed.
	icntrl[2] = 1 //step interval (nsavc)
	//delta time, a float32.
	icntrl[9] = int32(math.Float32bits(1))
	icntrl[10] = 1 //there is a unit cell
	//charmm version, let's say, 24
	icntrl[19] = 24
	title := make([]byte, 2*mAXTITLE)
	copy(title, fmt.Sprintf("%-79s", "Created by goCell"))
	copy(title[mAXTITLE:], fmt.Sprintf("%-79s", fmt.Sprintf("%d atoms per frame", D.natoms)))
	titlesize := 4 + 2*mAXTITLE
	err = D.writeAll(int32(84), []byte("CORD"), icntrl, int32(84),
		titlesize, int32(2), title, titlesize,
		int32(4), D.natoms, int32(4))
	if err != nil {
		D.fhandle.Close()
		return errDecorate(err, "initWrite")
	}
	D.writable = true
	return nil
}

//WNext writes the next frame to the trajectory. If a box is given,
//the unit cell it defines is written with the frame. Otherwise, a zero cell is written.
func (D *DCDWObj) WNext(towrite *v3.Matrix, box ...[]float64) error {
	if !D.writable {
		return &Error{TrajUnIniWrite, D.filename, []string{"WNext"}, cell.FileFailure, true}
	}
	if towrite == nil {
		return &Error{"got nil coordinates", D.filename, []string{"WNext"}, cell.InvalidArgument, true}
	}
	if int32(towrite.NVecs()) != D.natoms {
		return &Error{"Coordinates don't match the trajectory size", D.filename, []string{"WNext"}, cell.InvalidArgument, true}
	}
	ucell := [6]float64{0, 90, 0, 90, 90, 0}
	if len(box) > 0 && box[0] != nil {
		c, err := cell.FromBox(box[0])
		if err != nil {
			return &Error{err.Error(), D.filename, []string{"WNext"}, cell.KindOf(err), true}
		}
		l := c.Lengths()
		a := c.Angles()
		ucell = [6]float64{l[0], a[2], l[1], a[1], a[0], l[2]}
	}
	if D.cosines {
		for _, i := range []int{1, 3, 4} {
			ucell[i] = math.Cos(ucell[i] * math.Pi / 180)
			if math.Abs(ucell[i]) < 1e-15 {
				ucell[i] = 0
			}
		}
	}
	for i := 0; i < int(D.natoms); i++ {
		D.dcdFields[0][i] = float32(towrite.At(i, 0))
		D.dcdFields[1][i] = float32(towrite.At(i, 1))
		D.dcdFields[2][i] = float32(towrite.At(i, 2))
	}
	if err := D.writeAll(cellBlockSize, ucell, cellBlockSize); err != nil {
		return errDecorate(err, "WNext")
	}
	blocksize := 4 * D.natoms
	for _, f := range D.dcdFields {
		if err := D.writeAll(blocksize, f, blocksize); err != nil {
			return errDecorate(err, "WNext")
		}
	}
	D.frames++
	return nil
}

//DCD is silly enough to require the number of frames at the begining.
func (D *DCDWObj) updateFrames() error {
	if err := D.dcd.Flush(); err != nil {
		return &Error{err.Error(), D.filename, []string{"Flush", "updateFrames"}, cell.FileFailure, true}
	}
	//after the initial 84 and the magic number.
	if _, err := D.fhandle.Seek(8, io.SeekStart); err != nil {
		return &Error{err.Error(), D.filename, []string{"Seek", "updateFrames"}, cell.FileFailure, true}
	}
	if err := binary.Write(D.fhandle, D.endian, D.frames); err != nil {
		return &Error{err.Error(), D.filename, []string{"binary.Write", "updateFrames"}, cell.FileFailure, true}
	}
	return nil
}
