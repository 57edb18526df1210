/*
 * dcd.go, part of gocell
 *
 * Copyright 2012 Raul Mera Adasme <rmera_changeforat_chem-dot-helsinki-dot-fi>
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
 */

package dcd

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	cell "github.com/rmera/gocell"
	v3 "github.com/rmera/gocell/v3"
)

const mAXTITLE int32 = 80

//size, in bytes, of the unit cell block of a frame.
const cellBlockSize int32 = 48

//Container for an Charmm/NAMD binary trajectory file.
type DCDObj struct {
	natoms    int32
	frames    int32 //as declared in the header
	readable  bool  //Is it ready to be read?
	filename  string
	unitcell  bool
	fourdim   bool
	fhandle   *os.File
	dcd       *bufio.Reader
	dcdFields [3][]float32
	endian    binary.ByteOrder
}

//New opens the DCD trajectory in filename for reading.
func New(filename string) (*DCDObj, error) {
	traj := &DCDObj{filename: filename}
	if err := traj.initRead(filename); err != nil {
		if traj.fhandle != nil {
			traj.fhandle.Close()
		}
		return nil, errDecorate(err, "New")
	}
	for i := range traj.dcdFields {
		traj.dcdFields[i] = make([]float32, int(traj.natoms))
	}
	return traj, nil
}

//Readable returns true if the object is ready to be read from
//false otherwise. It doesnt guarantee that there is something
//to read.
func (D *DCDObj) Readable() bool {
	return D.readable
}

//Len returns the number of atoms per frame.
func (D *DCDObj) Len() int {
	return int(D.natoms)
}

//Frames returns the number of frames declared in the header of the file.
func (D *DCDObj) Frames() int {
	return int(D.frames)
}

//HasCell returns true if the frames of the trajectory contain a unit cell.
func (D *DCDObj) HasCell() bool {
	return D.unitcell
}

//Close closes the file and marks the object as unreadable.
func (D *DCDObj) Close() {
	if !D.readable {
		return
	}
	D.fhandle.Close()
	D.readable = false
}

func (D *DCDObj) read(data interface{}) error {
	return binary.Read(D.dcd, D.endian, data)
}

//initRead reads the header of the file.
//It support big and little endianness, charmm or (namd>=2.1) and no
//fixed atoms.
func (D *DCDObj) initRead(name string) error {
	wrapbinerr := func(err error) error {
		return &Error{err.Error(), D.filename, []string{"binary.Read", "initRead"}, cell.FormatFailure, true}
	}
	D.endian = binary.LittleEndian
	NB := bytes.NewBuffer //shortness sake
	var err error
	D.fhandle, err = os.Open(name)
	if err != nil {
		return &Error{err.Error(), D.filename, []string{"os.Open", "initRead"}, cell.FileFailure, true}
	}
	D.dcd = bufio.NewReader(D.fhandle)
	var check int32
	if err := D.read(&check); err != nil {
		return wrapbinerr(err)
	}
	//For some reason the first thing we should read is an 84.
	//If this fails it means that the file is big endian.
	if check != 84 {
		D.endian = binary.BigEndian
	}
	//Then the magic number "CORD", also for some unknown reason.
	magic := make([]byte, 4)
	if err := D.read(magic); err != nil {
		return wrapbinerr(err)
	}
	if string(magic) != "CORD" {
		return &Error{"Wrong magic number", D.filename, []string{"initRead"}, cell.FormatFailure, true}
	}
	//The rest of the first block, 20 int32 (one is actually a float32).
	buf := make([]byte, 80)
	if err := D.read(buf); err != nil {
		return wrapbinerr(err)
	}
	field := func(i int, data interface{}) error {
		return binary.Read(NB(buf[4*i:]), D.endian, data)
	}
	//X-plor sets this last int to zero, charmm sets it to its version number.
	if err := field(19, &check); err != nil {
		return wrapbinerr(err)
	}
	if check == 0 {
		return &Error{"X-plor DCD not supported", D.filename, []string{"initRead"}, cell.FormatFailure, true}
	}
	if err := field(0, &D.frames); err != nil {
		return wrapbinerr(err)
	}
	if err := field(10, &check); err != nil {
		return wrapbinerr(err)
	}
	D.unitcell = check != 0
	if err := field(11, &check); err != nil {
		return wrapbinerr(err)
	}
	D.fourdim = check == 1
	var fixed int32
	if err := field(8, &fixed); err != nil {
		return wrapbinerr(err)
	}
	if fixed != 0 {
		return &Error{"Fixed atoms not supported", D.filename, []string{"initRead"}, cell.FormatFailure, true}
	}
	if err := D.read(&check); err != nil {
		return wrapbinerr(err)
	}
	if check != 84 {
		return &Error{"Wrong DCD format", D.filename, []string{"initRead"}, cell.FormatFailure, true}
	}
	//The title block: its size, how many units of mAXTITLE it has, the title, and the size again.
	var titlesize int32
	if err := D.read(&titlesize); err != nil {
		return wrapbinerr(err)
	}
	var ntitle int32
	if err := D.read(&ntitle); err != nil {
		return wrapbinerr(err)
	}
	if ntitle < 0 || 4+ntitle*mAXTITLE != titlesize {
		return &Error{fmt.Sprintf("Inconsistent title block: %d lines in %d bytes", ntitle, titlesize), D.filename, []string{"initRead"}, cell.FormatFailure, true}
	}
	title := make([]byte, mAXTITLE*ntitle)
	if err := D.read(title); err != nil {
		return wrapbinerr(err)
	}
	if err := D.read(&check); err != nil {
		return wrapbinerr(err)
	}
	if check != titlesize {
		return &Error{"Wrong title block", D.filename, []string{"initRead"}, cell.FormatFailure, true}
	}
	//The number of atoms goes between 2 4s.
	if err := D.read(&check); err != nil {
		return wrapbinerr(err)
	}
	if check != 4 {
		return &Error{"Wrong format in DCD", D.filename, []string{"initRead"}, cell.FormatFailure, true}
	}
	if err := D.read(&D.natoms); err != nil {
		return wrapbinerr(err)
	}
	if err := D.read(&check); err != nil {
		return wrapbinerr(err)
	}
	if check != 4 || D.natoms <= 0 {
		return &Error{"DCD has wrong format", D.filename, []string{"initRead"}, cell.FormatFailure, true}
	}
	D.readable = true
	return nil
}

//Next Reads the next frame in a DCDObj. If keep is not nil, the coordinates are put in it, otherwise,
//they are discarded. If box is given and the file contains unit cells, the 9 components of the cell vectors
//are put in the first element of box, otherwise, the box is filled with zeros.
//At the end of the trajectory, it returns an error that implements cell.LastFrameError.
func (D *DCDObj) Next(keep *v3.Matrix, box ...[]float64) error {
	if !D.readable {
		return &Error{TrajUnIni, D.filename, []string{"Next"}, cell.FileFailure, true}
	}
	if keep != nil && keep.NVecs() != int(D.natoms) {
		return &Error{fmt.Sprintf("given matrix for %d atoms, but the frames have %d", keep.NVecs(), D.natoms), D.filename, []string{"Next"}, cell.InvalidArgument, true}
	}
	var ucell [6]float64
	hascell, err := D.nextRaw(&ucell)
	if err != nil {
		return errDecorate(err, "Next")
	}
	if len(box) > 0 && len(box[0]) >= 9 {
		cellBox(box[0], ucell, hascell, D.filename)
	}
	if keep == nil {
		return nil
	}
	for i := 0; i < int(D.natoms); i++ {
		keep.Set(i, 0, float64(D.dcdFields[0][i]))
		keep.Set(i, 1, float64(D.dcdFields[1][i]))
		keep.Set(i, 2, float64(D.dcdFields[2][i]))
	}
	return nil
}

//cellBox puts in box the canonical cell vectors for the DCD unit cell u (a, gamma, b, beta, alpha, c).
func cellBox(box []float64, u [6]float64, hascell bool, filename string) {
	for i := range box[:9] {
		box[i] = 0
	}
	lengths := cell.Vector3D{u[0], u[2], u[5]}
	if !hascell || lengths == (cell.Vector3D{}) {
		return
	}
	angles := cell.Vector3D{u[4], u[3], u[1]}
	cosines := true
	for _, v := range angles {
		if v < -1 || v > 1 {
			cosines = false
		}
	}
	if cosines {
		for i, v := range angles {
			angles[i] = 90
			if v != 0 {
				angles[i] = math.Acos(v) * 180 / math.Pi
			}
		}
	}
	c, err := cell.NewTriclinic(lengths, angles)
	if err != nil {
		//just a heads-up, we don't return an error.
		log.Printf("Invalid unit cell in frame from %s: %s. Box will be set to zero", filename, err.Error())
		return
	}
	copy(box, c.Box())
}

//nextRaw reads the next frame into the dcdFields, and the unit cell, if present, into ucell.
//It returns whether the frame had a unit cell.
func (D *DCDObj) nextRaw(ucell *[6]float64) (bool, error) {
	var blocksize int32
	var hascell bool
	if err := D.read(&blocksize); err != nil {
		if err == io.EOF {
			D.Close()
			return false, newlastFrameError(D.filename, "nextRaw")
		}
		return false, &Error{err.Error(), D.filename, []string{"binary.Read", "nextRaw"}, cell.FormatFailure, true}
	}
	//Even when the header says there is a unit cell, it is not present in all
	//snapshots for some trajectories, so we use the block size to see if
	//there is a unit cell or if the X block starts inmediately
	if D.unitcell && blocksize == cellBlockSize {
		if err := D.read(ucell); err != nil {
			return false, &Error{err.Error(), D.filename, []string{"binary.Read", "nextRaw"}, cell.FormatFailure, true}
		}
		if err := D.checkBlock(blocksize); err != nil {
			return false, errDecorate(err, "nextRaw")
		}
		hascell = true
		if err := D.read(&blocksize); err != nil {
			return false, &Error{err.Error(), D.filename, []string{"binary.Read", "nextRaw"}, cell.FormatFailure, true}
		}
	}
	for i := range D.dcdFields {
		if i > 0 {
			if err := D.read(&blocksize); err != nil {
				return false, &Error{err.Error(), D.filename, []string{"binary.Read", "nextRaw"}, cell.FormatFailure, true}
			}
		}
		if blocksize != 4*D.natoms {
			return false, &Error{fmt.Sprintf("Coordinate block of %d bytes, %d expected", blocksize, 4*D.natoms), D.filename, []string{"nextRaw"}, cell.FormatFailure, true}
		}
		if err := D.read(D.dcdFields[i]); err != nil {
			return false, &Error{err.Error(), D.filename, []string{"binary.Read", "nextRaw"}, cell.FormatFailure, true}
		}
		if err := D.checkBlock(blocksize); err != nil {
			return false, errDecorate(err, "nextRaw")
		}
	}
	//we skip the 4-D values if they exist.
	if D.fourdim {
		if err := D.read(&blocksize); err != nil {
			return false, &Error{err.Error(), D.filename, []string{"binary.Read", "nextRaw"}, cell.FormatFailure, true}
		}
		if _, err := D.dcd.Discard(int(blocksize)); err != nil {
			return false, &Error{err.Error(), D.filename, []string{"Discard", "nextRaw"}, cell.FormatFailure, true}
		}
		if err := D.checkBlock(blocksize); err != nil {
			return false, errDecorate(err, "nextRaw")
		}
	}
	return hascell, nil
}

//checkBlock reads the size at the end of a block and checks that it matches
//the one at the begining.
func (D *DCDObj) checkBlock(blocksize int32) error {
	var check int32
	if err := D.read(&check); err != nil {
		return &Error{err.Error(), D.filename, []string{"binary.Read", "checkBlock"}, cell.FormatFailure, true}
	}
	if check != blocksize {
		return &Error{"Failed security check", D.filename, []string{"checkBlock"}, cell.FormatFailure, true}
	}
	return nil
}

//Errors

//Error is the general structure for DCD trajectory errors. It fullfills cell.Error and cell.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	kind     cell.Kind
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("dcd file %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the failing trajectory was associated
func (err *Error) FileName() string { return err.filename }

//Format returns the format of the file (always "dcd") associated to the error
func (err *Error) Format() string { return "dcd" }

//Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

//Kind returns the kind of failure, as defined in the cell package.
func (err *Error) Kind() cell.Kind { return err.kind }

const (
	TrajUnIni      = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
)

//errDecorate is a helper function that asserts that the error is
//implements cell.Error and decorates the error with the caller's name before returning it.
//if used with a non-cell.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(cell.Error) //I know that is the type returned byt initRead
	err2.Decorate(caller)
	return err2
}

//lastFrameError implements cell.LastFrameError
type lastFrameError struct {
	fileName string
	deco     []string
}

//NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "dcd" }

func (E *lastFrameError) Kind() cell.Kind { return cell.FileFailure }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
