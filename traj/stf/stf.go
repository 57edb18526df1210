/*
 * stf.go, part of gocell.
 *
 * Copyright 2021 Raul Mera <rauldotmeraatusachdotcl>
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

package stf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	cell "github.com/rmera/gocell"
	v3 "github.com/rmera/gocell/v3"
)

const defaultPrec = 2

//zstd level used when none is given. 11 keeps compatibility with the python implementation.
const defaultLevel = 11

//Write!

//StfW is a STF trajectory open for writing.
type StfW struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	prec      int
}

//NewWriter creates the file name and returns a handle to write STF frames with natoms atoms
//to it. The key=value pairs in header are written to the header of the file. The "prec" key,
//if present, sets the precision of the file. compressionLevel is the zstd level to be used
//(1-22, only the first value given is considered).
func NewWriter(name string, natoms int, header map[string]string, compressionLevel ...int) (*StfW, error) {
	if natoms <= 0 {
		return nil, &Error{fmt.Sprintf("can't write frames with %d atoms", natoms), name, []string{"NewWriter"}, cell.InvalidArgument, true}
	}
	level := defaultLevel
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	S := &StfW{natoms: natoms, filename: name, prec: defaultPrec}
	if p, ok := header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			S.prec = prec
		} else {
			log.Printf("Invalid precision %q for trajectory %s. Will use the default", p, name)
		}
	}
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, &Error{err.Error(), name, []string{"NewWriter"}, cell.FileFailure, true}
	}
	if strings.HasSuffix(strings.ToLower(name), "z") {
		S.h, err = gzip.NewWriterLevel(S.f, gzip.BestCompression)
	} else {
		S.h, err = zstd.NewWriter(S.f, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	}
	if err != nil {
		S.f.Close()
		return nil, &Error{"Can't create compressor " + err.Error(), name, []string{"NewWriter"}, cell.FileFailure, true}
	}
	keys := make([]string, 0, len(header))
	for k := range header {
		if k != "prec" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	headerstr := fmt.Sprintf("prec=%d\n", S.prec)
	for _, k := range keys {
		headerstr += fmt.Sprintf("%s=%s\n", k, header[k])
	}
	headerstr += fmt.Sprintf("** %d\n", S.natoms)
	if _, err = io.WriteString(S.h, headerstr); err != nil {
		S.h.Close()
		S.f.Close()
		return nil, &Error{"Can't write header " + err.Error(), name, []string{"NewWriter"}, cell.FileFailure, true}
	}
	S.writeable = true
	return S, nil
}

//Len returns the number of atoms per frame.
func (S *StfW) Len() int {
	return S.natoms
}

//Close flushes and closes the file. The handle can't be used after this call.
func (S *StfW) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.h.Close()
	if err2 := S.f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return &Error{err.Error(), S.filename, []string{"Close"}, cell.FileFailure, true}
	}
	return nil
}

//WNext writes a frame with the coordinates in coord. If given, the first 9 elements of box,
//the box vectors, are also written.
func (S *StfW) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !S.writeable {
		return &Error{TrajUnIniWrite, S.filename, []string{"WNext"}, cell.FileFailure, true}
	}
	if coord == nil {
		return &Error{NilCoordinates, S.filename, []string{"WNext"}, cell.InvalidArgument, true}
	}
	v := coord.NVecs()
	if v != S.natoms {
		return &Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, cell.InvalidArgument, true}
	}
	var b strings.Builder
	for i := 0; i < v; i++ {
		b.WriteString(coordsEncode(coord.Vec(i), S.prec))
	}
	b.WriteString("*")
	if len(box) > 0 && len(box[0]) >= 9 {
		for _, f := range box[0][:9] {
			b.WriteString(" ")
			b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}
	}
	b.WriteString("\n")
	if _, err := io.WriteString(S.h, b.String()); err != nil {
		return &Error{err.Error(), S.filename, []string{"WNext"}, cell.FileFailure, true}
	}
	return nil
}

func coordsEncode(f [3]float64, prec int) string {
	p := math.Pow(10.0, float64(prec))
	var temp [3]int
	for i, v := range f {
		temp[i] = int(math.RoundToEven(v * p))
	}
	return fmt.Sprintf("%d %d %d\n", temp[0], temp[1], temp[2])
}

//Read!

//StfR is a STF trajectory open for reading. It implements cell.Traj.
type StfR struct {
	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	readable bool
}

//New opens a STF trajectory for reading, and returns a pointer
//to the handle, a map with the metadata in the header,
//and error or nil.
func New(name string) (*StfR, map[string]string, error) {
	S := &StfR{natoms: -1, filename: name, prec: defaultPrec}
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, nil, &Error{err.Error(), name, []string{"New"}, cell.FileFailure, true}
	}
	intermediate := bufio.NewReader(S.f)
	if strings.HasSuffix(strings.ToLower(name), "z") {
		S.dec, err = gzip.NewReader(intermediate)
	} else {
		var d *zstd.Decoder
		d, err = zstd.NewReader(intermediate)
		if err == nil {
			S.dec = d.IOReadCloser()
		}
	}
	if err != nil {
		S.f.Close()
		return nil, nil, &Error{"Can't read header " + err.Error(), name, []string{"New"}, cell.FormatFailure, true}
	}
	S.h = bufio.NewReader(S.dec)
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			S.close()
			return nil, nil, &Error{"Can't read header " + err.Error(), name, []string{"New"}, cell.FormatFailure, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				S.close()
				return nil, nil, &Error{fmt.Sprintf("Can't read atom number from '%s'", str), name, []string{"New"}, cell.FormatFailure, true}
			}
			S.natoms, err = strconv.Atoi(nat[1])
			if err != nil || S.natoms <= 0 {
				S.close()
				return nil, nil, &Error{fmt.Sprintf("Can't read atom number from '%s'", nat[1]), name, []string{"New"}, cell.FormatFailure, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			S.close()
			return nil, nil, &Error{"Malformed header line: " + str, name, []string{"New"}, cell.FormatFailure, true}
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			S.prec = prec
		} else {
			log.Printf("Invalid precision for trajectory %s. Will assume the default", name)
		}
	}
	S.readable = true
	return S, m, nil
}

//Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *StfR) Readable() bool {
	return S.readable
}

//Len returns the number of atoms in each frame of the trajectory.
func (S *StfR) Len() int {
	return S.natoms
}

func coordsDecode(str string, temp *[3]float64, prec int) error {
	p := math.Pow(10.0, float64(prec))
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("Ill formated coordinates line in stf: %d fields: %s", len(s), str)
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("Can't parse coordinate %d (%s). Error: %s", i, v, err.Error())
		}
		temp[i] = float64(f) / p
	}
	return nil
}

//Next puts in the given matrix (c) the coordinates for the next frame of the trajectory
//and, if given, puts the box vectors in box. A frame without box information gives a box of zeros.
//If c is nil, the frame is read and checked, but not saved.
//At the end of the trajectory, it returns an error that implements cell.LastFrameError.
func (S *StfR) Next(c *v3.Matrix, box ...[]float64) error {
	if !S.readable {
		return &Error{TrajUnIniRead, S.filename, []string{"Next"}, cell.FileFailure, true}
	}
	if c != nil && c.NVecs() != S.natoms {
		return &Error{fmt.Sprintf("given matrix for %d atoms, but the frames have %d", c.NVecs(), S.natoms), S.filename, []string{"Next"}, cell.InvalidArgument, true}
	}
	var temp [3]float64
	for i := 0; i < S.natoms; i++ {
		str, err := S.h.ReadString('\n')
		if err != nil {
			//EOF should only happen when reading the first atom
			if err == io.EOF && i == 0 && str == "" {
				S.Close()
				return newlastFrameError(S.filename, "Next")
			}
			return &Error{ReadError + ": " + err.Error(), S.filename, []string{"Next"}, cell.FormatFailure, true}
		}
		if err = coordsDecode(strings.TrimSuffix(str, "\n"), &temp, S.prec); err != nil {
			return &Error{err.Error(), S.filename, []string{"Next"}, cell.FormatFailure, true}
		}
		if c == nil {
			continue //We ignore this frame, but we still check it for correctness.
		}
		c.SetVec(i, temp)
	}
	s, err := S.h.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		return &Error{"Can't read the frame termination mark " + err.Error(), S.filename, []string{"Next"}, cell.FormatFailure, true}
	}
	if len(s) == 0 || s[0] != '*' || strings.HasPrefix(s, "**") {
		return &Error{WrongFormat + ": wrong number of atoms in frame", S.filename, []string{"Next"}, cell.FormatFailure, true}
	}
	if len(box) == 0 || len(box[0]) < 9 {
		return nil
	}
	b := box[0]
	for i := range b[:9] {
		b[i] = 0
	}
	fields := strings.Fields(s)
	if len(fields) == 1 {
		return nil //no box in this frame.
	}
	if len(fields) != 10 {
		log.Printf("Trajectory file %s does not contain correct box information: %s", S.filename, fields) //just a heads-up
		return nil
	}
	for j, v := range fields[1:] {
		b[j], err = strconv.ParseFloat(v, 64)
		if err != nil {
			//If we got an error reading any of the values, we just set the whole thing to zero
			//and log, no error returned.
			log.Printf("Failed to read box in a frame from %s", S.filename)
			for i := range b[:9] {
				b[i] = 0
			}
			break
		}
	}
	return nil
}

func (S *StfR) close() {
	S.dec.Close()
	S.f.Close()
}

//Close closes the object, and marks it as unreadable
func (S *StfR) Close() {
	if !S.readable {
		return
	}
	S.close()
	S.readable = false
}

//Errors

//Error is the general structure for STF trajectory errors. It fullfills cell.Error and cell.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	kind     cell.Kind
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("stf file %s error: %s", err.filename, err.message)
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

//Format returns the format of the file (always "stf") associated to the error
func (err *Error) Format() string { return "stf" }

//Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

//Kind returns the kind of failure, as defined in the cell package.
func (err *Error) Kind() cell.Kind { return err.kind }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the STF file or frame"
)

//lastFrameError implements cell.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "stf" }

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
