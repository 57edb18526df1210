/*
 * json.go, part of gocell.
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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	cell "github.com/rmera/gocell"
)

//A ready-to-serialize container for a unit cell.
type Cell struct {
	Shape   string
	Lengths [3]float64
	Angles  [3]float64
	Matrix  [3][3]float64
}

//NewCell returns a ready-to-serialize copy of C.
func NewCell(C *cell.UnitCell) *Cell {
	m := C.Matrix()
	J := &Cell{Shape: C.Shape().String(), Lengths: C.Lengths(), Angles: C.Angles()}
	for i, v := range m {
		J.Matrix[i] = v
	}
	return J
}

func parseShape(s string) (cell.Shape, error) {
	for _, sh := range []cell.Shape{cell.Rectangular, cell.Triclinic, cell.Infinite} {
		if strings.EqualFold(s, sh.String()) {
			return sh, nil
		}
	}
	return cell.Infinite, cell.NewError(cell.FormatFailure, "parseShape", "unknown cell shape %q", s)
}

//UnitCell builds a goCell UnitCell from J. The cell is built from the stored matrix
//and then given the stored shape, so every constraint of the shape is checked again.
func (J *Cell) UnitCell() (*cell.UnitCell, error) {
	shape, err := parseShape(J.Shape)
	if err != nil {
		return nil, err
	}
	var m cell.Matrix3D
	for i, v := range J.Matrix {
		m[i] = v
	}
	C, err := cell.FromMatrix(m)
	if err != nil {
		return nil, err
	}
	if err = C.SetShape(shape); err != nil {
		return nil, err
	}
	return C, nil
}

//An easily JSON-serializable error type,
type Error struct {
	deco     []string
	kind     cell.Kind
	IsError  bool   //If this is false (no error) all the other fields will be at their zero-values.
	Category string //The kind of failure, as a string.
	Function string //which go function gave the error
	Message  string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Kind returns the kind of the failure that originated the error.
func (J *Error) Kind() cell.Kind {
	return J.kind
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - ")) // Yo, dawg, I heard you like errors, so I got an error while serializing your error so you can... you know the drill.
	}
	return ret
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	jerr.kind = cell.KindOf(err)
	jerr.Category = jerr.kind.String()
	jerr.Function = function
	jerr.Message = err.Error()
	jerr.deco = []string{function}
	return jerr
}

//EncodeCell Marshals C and writes it, in one line, to out.
func EncodeCell(out io.Writer, C *cell.UnitCell) *Error {
	if C == nil {
		return NewError("EncodeCell", cell.NewError(cell.InvalidArgument, "EncodeCell", "nil cell"))
	}
	enc := json.NewEncoder(out)
	if err := enc.Encode(NewCell(C)); err != nil {
		return NewError("EncodeCell", err)
	}
	return nil
}

//SendCells encodes each of the given cells and writes them, one per line, to out.
func SendCells(cells []*cell.UnitCell, out io.Writer) *Error {
	for i, C := range cells {
		if err := EncodeCell(out, C); err != nil {
			err.Message = fmt.Sprintf("cell %d: %s", i, err.Message)
			err.Decorate("SendCells")
			return err
		}
	}
	return nil
}

//DecodeCell reads one line from stream and decodes it into a unit cell. It returns
//io.EOF, unwrapped, when there is nothing else to read.
func DecodeCell(stream *bufio.Reader) (*cell.UnitCell, error) {
	const funcname = "DecodeCell" //for the error
	line, err := stream.ReadBytes('\n')
	if err != nil && !(err == io.EOF && len(line) > 0) {
		if err == io.EOF {
			return nil, err
		}
		return nil, NewError(funcname, cell.NewError(cell.FileFailure, funcname, "%s", err.Error()))
	}
	J := new(Cell)
	if err = json.Unmarshal(line, J); err != nil {
		return nil, NewError(funcname, cell.NewError(cell.FormatFailure, funcname, "%s", err.Error()))
	}
	C, err := J.UnitCell()
	if err != nil {
		return nil, NewError(funcname, err)
	}
	return C, nil
}
