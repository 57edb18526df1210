/*
 * errors.go, part of gocell.
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
	"errors"
	"fmt"
)

//Kind classifies the failures of this module. Every package in goCell
//reports one of these kinds, so callers (the capi package, for instance)
//can map them to status codes without knowing the concrete error types.
type Kind int

const (
	GenericFailure Kind = iota
	InvalidArgument
	ConstraintViolation
	AllocationFailure
	FileFailure
	FormatFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case ConstraintViolation:
		return "constraint violation"
	case AllocationFailure:
		return "allocation failure"
	case FileFailure:
		return "file failure"
	case FormatFailure:
		return "format failure"
	default:
		return "generic failure"
	}
}

//CellError is the error returned by the functions and methods of this package.
//It satisfies the Error interface.
type CellError struct {
	message string
	kind    Kind
	deco    []string
}

//NewError returns a *CellError of the given kind, decorated with the name of the caller.
func NewError(kind Kind, caller string, format string, args ...interface{}) *CellError {
	err := &CellError{message: fmt.Sprintf(format, args...), kind: kind}
	err.Decorate(caller)
	return err
}

//Error returns the error message.
func (err *CellError) Error() string {
	return err.message
}

//Kind returns the kind of failure.
func (err *CellError) Kind() Kind { return err.kind }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice. An empty dec just returns the current slice.
func (err *CellError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

type kinder interface {
	Kind() Kind
}

//KindOf returns the kind of err. Errors that don't carry a kind
//(i.e. that don't come from goCell) are GenericFailure.
func KindOf(err error) Kind {
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return GenericFailure
}

//IsKind returns true if err is not nil and has the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

//errDecorate adds the caller to err, if err implements Error, and returns it.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}
