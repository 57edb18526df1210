/*
 * status.go, part of gocell.
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
	"fmt"
	"strings"
	"sync"

	cell "github.com/rmera/gocell"
)

//Status is the result of every call in this package.
type Status int

const (
	Success Status = iota
	MemoryError
	FileError
	FormatError
	SelectionError
	GenericError
	GoError
)

const version = "0.3.0"

var messages = map[Status]string{
	Success:        "operation was successful",
	MemoryError:    "memory allocation error.",
	FileError:      "system error while reading a file",
	FormatError:    "error while parsing a file",
	SelectionError: "error in selection parsing or evaluation",
	GenericError:   "unknown error from goCell library",
	GoError:        "error from the Go runtime",
}

//Strerror returns the message for the status s, or an empty string if s
//is not a valid status.
func Strerror(s Status) string {
	return messages[s]
}

func (s Status) String() string {
	if m, ok := messages[s]; ok {
		return m
	}
	return fmt.Sprintf("unknown status %d", int(s))
}

//Version returns the version of the library.
func Version() string {
	return version
}

var lastError struct {
	sync.Mutex
	message string
}

//LastError returns the message of the last failure, or an empty string.
func LastError() string {
	lastError.Lock()
	defer lastError.Unlock()
	return lastError.message
}

//ClearErrors empties the last error message.
func ClearErrors() Status {
	lastError.Lock()
	lastError.message = ""
	lastError.Unlock()
	return Success
}

func setLastError(msg string) {
	lastError.Lock()
	lastError.message = msg
	lastError.Unlock()
}

func statusOf(err error) Status {
	switch cell.KindOf(err) {
	case cell.AllocationFailure:
		return MemoryError
	case cell.FileFailure:
		return FileError
	case cell.FormatFailure:
		return FormatError
	default:
		return GenericError
	}
}

//fail records err as the last error, logs it and returns the matching status.
func fail(caller string, err error) Status {
	msg := err.Error()
	if e, ok := err.(cell.Error); ok {
		if d := e.Decorate(""); len(d) > 0 {
			msg = fmt.Sprintf("%s (in %s)", msg, strings.Join(d, " <- "))
		}
	}
	msg = caller + ": " + msg
	setLastError(msg)
	logf(LogError, "%s", msg)
	return statusOf(err)
}

//catch is deferred by every entry point, so panics become GoError.
func catch(caller string, st *Status) {
	if r := recover(); r != nil {
		msg := fmt.Sprintf("%s: panic: %v", caller, r)
		setLastError(msg)
		logf(LogError, "%s", msg)
		*st = GoError
	}
}
