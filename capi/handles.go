/*
 * handles.go, part of gocell.
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
	"sync"

	"github.com/google/uuid"
	cell "github.com/rmera/gocell"
)

//Handle identifies an object created by this package.
//The zero Handle (NilHandle) never refers to an object.
type Handle uuid.UUID

//NilHandle is returned by the constructors when they fail.
var NilHandle Handle

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

var registry = struct {
	sync.Mutex
	objects  map[Handle]interface{}
	failNext bool
}{objects: make(map[Handle]interface{})}

//FailNextAllocation makes the next object allocation fail with MemoryError.
//It is meant for testing the error paths of programs using this package.
func FailNextAllocation() {
	registry.Lock()
	registry.failNext = true
	registry.Unlock()
}

//register stores obj and returns its new handle.
func register(caller string, obj interface{}) (Handle, error) {
	registry.Lock()
	defer registry.Unlock()
	if registry.failNext {
		registry.failNext = false
		return NilHandle, cell.NewError(cell.AllocationFailure, caller, "could not allocate a new object")
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return NilHandle, cell.NewError(cell.AllocationFailure, caller, "could not create a handle: %s", err.Error())
	}
	h := Handle(id)
	registry.objects[h] = obj
	return h, nil
}

//allocFail returns an AllocationFailure error if an allocation failure was requested,
//clearing the request. For operations that allocate, but don't register an object.
func allocFail(caller string) error {
	registry.Lock()
	defer registry.Unlock()
	if registry.failNext {
		registry.failNext = false
		return cell.NewError(cell.AllocationFailure, caller, "could not allocate memory")
	}
	return nil
}

func lookup(h Handle) (interface{}, bool) {
	registry.Lock()
	defer registry.Unlock()
	obj, ok := registry.objects[h]
	return obj, ok
}

func lookupCell(caller string, h Handle) (*cell.UnitCell, error) {
	obj, ok := lookup(h)
	if !ok {
		return nil, cell.NewError(cell.InvalidArgument, caller, "no object with handle %s", h)
	}
	c, ok := obj.(*cell.UnitCell)
	if !ok {
		return nil, cell.NewError(cell.InvalidArgument, caller, "handle %s is not a cell", h)
	}
	return c, nil
}

func lookupFrame(caller string, h Handle) (*frame, error) {
	obj, ok := lookup(h)
	if !ok {
		return nil, cell.NewError(cell.InvalidArgument, caller, "no object with handle %s", h)
	}
	f, ok := obj.(*frame)
	if !ok {
		return nil, cell.NewError(cell.InvalidArgument, caller, "handle %s is not a frame", h)
	}
	return f, nil
}

type closer interface {
	Close()
}

//Free releases the object with handle h. Trajectories are closed.
//Freeing NilHandle does nothing.
func Free(h Handle) (st Status) {
	defer catch("Free", &st)
	if h == NilHandle {
		return Success
	}
	registry.Lock()
	obj, ok := registry.objects[h]
	delete(registry.objects, h)
	registry.Unlock()
	if !ok {
		return fail("Free", cell.NewError(cell.InvalidArgument, "Free", "no object with handle %s", h))
	}
	if c, ok := obj.(closer); ok {
		c.Close()
	}
	return Success
}
