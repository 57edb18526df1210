/*
 * cells.go, part of gocell.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

//Package chemstat collects statistics on the unit cells along a trajectory.
package chemstat

import (
	cell "github.com/rmera/gocell"
	"gonum.org/v1/gonum/stat"
)

//Stat is the mean and standard deviation of a quantity.
type Stat struct {
	Mean   float64
	StdDev float64
}

//CellSummary contains the statistics of a set of cells, normally, those in a trajectory.
type CellSummary struct {
	Frames  int
	Volume  Stat
	Lengths [3]Stat //a, b and c
	Angles  [3]Stat //alpha, beta and gamma
}

//CellSeries reads t until its end, and returns the cell of each frame.
//If an error other than the end of the trajectory occurs, the cells read so far
//are returned together with the error.
func CellSeries(t cell.Traj) ([]*cell.UnitCell, error) {
	if t == nil {
		return nil, cell.NewError(cell.InvalidArgument, "CellSeries", "nil trajectory")
	}
	cells := make([]*cell.UnitCell, 0, 100)
	for {
		c, err := cell.FromTraj(t, nil)
		if err != nil {
			if _, ok := err.(cell.LastFrameError); ok {
				break
			}
			if e, ok := err.(cell.Error); ok {
				e.Decorate("CellSeries")
			}
			return cells, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}

func meanStd(x []float64) Stat {
	if len(x) == 1 {
		return Stat{Mean: x[0]}
	}
	m, s := stat.MeanStdDev(x, nil)
	return Stat{Mean: m, StdDev: s}
}

//Summarize returns the mean and (sample) standard deviation of the volume, lengths and angles
//of the given cells. Infinite cells count with a volume of 0.
func Summarize(cells []*cell.UnitCell) (CellSummary, error) {
	var ret CellSummary
	if len(cells) == 0 {
		return ret, cell.NewError(cell.InvalidArgument, "Summarize", "no cells to summarize")
	}
	vol := make([]float64, len(cells))
	var lengths, angles [3][]float64
	for i := range lengths {
		lengths[i] = make([]float64, len(cells))
		angles[i] = make([]float64, len(cells))
	}
	for i, c := range cells {
		if c == nil {
			return ret, cell.NewError(cell.InvalidArgument, "Summarize", "nil cell in position %d", i)
		}
		vol[i] = c.Volume()
		l := c.Lengths()
		a := c.Angles()
		for j := 0; j < 3; j++ {
			lengths[j][i] = l[j]
			angles[j][i] = a[j]
		}
	}
	ret.Frames = len(cells)
	ret.Volume = meanStd(vol)
	for j := 0; j < 3; j++ {
		ret.Lengths[j] = meanStd(lengths[j])
		ret.Angles[j] = meanStd(angles[j])
	}
	return ret, nil
}

//Volumes returns the volume of each of the given cells.
func Volumes(cells []*cell.UnitCell) []float64 {
	ret := make([]float64, len(cells))
	for i, c := range cells {
		ret[i] = c.Volume()
	}
	return ret
}
