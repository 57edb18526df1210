/*
 * cellplot.go, part of gocell
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

//Package chemplot produces plots, in png format, of the unit cells along a trajectory.
package chemplot

import (
	"fmt"
	"os"

	cell "github.com/rmera/gocell"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func basicPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

//adds a line with the values in data, indexed by frame, to p.
func addLine(p *plot.Plot, data []float64, name string, colorindex int) error {
	pts := make(plotter.XYs, len(data))
	for i, v := range data {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Color = plotutil.Color(colorindex)
	l.LineStyle.Width = vg.Points(1)
	p.Add(l)
	p.Legend.Add(name, l)
	return nil
}

//CellPlot produces a plot of the cell volume (top) and the cell lengths (bottom) for each of the
//given cells and saves it to plotname.png.
func CellPlot(cells []*cell.UnitCell, title, plotname string) error {
	if len(cells) == 0 {
		return cell.NewError(cell.InvalidArgument, "CellPlot", "no cells to plot")
	}
	vol := make([]float64, len(cells))
	var lengths [3][]float64
	for i := range lengths {
		lengths[i] = make([]float64, len(cells))
	}
	for i, c := range cells {
		if c == nil {
			return cell.NewError(cell.InvalidArgument, "CellPlot", "nil cell in frame %d", i)
		}
		vol[i] = c.Volume()
		for j, l := range c.Lengths() {
			lengths[j][i] = l
		}
	}
	pv := basicPlot(title, "Volume (A^3)")
	if err := addLine(pv, vol, "V", 0); err != nil {
		return cell.NewError(cell.GenericFailure, "CellPlot", "%s", err.Error())
	}
	pl := basicPlot("", "Length (A)")
	for j, name := range []string{"a", "b", "c"} {
		if err := addLine(pl, lengths[j], name, j+1); err != nil {
			return cell.NewError(cell.GenericFailure, "CellPlot", "%s", err.Error())
		}
	}
	plots := [][]*plot.Plot{{pv}, {pl}}
	img := vgimg.New(6*vg.Inch, 8*vg.Inch)
	dc := draw.New(img)
	canvases := plot.Align(plots, draw.Tiles{Rows: 2, Cols: 1, PadY: 2 * vg.Millimeter}, dc)
	for i, row := range plots {
		row[0].Draw(canvases[i][0])
	}
	filename := fmt.Sprintf("%s.png", plotname)
	f, err := os.Create(filename)
	if err != nil {
		return cell.NewError(cell.FileFailure, "CellPlot", "%s", err.Error())
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(f); err != nil {
		f.Close()
		return cell.NewError(cell.FileFailure, "CellPlot", "%s", err.Error())
	}
	if err = f.Close(); err != nil {
		return cell.NewError(cell.FileFailure, "CellPlot", "%s", err.Error())
	}
	return nil
}

//CorrelationPlot plots a correlation function, such as the one from chemstat.VolumeAutocorrelation,
//against the lag, in frames, and saves it to plotname.png.
func CorrelationPlot(data []float64, title, plotname string) error {
	if len(data) == 0 {
		return cell.NewError(cell.InvalidArgument, "CorrelationPlot", "no data to plot")
	}
	p := basicPlot(title, "Correlation")
	p.X.Label.Text = "Lag (frames)"
	p.Y.Min = -1
	p.Y.Max = 1
	if err := addLine(p, data, "C(t)", 0); err != nil {
		return cell.NewError(cell.GenericFailure, "CorrelationPlot", "%s", err.Error())
	}
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return cell.NewError(cell.FileFailure, "CorrelationPlot", "%s", err.Error())
	}
	return nil
}
