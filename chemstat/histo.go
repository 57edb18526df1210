/*
 * histo.go, part of gocell.
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

package chemstat

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	cell "github.com/rmera/gocell"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Histogram counts values in the bins delimited by its dividers. Bin i contains
//the values v with dividers[i] <= v < dividers[i+1].
type Histogram struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

//NewHistogram returns a histogram with the given dividers, filled with rawdata, which can be nil.
//Values outside the range of the dividers are not counted. Neither slice is modified.
func NewHistogram(dividers []float64, rawdata []float64) (*Histogram, error) {
	if len(dividers) < 2 {
		return nil, cell.NewError(cell.InvalidArgument, "NewHistogram", "at least 2 dividers are needed, got %d", len(dividers))
	}
	if !sort.Float64sAreSorted(dividers) {
		return nil, cell.NewError(cell.InvalidArgument, "NewHistogram", "dividers must be sorted")
	}
	H := &Histogram{dividers: make([]float64, len(dividers))}
	copy(H.dividers, dividers)
	H.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		H.rehisto(rawdata)
	}
	return H, nil
}

func (H *Histogram) rehisto(rawdata []float64) {
	data := make([]float64, len(rawdata))
	copy(data, rawdata)
	sort.Float64s(data)
	//stat.Histogram panics with values that are off limits.
	maxi := sort.SearchFloat64s(data, H.dividers[len(H.dividers)-1])
	mini := sort.SearchFloat64s(data, H.dividers[0])
	data = data[mini:maxi]
	H.total = len(data)
	H.histo = stat.Histogram(nil, H.dividers, data, nil)
}

//AddData adds the given points to the histogram, keeping it normalized if it was.
func (H *Histogram) AddData(points ...float64) {
	norma := H.normalized
	if norma {
		H.UnNormalize()
	}
	for _, v := range points {
		for j := 0; j < len(H.dividers)-1; j++ {
			if H.dividers[j] <= v && v < H.dividers[j+1] {
				H.histo[j]++
				H.total++
				break
			}
		}
	}
	if norma {
		H.Normalize()
	}
}

//Total returns the number of points counted in the histogram.
func (H *Histogram) Total() int {
	return H.total
}

//Normalized returns true if the histogram is normalized.
func (H *Histogram) Normalized() bool {
	return H.normalized
}

//Normalize divides each bin by the number of points counted. Empty histograms are left alone.
func (H *Histogram) Normalize() {
	H.scale(true)
}

//UnNormalize reverts Normalize.
func (H *Histogram) UnNormalize() {
	H.scale(false)
}

func (H *Histogram) scale(normalize bool) {
	if H.total <= 0 || H.normalized == normalize {
		return
	}
	n := float64(H.total)
	if normalize {
		n = 1 / n
	}
	H.normalized = normalize
	floats.Scale(n, H.histo)
}

//Dividers returns a copy of the dividers of the histogram.
func (H *Histogram) Dividers() []float64 {
	return append([]float64(nil), H.dividers...)
}

//View returns the bins of the histogram. The slice is not a copy.
func (H *Histogram) View() []float64 {
	return H.histo
}

//Sum returns the sum of all bins.
func (H *Histogram) Sum() float64 {
	return floats.Sum(H.histo)
}

//Add puts in the receiver the sum of the histograms a and b, which must have the same dividers.
func (H *Histogram) Add(a, b *Histogram) error {
	if !floats.Equal(a.dividers, b.dividers) {
		return cell.NewError(cell.InvalidArgument, "Histogram.Add", "dividers of the added histograms must match")
	}
	if a.normalized != b.normalized {
		return cell.NewError(cell.InvalidArgument, "Histogram.Add", "can't add a normalized histogram to a non-normalized one")
	}
	histo := make([]float64, len(a.histo))
	floats.AddTo(histo, a.histo, b.histo)
	H.dividers = a.Dividers()
	H.histo = histo
	H.total = a.total + b.total
	H.normalized = a.normalized
	return nil
}

//String returns a 3-line representation of the histogram.
func (H *Histogram) String() string {
	ret := fmt.Sprintf("Normalized: %v, TotalData: %d\n", H.normalized, H.total)
	d := make([]string, 0, len(H.histo))
	h := make([]string, 0, len(H.histo))
	for i, v := range H.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", H.dividers[i], H.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + strings.Join(d, " ") + "\n" + strings.Join(h, " ")
}

type jsonHistogram struct {
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (H *Histogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonHistogram{
		Normalized: H.normalized,
		Total:      H.total,
		Dividers:   H.dividers,
		Histo:      H.histo,
	})
}

func (H *Histogram) UnmarshalJSON(b []byte) error {
	var a jsonHistogram
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return cell.NewError(cell.FormatFailure, "Histogram.UnmarshalJSON", "%d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	H.normalized = a.Normalized
	H.total = a.Total
	H.dividers = a.Dividers
	H.histo = a.Histo
	return nil
}

//VolumeHistogram returns a histogram of the volumes of cells, with nbins bins of the same
//width spanning from the smallest to the largest volume, both included.
func VolumeHistogram(cells []*cell.UnitCell, nbins int) (*Histogram, error) {
	if nbins < 1 {
		return nil, cell.NewError(cell.InvalidArgument, "VolumeHistogram", "at least one bin is needed, got %d", nbins)
	}
	if len(cells) == 0 {
		return nil, cell.NewError(cell.InvalidArgument, "VolumeHistogram", "no cells given")
	}
	for i, c := range cells {
		if c == nil {
			return nil, cell.NewError(cell.InvalidArgument, "VolumeHistogram", "nil cell in position %d", i)
		}
	}
	vols := Volumes(cells)
	lo, hi := floats.Min(vols), floats.Max(vols)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	dividers := floats.Span(make([]float64, nbins+1), lo, hi)
	dividers[nbins] = math.Nextafter(hi, math.Inf(1))
	return NewHistogram(dividers, vols)
}
