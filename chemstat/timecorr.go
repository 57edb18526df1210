/*
 * timecorr.go, part of gocell.
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
	"fmt"
	"math/cmplx"

	cell "github.com/rmera/gocell"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

func cmplxMulConj(dst, b []complex128) {
	if len(dst) != len(b) {
		panic(fmt.Sprintf("complex conjugate multiplication of slices: Both slices should have the same len %d, %d", len(dst), len(b)))
	}
	for i, v := range b {
		dst[i] *= cmplx.Conj(v)
	}
}

//CrossCorrelation returns the normalized cross-correlation of the series c1 and c2 for lags
//0 to len(c1)-1. For c1==c2, this is the autocorrelation function, which is 1 at lag 0.
//The correlation is obtained with FFTs over zero-padded series, so it is not circular.
func CrossCorrelation(c1, c2 []float64) ([]float64, error) {
	if len(c1) == 0 || len(c1) != len(c2) {
		return nil, cell.NewError(cell.InvalidArgument, "CrossCorrelation", "series must have the same, non-zero, length. Got %d and %d", len(c1), len(c2))
	}
	c1mean := stat.Mean(c1, nil)
	c2mean := stat.Mean(c2, nil)
	c1std := stat.PopStdDev(c1, nil)
	c2std := stat.PopStdDev(c2, nil)
	if c1std == 0 || c2std == 0 {
		return nil, cell.NewError(cell.InvalidArgument, "CrossCorrelation", "constant series can't be correlated")
	}
	n := len(c1)
	c1pad := make([]complex128, 2*n)
	c2pad := make([]complex128, 2*n)
	for i, v := range c1 {
		c1pad[i] = complex(v-c1mean, 0)
		c2pad[i] = complex(c2[i]-c2mean, 0)
	}
	f := fourier.NewCmplxFFT(len(c1pad))
	f.Coefficients(c1pad, c1pad)
	f.Coefficients(c2pad, c2pad)
	cmplxMulConj(c1pad, c2pad)
	f.Sequence(c1pad, c1pad) //gonum's transforms are not normalized.
	scale := float64(len(c1pad)) * c1std * c2std * float64(n)
	ret := make([]float64, n)
	for i, v := range c1pad[:n] {
		ret[i] = real(v) / scale
	}
	return ret, nil
}

//VolumeAutocorrelation returns the autocorrelation function of the volume
//fluctuations along the given cells.
func VolumeAutocorrelation(cells []*cell.UnitCell) ([]float64, error) {
	vol := Volumes(cells)
	ret, err := CrossCorrelation(vol, vol)
	if err != nil {
		err.(cell.Error).Decorate("VolumeAutocorrelation")
	}
	return ret, err
}
