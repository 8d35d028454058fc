/*
 * rama.go, part of gorama.
 *
 * Copyright 2024 Raul Mera <rmeraaatacademicosdotutadotcl>
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

package histo

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Rama is a 2D histogram of phi, psi pairs, in degrees, with square bins
// covering [-180,180) in both directions. Each phi bin is a row of the underlying
// Matrix, with a histogram of the psi values in it.
// Rama implements the plotter.GridXYZ interface from gonum/plot, with phi in
// the X axis, and psi in the Y axis. Z returns the number of pairs in the bin.
type Rama struct {
	step     float64
	dividers []float64
	m        *Matrix
}

// NewRama returns an empty Ramachandran histogram with bins of step degrees.
// 360 must be a multiple of step.
func NewRama(step float64) (*Rama, error) {
	n := 360 / step
	if step <= 0 || math.Abs(n-math.Round(n)) > 1e-9 {
		return nil, fmt.Errorf("gorama/histo: a bin width of %g doesn't divide 360", step)
	}
	bins := int(math.Round(n))
	dividers := make([]float64, bins+1)
	floats.Span(dividers, -180, 180)
	R := &Rama{step: step, dividers: dividers}
	R.m = NewMatrix(bins, 1, dividers)
	R.m.Fill()
	return R, nil
}

// wraps a in the [-180,180) interval.
func wrap(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

// Add adds the pairs phi[i], psi[i] to the histogram. The angles are taken to the
// [-180,180) interval first, so 180 is counted as -180. NaN values are skipped.
func (R *Rama) Add(phi, psi []float64) error {
	if len(phi) != len(psi) {
		return fmt.Errorf("gorama/histo: %d phi and %d psi values given", len(phi), len(psi))
	}
	row := R.m.View(0, 0)
	for i, v := range phi {
		if math.IsNaN(v) || math.IsNaN(psi[i]) {
			continue
		}
		b := row.bin(wrap(v))
		if b < 0 {
			continue
		}
		R.m.AddData(b, 0, wrap(psi[i]))
	}
	return nil
}

// Step returns the width of the bins, in degrees.
func (R *Rama) Step() float64 {
	return R.step
}

// Total returns the number of pairs in the histogram.
func (R *Rama) Total() int {
	var t int
	for _, v := range R.m.d {
		t += v.Total()
	}
	return t
}

// Dims returns the number of phi (columns) and psi (rows) bins.
func (R *Rama) Dims() (c, r int) {
	return len(R.dividers) - 1, len(R.dividers) - 1
}

// Z returns the number of pairs in the bin of the column c (phi) and row r (psi).
func (R *Rama) Z(c, r int) float64 {
	return R.m.View(c, 0).View()[r]
}

// X returns the center of the cth phi bin.
func (R *Rama) X(c int) float64 {
	return R.dividers[c] + R.step/2
}

// Y returns the center of the rth psi bin.
func (R *Rama) Y(r int) float64 {
	return R.dividers[r] + R.step/2
}

// Max returns the largest count among the bins.
func (R *Rama) Max() float64 {
	counts, _ := R.m.FromAll(func(D *Data) (float64, error) { return floats.Max(D.View()), nil })
	var ret float64
	for _, v := range counts {
		ret = math.Max(ret, v[0])
	}
	return ret
}

// Density returns the fraction of the pairs that fall in the bin c, r, or 0 if the
// histogram is empty.
func (R *Rama) Density(c, r int) float64 {
	t := R.Total()
	if t == 0 {
		return 0
	}
	return R.Z(c, r) / float64(t)
}

func (R *Rama) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Step  float64 `json:"step"`
		Total int     `json:"total"`
		Phi   *Matrix `json:"phi_rows"`
	}{R.step, R.Total(), R.m})
}
