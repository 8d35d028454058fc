/*
 * torsion.go, part of gorama.
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

package rama

import (
	"errors"
	"math"

	v3 "github.com/rmera/gorama/v3"
	"gonum.org/v1/gonum/stat"
)

// dihedrals returns, in degrees, the dihedral angle defined by the ith vectors of
// the bond vectors b0, b1 and b2, for every i. b1 is the axis of rotation.
// The sign follows the convention used for backbone torsions (-atan2).
// It returns a *DegenerateGeometryError if any bond vector, or the normal to
// any of the two planes, has zero length.
func dihedrals(angle string, b0, b1, b2 *v3.Matrix) ([]float64, error) {
	n := b1.NVecs()
	norms := make([]float64, n)
	for _, b := range []struct {
		name string
		m    *v3.Matrix
	}{{"b0", b0}, {"b1", b1}, {"b2", b2}} {
		for i, v := range b.m.VecNorms(norms) {
			if !(v > v3.AppZero) {
				return nil, &DegenerateGeometryError{Angle: angle, Index: i, Vector: b.name, Norm: v}
			}
		}
	}
	//normals to the planes defined by b0,b1 and b1,b2
	n1 := v3.Zeros(n)
	n1.CrossVecs(b0, b1)
	if err := unitOrDegenerate(n1, angle, "b0xb1"); err != nil {
		return nil, err
	}
	n2 := v3.Zeros(n)
	n2.CrossVecs(b1, b2)
	if err := unitOrDegenerate(n2, angle, "b1xb2"); err != nil {
		return nil, err
	}
	m1 := v3.Zeros(n)
	if err := m1.UnitVecs(b1); err != nil {
		panic(err.Error()) //b1 was checked above
	}
	m1.CrossVecs(n1, m1)
	x := n1.DotVecs(n2)
	y := m1.DotVecs(n2)
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = -math.Atan2(y[i], x[i]) * 180 / math.Pi
	}
	return ret, nil
}

// unitOrDegenerate normalizes the vectors of A in place.
func unitOrDegenerate(A *v3.Matrix, angle, name string) error {
	err := A.UnitVecs(A)
	var zerr *v3.ZeroVecError
	if errors.As(err, &zerr) {
		return &DegenerateGeometryError{Angle: angle, Index: zerr.Vec, Vector: name, Norm: zerr.Norm}
	}
	return err
}

// bondVecs returns a matrix with the vectors to-from, where to and from are views
// of n vectors of the backbone matrices, starting at the given offsets (0 or 1).
func bondVecs(from *v3.Matrix, fromOff int, to *v3.Matrix, toOff int, n int) *v3.Matrix {
	ret := v3.Zeros(n)
	ret.Sub(to.View(toOff, 0, n, 3), from.View(fromOff, 0, n, 3))
	return ret
}

// Omega returns the omega (peptide bond) torsions of B, in degrees. The ith element
// corresponds to the bond between residues i and i+1.
func Omega(B *Backbone) ([]float64, error) {
	if err := B.check(); err != nil {
		return nil, errDecorate(err, "Omega")
	}
	n := B.Len() - 1
	if n < 1 {
		return []float64{}, nil
	}
	b0 := bondVecs(B.CA, 0, B.C, 0, n)
	b1 := bondVecs(B.C, 0, B.N, 1, n)
	b2 := bondVecs(B.N, 1, B.CA, 1, n)
	ret, err := dihedrals("omega", b0, b1, b2)
	return ret, errDecorate(err, "Omega")
}

// Phi returns the phi torsions of B, in degrees. The ith element is the phi of
// the residue i+1, as the first residue has no phi.
func Phi(B *Backbone) ([]float64, error) {
	if err := B.check(); err != nil {
		return nil, errDecorate(err, "Phi")
	}
	n := B.Len() - 1
	if n < 1 {
		return []float64{}, nil
	}
	b0 := bondVecs(B.C, 0, B.N, 1, n)
	b1 := bondVecs(B.N, 1, B.CA, 1, n)
	b2 := bondVecs(B.CA, 1, B.C, 1, n)
	ret, err := dihedrals("phi", b0, b1, b2)
	return ret, errDecorate(err, "Phi")
}

// Psi returns the psi torsions of B, in degrees. The ith element is the psi of
// the residue i. The last residue has no psi.
func Psi(B *Backbone) ([]float64, error) {
	if err := B.check(); err != nil {
		return nil, errDecorate(err, "Psi")
	}
	n := B.Len() - 1
	if n < 1 {
		return []float64{}, nil
	}
	b0 := bondVecs(B.N, 0, B.CA, 0, n)
	b1 := bondVecs(B.CA, 0, B.C, 0, n)
	b2 := bondVecs(B.C, 0, B.N, 1, n)
	ret, err := dihedrals("psi", b0, b1, b2)
	return ret, errDecorate(err, "Psi")
}

// TorsionSeries contains the backbone torsions of a chain.
// Omega[i] is the torsion of the bond between Residues[i] and Residues[i+1],
// Phi[i] the phi of Residues[i+1] and Psi[i] the psi of Residues[i].
type TorsionSeries struct {
	Omega    []float64
	Phi      []float64
	Psi      []float64
	Residues []Residue
}

// Torsions computes the omega, phi and psi torsions of B.
func Torsions(B *Backbone) (*TorsionSeries, error) {
	var err error
	T := &TorsionSeries{Residues: append([]Residue(nil), B.Residues...)}
	if T.Omega, err = Omega(B); err != nil {
		return nil, errDecorate(err, "Torsions")
	}
	if T.Phi, err = Phi(B); err != nil {
		return nil, errDecorate(err, "Torsions")
	}
	if T.Psi, err = Psi(B); err != nil {
		return nil, errDecorate(err, "Torsions")
	}
	return T, nil
}

// ResidueTorsion has the torsions of one residue. The Has fields are false
// for the angles that the residue lacks, in which case the angle is 0.
// Omega is the torsion of the peptide bond preceding the residue.
type ResidueTorsion struct {
	Residue
	Phi, Psi, Omega          float64
	HasPhi, HasPsi, HasOmega bool
}

// PerResidue returns the torsions of each residue in the series.
func (T *TorsionSeries) PerResidue() []ResidueTorsion {
	ret := make([]ResidueTorsion, len(T.Residues))
	for i, r := range T.Residues {
		ret[i].Residue = r
		if i > 0 {
			ret[i].Phi, ret[i].HasPhi = T.Phi[i-1], true
			ret[i].Omega, ret[i].HasOmega = T.Omega[i-1], true
		}
		if i < len(T.Psi) {
			ret[i].Psi, ret[i].HasPsi = T.Psi[i], true
		}
	}
	return ret
}

// RamaPairs returns the phi and psi angles of every residue that has both, i.e. all but the
// first and the last, together with the residues.
func (T *TorsionSeries) RamaPairs() (phi, psi []float64, residues []Residue) {
	n := len(T.Residues) - 2
	if n < 1 {
		return []float64{}, []float64{}, []Residue{}
	}
	phi = append(phi, T.Phi[:n]...)
	psi = append(psi, T.Psi[1:n+1]...)
	residues = append(residues, T.Residues[1:n+1]...)
	return phi, psi, residues
}

// FilterResidues filters the rows by residue name (ex. only GLY, everything but GLY).
// If keep is true, only the residues named in names are returned. Otherwise,
// the residues in names are left out. The second value returned contains, for each row,
// its index in the filtered slice, or -1 if it was left out.
func FilterResidues(rows []ResidueTorsion, names []string, keep bool) ([]ResidueTorsion, []int) {
	ret := make([]ResidueTorsion, 0, len(rows))
	index := make([]int, len(rows))
	for i, r := range rows {
		if isInString(names, r.MolName) == keep {
			index[i] = len(ret)
			ret = append(ret, r)
		} else {
			index[i] = -1
		}
	}
	return ret, index
}

// CircularMean returns the mean direction of angles, in degrees, in the (-180,180] interval.
// It returns NaN for an empty slice, or when the angles cancel out.
func CircularMean(angles []float64) float64 {
	if len(angles) == 0 {
		return math.NaN()
	}
	sin := make([]float64, len(angles))
	cos := make([]float64, len(angles))
	for i, a := range angles {
		sin[i], cos[i] = math.Sincos(Deg2Rad(a))
	}
	s := stat.Mean(sin, nil)
	c := stat.Mean(cos, nil)
	if math.Hypot(s, c) <= v3.AppZero {
		return math.NaN()
	}
	return wrap180(Rad2Deg(math.Atan2(s, c)))
}
