/*
 * atom.go, part of gorama.
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
	v3 "github.com/rmera/gorama/v3"
)

// A map between 3-letters name for aminoacidic residues to the corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
}

// Atom contains the information of one ATOM record, except for the coordinates,
// which are kept in a v3.Matrix by the AtomTable.
type Atom struct {
	Name      string
	ID        int  //serial number
	AltLoc    byte //alternate location indicator, ' ' if none.
	MolName   string
	MolName1  byte //the one letter name for residues, 0 if unknown.
	Chain     string
	MolID     int  //residue sequence number
	ICode     byte //insertion code, ' ' if none.
	Occupancy float64
	Bfactor   float64
	Symbol    string
	Charge    string
}

// Copy returns a copy of the Atom.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

// Residue returns the key of the residue the atom belongs to.
func (A *Atom) Residue() ResidueKey {
	return ResidueKey{Chain: A.Chain, MolID: A.MolID, ICode: A.ICode}
}

// AtomTable is an ordered set of atoms with their coordinates, in the order
// they were read. It is not modified after creation: the methods returning
// atoms or coordinates return copies, and the methods returning tables
// return new ones.
type AtomTable struct {
	atoms  []*Atom
	coords *v3.Matrix //nil if there are no atoms.
}

// newAtomTable builds a table from atoms and a flat slice with 3 coordinates per atom.
// It takes ownership of both slices.
func newAtomTable(atoms []*Atom, coords []float64) *AtomTable {
	T := &AtomTable{atoms: atoms}
	if len(atoms) > 0 {
		T.coords, _ = v3.NewMatrix(coords) //can't fail, the length is a non-zero multiple of 3.
	}
	return T
}

// Len returns the number of atoms in the table.
func (T *AtomTable) Len() int {
	return len(T.atoms)
}

// Atom returns a copy of the Atom corresponding to the index i.
// Panics if out of range.
func (T *AtomTable) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("AtomTable: Requested Atom out of bounds")
	}
	return T.atoms[i].Copy()
}

// Coord returns the coordinates of the ith atom.
func (T *AtomTable) Coord(i int) [3]float64 {
	if i >= T.Len() {
		panic("AtomTable: Requested coordinates out of bounds")
	}
	return T.coords.Vec(i)
}

// Coords returns a copy of the coordinates of all the atoms in the table,
// or nil if the table is empty.
func (T *AtomTable) Coords() *v3.Matrix {
	if T.coords == nil {
		return nil
	}
	ret := v3.Zeros(T.Len())
	ret.Copy(T.coords)
	return ret
}

// Chains returns the chain identifiers in the table, in the order in which
// they first appear.
func (T *AtomTable) Chains() []string {
	ret := make([]string, 0, 2)
	for _, at := range T.atoms {
		if !isInString(ret, at.Chain) {
			ret = append(ret, at.Chain)
		}
	}
	return ret
}

// Chain returns a new table with only the atoms belonging to the chain id.
func (T *AtomTable) Chain(id string) *AtomTable {
	return T.Select(func(at *Atom) bool { return at.Chain == id })
}

// Select returns a new table with the atoms for which f returns true, in the same order.
// f receives copies, so changes it makes are not reflected in the table.
func (T *AtomTable) Select(f func(*Atom) bool) *AtomTable {
	atoms := make([]*Atom, 0, T.Len())
	list := make([]int, 0, T.Len())
	for i, at := range T.atoms {
		if f(at.Copy()) {
			atoms = append(atoms, at.Copy())
			list = append(list, i)
		}
	}
	ret := &AtomTable{atoms: atoms}
	if len(list) > 0 {
		ret.coords = v3.Zeros(len(list))
		ret.coords.SomeVecs(T.coords, list)
	}
	return ret
}
