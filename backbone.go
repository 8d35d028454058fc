/*
 * backbone.go, part of gorama.
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
	"fmt"
	"strings"

	v3 "github.com/rmera/gorama/v3"
)

// ResidueKey identifies a residue within a table.
type ResidueKey struct {
	Chain string
	MolID int
	ICode byte
}

func (k ResidueKey) String() string {
	chain := k.Chain
	if chain == "" {
		chain = "_"
	}
	if k.ICode == ' ' || k.ICode == 0 {
		return fmt.Sprintf("%s:%d", chain, k.MolID)
	}
	return fmt.Sprintf("%s:%d%c", chain, k.MolID, k.ICode)
}

// Residue is a residue of a backbone.
type Residue struct {
	ResidueKey
	MolName string
}

// Backbone contains the coordinates of the N, CA and C atoms of the residues of a chain.
// The ith vector of N, CA and C belongs to Residues[i]. The matrices are nil if
// there are no residues.
type Backbone struct {
	N        *v3.Matrix
	CA       *v3.Matrix
	C        *v3.Matrix
	Residues []Residue
}

// Len returns the number of residues in the backbone.
func (B *Backbone) Len() int {
	return len(B.Residues)
}

// check returns an *AlignmentError unless N, CA and C have one vector per residue.
// A nil matrix counts as having no vectors.
func (B *Backbone) check() error {
	for _, m := range []struct {
		name string
		m    *v3.Matrix
	}{{"N", B.N}, {"CA", B.CA}, {"C", B.C}} {
		var n int
		if m.m != nil && m.m.Dense != nil {
			n = m.m.NVecs()
		}
		if n != B.Len() {
			return &AlignmentError{Atom: m.name, msg: fmt.Sprintf("the backbone has %d residues but %d %s atoms", B.Len(), n, m.name)}
		}
	}
	return nil
}

// the indexes, in the table, of the backbone atoms of one residue.
type bbIndexes struct {
	n, ca, c int
}

func (b *bbIndexes) slot(name string) *int {
	switch name {
	case "N":
		return &b.n
	case "CA":
		return &b.ca
	case "C":
		return &b.c
	}
	return nil
}

// SelectBackbone returns the N, CA and C atoms of the chain chain of T, one of each
// per residue, in the order in which the residues appear in the table.
// If chain is empty, T must contain only one chain. Atoms are assigned to residues
// by chain, residue number and insertion code. It returns an *AlignmentError if any residue lacks one
// of the three atoms, or has more than one of them without alternate location indicators.
// When alternate locations are present, the first one found is used.
func SelectBackbone(T *AtomTable, chain string) (*Backbone, error) {
	chains := T.Chains()
	if chain == "" {
		if len(chains) > 1 {
			return nil, &AlignmentError{msg: fmt.Sprintf("no chain given, and the structure has %d chains: %s", len(chains), strings.Join(chains, ", ")), deco: []string{"SelectBackbone"}}
		}
		if len(chains) == 1 {
			chain = chains[0]
		}
	} else if !isInString(chains, chain) {
		return nil, &AlignmentError{msg: fmt.Sprintf("chain %q not found, the structure has: %s", chain, strings.Join(chains, ", ")), deco: []string{"SelectBackbone"}}
	}
	residues := make([]Residue, 0, T.Len()/8)
	indexes := make(map[ResidueKey]*bbIndexes)
	for i, at := range T.atoms {
		if at.Chain != chain {
			continue
		}
		key := at.Residue()
		idx, ok := indexes[key]
		if !ok {
			idx = &bbIndexes{-1, -1, -1}
			indexes[key] = idx
			residues = append(residues, Residue{ResidueKey: key, MolName: at.MolName})
		}
		slot := idx.slot(at.Name)
		if slot == nil {
			continue
		}
		if *slot >= 0 {
			first := T.atoms[*slot]
			if blankIfZero(first.AltLoc) == ' ' && blankIfZero(at.AltLoc) == ' ' {
				return nil, &AlignmentError{Residue: key, Atom: at.Name, msg: fmt.Sprintf("residue %s %s has more than one %s atom (serials %d and %d)", at.MolName, key, at.Name, first.ID, at.ID), deco: []string{"SelectBackbone"}}
			}
			continue
		}
		*slot = i
	}
	if len(residues) == 0 {
		return nil, &AlignmentError{msg: fmt.Sprintf("chain %q has no residues", chain), deco: []string{"SelectBackbone"}}
	}
	nl := make([]int, len(residues))
	cal := make([]int, len(residues))
	cl := make([]int, len(residues))
	for i, r := range residues {
		idx := indexes[r.ResidueKey]
		for _, name := range []string{"N", "CA", "C"} {
			if *idx.slot(name) < 0 {
				return nil, &AlignmentError{Residue: r.ResidueKey, Atom: name, msg: fmt.Sprintf("residue %s %s lacks the %s atom", r.MolName, r.ResidueKey, name), deco: []string{"SelectBackbone"}}
			}
		}
		nl[i], cal[i], cl[i] = idx.n, idx.ca, idx.c
	}
	B := &Backbone{Residues: residues}
	B.N = v3.Zeros(len(residues))
	B.N.SomeVecs(T.coords, nl)
	B.CA = v3.Zeros(len(residues))
	B.CA.SomeVecs(T.coords, cal)
	B.C = v3.Zeros(len(residues))
	B.C.SomeVecs(T.coords, cl)
	return B, nil
}
