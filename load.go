/*
 * load.go, part of gorama.
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

// LoadBackboneTorsions reads the PDB file path and returns the omega, phi and psi torsions
// of the chain chain. If chain is empty, the file must contain only one chain.
// The errors returned can be *FileAccessError, *ParseError, *AlignmentError or *DegenerateGeometryError.
func LoadBackboneTorsions(path, chain string) (*TorsionSeries, error) {
	table, err := ReadAtomTableFile(path)
	if err != nil {
		return nil, errDecorate(err, "LoadBackboneTorsions")
	}
	bb, err := SelectBackbone(table, chain)
	if err != nil {
		return nil, errDecorate(err, "LoadBackboneTorsions")
	}
	tors, err := Torsions(bb)
	if err != nil {
		return nil, errDecorate(err, "LoadBackboneTorsions")
	}
	return tors, nil
}
