/*
 * doc.go, part of gorama.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package rama is the main package of gorama. It reads the ATOM records of PDB files
and computes the backbone torsions (omega, phi and psi) of a protein chain, the
raw material for Ramachandran plots.

	**gorama Capabilities**

	Reads the ATOM records of PDB files, plain or compressed (gzip, zstd), into an
	immutable AtomTable. Malformed numeric columns are errors, never skipped.

	Writes PDB files for an AtomTable or a subset of it.

	Selects the N, CA and C atoms of one chain. Atoms are matched to residues by
	chain, residue number and insertion code, so a missing atom is reported
	instead of silently shifting every following residue.

	Computes omega, phi and psi for a whole chain at once, as operations on
	v3.Matrix, gorama's Nx3 coordinate type based on gonum. Degenerate geometries
	(zero-length bonds, collinear atoms) are reported as errors.

	Filters Ramachandran data by residue name, and computes circular means.

The histo, chemplot, fetch packages and the gorama command build the density grids,
the plots, the downloads from the PDB and the command line interface on top of this package.

A typical use:

	tors, err := rama.LoadBackboneTorsions("1axc.pdb", "A")
	if err != nil {
		log.Fatal(err)
	}
	phi, psi, residues := tors.RamaPairs()
*/
package rama
