/*
 * plot_test.go
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
 *
 */

/*This provides some tests for the plotting functions, in the form of little functions
 * that have practical applications*/

package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	rama "github.com/rmera/gorama"
	"github.com/rmera/gorama/histo"
)

func exists(Te *testing.T, name string) {
	Te.Helper()
	info, err := os.Stat(name)
	if err != nil {
		Te.Fatal(err)
	}
	if info.Size() == 0 {
		Te.Errorf("%s is empty", name)
	}
}

// TestRama generates a Ramachandran plot for the chain A of the test structure,
// tagging the first glycine.
func TestRama(Te *testing.T) {
	tors, err := rama.LoadBackboneTorsions("../test/synthetic.pdb", "A")
	if err != nil {
		Te.Fatal(err)
	}
	phi, psi, residues := tors.RamaPairs()
	var tag []int
	for i, r := range residues {
		if r.MolName == "GLY" {
			tag = append(tag, i)
			break
		}
	}
	dir := Te.TempDir()
	if err := RamaPlot(phi, psi, tag, "Test Ramachandran", filepath.Join(dir, "Rama")); err != nil {
		Te.Fatal(err)
	}
	exists(Te, filepath.Join(dir, "Rama.png"))
	if err := RamaPlot(phi, psi, nil, "Test Ramachandran", filepath.Join(dir, "Rama.svg")); err != nil {
		Te.Fatal(err)
	}
	exists(Te, filepath.Join(dir, "Rama.svg"))
	if err := RamaPlot(phi, psi[:1], nil, "", filepath.Join(dir, "bad.png")); err == nil {
		Te.Error("phi and psi of different lengths should be an error")
	}
	if err := RamaPlot(phi, psi, []int{0, 1, 2, 3, 0}, "", filepath.Join(dir, "bad.png")); err == nil {
		Te.Error("no more than 4 residues can be tagged")
	}
}

// TestRamaParts plots glycines, prolines and the rest with different colors.
func TestRamaParts(Te *testing.T) {
	var phi, psi [][]float64
	names := []string{"GLY", "PRO", "Others"}
	for _, chain := range []string{"A", "B"} {
		tors, err := rama.LoadBackboneTorsions("../test/synthetic.pdb", chain)
		if err != nil {
			Te.Fatal(err)
		}
		rows := tors.PerResidue()
		gly, _ := rama.FilterResidues(rows, []string{"GLY"}, true)
		pro, _ := rama.FilterResidues(rows, []string{"PRO"}, true)
		others, _ := rama.FilterResidues(rows, []string{"GLY", "PRO"}, false)
		phi, psi = nil, nil
		for _, set := range [][]rama.ResidueTorsion{gly, pro, others} {
			var f, s []float64
			for _, r := range set {
				if r.HasPhi && r.HasPsi {
					f = append(f, r.Phi)
					s = append(s, r.Psi)
				}
			}
			phi = append(phi, f)
			psi = append(psi, s)
		}
		name := filepath.Join(Te.TempDir(), "RamaParts"+chain+".png")
		if err := RamaPlotParts(phi, psi, [][]int{nil, nil, {0}}, names, "Parts "+chain, name); err != nil {
			Te.Fatal(err)
		}
		exists(Te, name)
	}
	if err := RamaPlotParts(phi, psi, nil, names[:2], "", filepath.Join(Te.TempDir(), "bad.png")); err == nil {
		Te.Error("a wrong number of names should be an error")
	}
}

func TestRamaDensity(Te *testing.T) {
	grid, err := histo.NewRama(10)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "density.png")
	if err := RamaDensityPlot(grid, "empty", name); err == nil {
		Te.Error("an empty grid should not be plotted")
	}
	for _, chain := range []string{"A", "B"} {
		tors, err := rama.LoadBackboneTorsions("../test/synthetic.pdb", chain)
		if err != nil {
			Te.Fatal(err)
		}
		phi, psi, _ := tors.RamaPairs()
		if err := grid.Add(phi, psi); err != nil {
			Te.Fatal(err)
		}
	}
	if err := RamaDensityPlot(grid, "Density", name); err != nil {
		Te.Fatal(err)
	}
	exists(Te, name)
}
