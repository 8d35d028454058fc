/*
 * main.go, part of gorama.
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

// gorama prints the backbone torsions of a protein chain, and
// produces Ramachandran plots.
//
// Usage:
//
//	gorama [flags] <PDB ID | PDB file>
//
// If the argument is not an existing file, it is taken as a PDB ID, and the
// structure is downloaded from the RCSB (after asking) to a cache directory.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	rama "github.com/rmera/gorama"
	"github.com/rmera/gorama/chemplot"
	"github.com/rmera/gorama/fetch"
	"github.com/rmera/gorama/histo"
	"gonum.org/v1/plot/vg"
)

var (
	flagConfig   = flag.String("config", "", "TOML configuration file.")
	flagChain    = flag.String("chain", "", "Chain to analyze. By default, the first chain in the file.")
	flagCache    = flag.String("cache", "", "Directory where downloaded structures are kept.")
	flagYes      = flag.Bool("yes", false, "Download structures without asking.")
	flagDump     = flag.Bool("dump", false, "Print the PDB file before the torsions.")
	flagPlot     = flag.String("plot", "", "Write a Ramachandran plot to this file (png, svg, pdf...).")
	flagDensity  = flag.String("density", "", "Write a Ramachandran density plot to this file.")
	flagBackbone = flag.String("backbone", "", "Write the N, CA and C atoms of the chain to this PDB file.")
	flagOnly     = flag.String("only", "", "Comma-separated residue names to include in the plots, e.g. GLY,PRO.")
	flagJSON     = flag.Bool("json", false, "Print the torsions as JSON instead of a table.")
)

func init() {
	log.SetFlags(0)
	log.SetPrefix("gorama: ")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <PDB ID | PDB file>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	cfg := DefaultConfig()
	if *flagConfig != "" {
		var err error
		if cfg, err = ReadConfig(*flagConfig); err != nil {
			log.Fatal(err)
		}
	}
	cfg.merge(&Config{Chain: *flagChain, CacheDir: *flagCache, AssumeYes: *flagYes})
	if err := cfg.check(); err != nil {
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, cfg, flag.Arg(0), os.Stdin, os.Stdout); err != nil {
		stop()
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *Config, arg string, in io.Reader, out io.Writer) error {
	path, err := locate(ctx, cfg, arg, in, out)
	if err != nil {
		return err
	}
	if *flagDump {
		if err := dump(out, path); err != nil {
			return err
		}
	}
	table, err := rama.ReadAtomTableFile(path)
	if err != nil {
		return err
	}
	chain := cfg.Chain
	if chains := table.Chains(); chain == "" && len(chains) > 1 {
		chain = firstChain(chains)
		log.Printf("%s has %d chains (%s), using chain %s", path, len(chains), strings.Join(chains, ", "), chain)
	}
	bb, err := rama.SelectBackbone(table, chain)
	if err != nil {
		return err
	}
	tors, err := rama.Torsions(bb)
	if err != nil {
		return err
	}
	if *flagBackbone != "" {
		if err := writeBackbone(*flagBackbone, table, chain); err != nil {
			return err
		}
	}
	rows := tors.PerResidue()
	if *flagJSON {
		err = writeJSON(out, rows)
	} else {
		err = writeTable(out, rows)
	}
	if err != nil {
		return err
	}
	phi, psi := plotPairs(rows, residueNames(*flagOnly))
	chemplot.Size = vg.Length(cfg.Plot.SizeInches) * vg.Inch
	if *flagPlot != "" {
		if err := chemplot.RamaPlot(phi, psi, nil, cfg.Plot.Title, *flagPlot); err != nil {
			return err
		}
	}
	if *flagDensity != "" {
		grid, err := histo.NewRama(cfg.Plot.DensityStep)
		if err != nil {
			return err
		}
		if err := grid.Add(phi, psi); err != nil {
			return err
		}
		if err := chemplot.RamaDensityPlot(grid, cfg.Plot.Title, *flagDensity); err != nil {
			return err
		}
	}
	return nil
}

// firstChain returns the first non-blank chain identifier in chains, or
// the first one, if all are blank.
func firstChain(chains []string) string {
	for _, c := range chains {
		if c != "" {
			return c
		}
	}
	return chains[0]
}

// residueNames returns the upper-case residue names in the comma-separated list s.
func residueNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.ToUpper(strings.TrimSpace(n)); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// locate returns arg if it is an existing file. Otherwise, arg is taken as a PDB ID, and
// the path to the cached file is returned, after downloading it if needed.
func locate(ctx context.Context, cfg *Config, arg string, in io.Reader, out io.Writer) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return arg, nil
	}
	if err := fetch.ValidID(arg); err != nil {
		return "", fmt.Errorf("%s is neither a file nor a PDB ID", arg)
	}
	F := fetch.New(cfg.CacheDir)
	F.BaseURL = cfg.BaseURL
	F.Client.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	F.Log = log.Default()
	if !F.Cached(arg) && !cfg.AssumeYes {
		q := fmt.Sprintf("%s is not in %s. Download it from %s?", strings.ToUpper(arg), cfg.CacheDir, cfg.BaseURL)
		if !confirm(in, out, q) {
			return "", fmt.Errorf("%s not downloaded", strings.ToUpper(arg))
		}
	}
	return F.Fetch(ctx, arg)
}

// confirm asks question in out, and returns true if the answer read from in is yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// dump copies the file path to out, as it is.
func dump(out io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(out, f)
	return err
}

func writeBackbone(name string, table *rama.AtomTable, chain string) error {
	bb := table.Select(func(at *rama.Atom) bool {
		return at.Chain == chain && (at.Name == "N" || at.Name == "CA" || at.Name == "C")
	})
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := rama.WriteAtomTable(f, bb); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// plotPairs returns the phi, psi pairs of the residues that have both, and
// a name in only. If only is empty, all the residues are considered.
func plotPairs(rows []rama.ResidueTorsion, only []string) (phi, psi []float64) {
	if len(only) > 0 {
		rows, _ = rama.FilterResidues(rows, only, true)
	}
	for _, r := range rows {
		if r.HasPhi && r.HasPsi {
			phi = append(phi, r.Phi)
			psi = append(psi, r.Psi)
		}
	}
	return phi, psi
}

func icode(b byte) string {
	if b == ' ' || b == 0 {
		return ""
	}
	return string(rune(b))
}

func angle(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func writeTable(out io.Writer, rows []rama.ResidueTorsion) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Chain\tResidue\tName\tPhi\tPsi\tOmega\t")
	phi, psi := plotPairs(rows, nil)
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d%s\t%s\t%s\t%s\t%s\t\n", r.Chain, r.MolID, icode(r.ICode), r.MolName,
			angle(r.Phi, r.HasPhi), angle(r.Psi, r.HasPsi), angle(r.Omega, r.HasOmega))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\nCircular means over %d residues: phi %.2f psi %.2f\n", len(phi), rama.CircularMean(phi), rama.CircularMean(psi))
	return err
}

type jsonRow struct {
	Chain   string   `json:"chain"`
	ResSeq  int      `json:"resSeq"`
	ICode   string   `json:"iCode,omitempty"`
	ResName string   `json:"resName"`
	Phi     *float64 `json:"phi"`
	Psi     *float64 `json:"psi"`
	Omega   *float64 `json:"omega"`
}

func writeJSON(out io.Writer, rows []rama.ResidueTorsion) error {
	ptr := func(v float64, ok bool) *float64 {
		if !ok {
			return nil
		}
		return &v
	}
	js := make([]jsonRow, len(rows))
	for i, r := range rows {
		js[i] = jsonRow{r.Chain, r.MolID, icode(r.ICode), r.MolName,
			ptr(r.Phi, r.HasPhi), ptr(r.Psi, r.HasPsi), ptr(r.Omega, r.HasOmega)}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(js)
}
