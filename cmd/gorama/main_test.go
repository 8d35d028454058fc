package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	rama "github.com/rmera/gorama"
)

const fixture = "../../test/synthetic.pdb"

func TestConfirm(Te *testing.T) {
	answers := map[string]bool{"y\n": true, "YES\n": true, " y \r\n": true, "n\n": false, "\n": false, "": false, "yes": true}
	for a, expected := range answers {
		var out bytes.Buffer
		if confirm(strings.NewReader(a), &out, "Download?") != expected {
			Te.Errorf("wrong result for the answer %q", a)
		}
		if out.String() != "Download? [y/N] " {
			Te.Errorf("wrong prompt %q", out.String())
		}
	}
}

func TestRun(Te *testing.T) {
	dir := Te.TempDir()
	*flagPlot = filepath.Join(dir, "rama.png")
	*flagDensity = filepath.Join(dir, "density.png")
	*flagBackbone = filepath.Join(dir, "backbone.pdb")
	defer func() { *flagPlot, *flagDensity, *flagBackbone = "", "", "" }()
	cfg := DefaultConfig()
	var out bytes.Buffer
	if err := run(context.Background(), cfg, fixture, strings.NewReader(""), &out); err != nil {
		Te.Fatal(err)
	}
	//the first chain is used, chain A has 6 residues.
	for _, s := range []string{"MET", "PRO", "Circular means over 4 residues"} {
		if !strings.Contains(out.String(), s) {
			Te.Errorf("%q not in the output:\n%s", s, out.String())
		}
	}
	if strings.Contains(out.String(), "LYS") {
		Te.Error("only the first chain should be used")
	}
	for _, f := range []string{*flagPlot, *flagDensity, *flagBackbone} {
		if _, err := os.Stat(f); err != nil {
			Te.Error(err)
		}
	}
	bb, err := os.ReadFile(*flagBackbone)
	if err != nil {
		Te.Fatal(err)
	}
	if n := strings.Count(string(bb), "ATOM  "); n != 18 {
		Te.Errorf("expected 18 backbone atoms, got %d", n)
	}
}

func TestRunJSON(Te *testing.T) {
	*flagJSON = true
	defer func() { *flagJSON = false }()
	cfg := DefaultConfig()
	cfg.Chain = "B"
	var out bytes.Buffer
	if err := run(context.Background(), cfg, fixture, strings.NewReader(""), &out); err != nil {
		Te.Fatal(err)
	}
	var rows []jsonRow
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		Te.Fatal(err)
	}
	if len(rows) != 3 || rows[0].Phi != nil || rows[0].Psi == nil || rows[2].Psi != nil || rows[1].ResName != "VAL" {
		Te.Errorf("wrong rows %s", out.String())
	}
}

func TestPlotPairs(Te *testing.T) {
	tors, err := rama.LoadBackboneTorsions(fixture, "A")
	if err != nil {
		Te.Fatal(err)
	}
	rows := tors.PerResidue()
	phi, psi := plotPairs(rows, nil)
	if len(phi) != 4 || len(psi) != 4 {
		Te.Errorf("expected 4 residues with phi and psi, got %d %d", len(phi), len(psi))
	}
	//the last glycine has no psi
	phi, psi = plotPairs(rows, []string{"GLY"})
	if len(phi) != 1 || phi[0] != rows[1].Phi || psi[0] != rows[1].Psi {
		Te.Errorf("wrong glycine pairs %v %v", phi, psi)
	}
}

func TestResidueNames(Te *testing.T) {
	names := residueNames("gly, Pro ,,ALA ")
	if strings.Join(names, ",") != "GLY,PRO,ALA" {
		Te.Errorf("wrong names %q", names)
	}
	if n := residueNames(""); len(n) != 0 {
		Te.Errorf("no names expected, got %q", n)
	}
}

func TestFirstChain(Te *testing.T) {
	if c := firstChain([]string{"", "B", "C"}); c != "B" {
		Te.Errorf("expected chain B, got %q", c)
	}
	if c := firstChain([]string{"A", "B"}); c != "A" {
		Te.Errorf("expected chain A, got %q", c)
	}
	if c := firstChain([]string{""}); c != "" {
		Te.Errorf("expected the blank chain, got %q", c)
	}
}

func TestLocate(Te *testing.T) {
	raw, err := os.ReadFile(fixture)
	if err != nil {
		Te.Fatal(err)
	}
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write(raw)
	w.Close()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(gz.Bytes())
	}))
	defer srv.Close()
	cfg := DefaultConfig()
	cfg.CacheDir = Te.TempDir()
	cfg.BaseURL = srv.URL + "/"
	var out bytes.Buffer
	if _, err := locate(context.Background(), cfg, "9xyz", strings.NewReader("n\n"), &out); err == nil {
		Te.Error("the download was refused, it should be an error")
	}
	path, err := locate(context.Background(), cfg, "9xyz", strings.NewReader("y\n"), &out)
	if err != nil {
		Te.Fatal(err)
	}
	if path != filepath.Join(cfg.CacheDir, "9XYZ.pdb") {
		Te.Errorf("wrong path %s", path)
	}
	//cached, no questions asked
	out.Reset()
	if _, err := locate(context.Background(), cfg, "9xyz", strings.NewReader(""), &out); err != nil || out.Len() != 0 {
		Te.Errorf("the cached file should be used without asking: %v %q", err, out.String())
	}
	if _, err := locate(context.Background(), cfg, "not-an-id", nil, &out); err == nil {
		Te.Error("an argument that is neither a file nor an ID should be an error")
	}
	if p, err := locate(context.Background(), cfg, fixture, nil, &out); err != nil || p != fixture {
		Te.Errorf("an existing file should be used as it is %s %v", p, err)
	}
}
