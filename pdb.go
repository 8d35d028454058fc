/*
 * pdb.go, part of gorama.
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// minATOMLen is the number of columns an ATOM line needs, up to the temperature factor.
// Element and charge (columns 77-80) are often missing, and are optional.
const minATOMLen = 66

// IsAtomLine returns true if the record name of the line (columns 1-6) is "ATOM".
func IsAtomLine(line string) bool {
	if len(line) > 6 {
		line = line[:6]
	}
	return strings.TrimSpace(line) == "ATOM"
}

// ParseAtomLine parses an ATOM line of a PDB file. It returns an Atom
// with the info except for the coordinates, which are returned
// separately. lineno is only used to report errors.
// Any numeric field that can't be read results in a *ParseError.
func ParseAtomLine(line string, lineno int) (*Atom, [3]float64, error) {
	var coords [3]float64
	line = strings.TrimRight(line, "\r\n")
	if len(line) < minATOMLen {
		return nil, coords, &ParseError{Line: lineno, Field: "record", Text: line, Err: ErrShortLine}
	}
	//we keep the first error and check at the end of the line.
	var perr *ParseError
	atoi := func(field, s string) int {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil && perr == nil {
			perr = &ParseError{Line: lineno, Field: field, Text: s, Err: err}
		}
		return n
	}
	atof := func(field, s string) float64 {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && (math.IsNaN(n) || math.IsInf(n, 0)) {
			err = ErrNotFinite
		}
		if err != nil && perr == nil {
			perr = &ParseError{Line: lineno, Field: field, Text: s, Err: err}
		}
		return n
	}
	atom := new(Atom)
	atom.ID = atoi("serial", line[6:11])
	atom.Name = strings.TrimSpace(line[12:16])
	atom.AltLoc = line[16]
	atom.MolName = strings.TrimSpace(line[17:20])
	atom.MolName1 = three2OneLetter[atom.MolName]
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.MolID = atoi("resSeq", line[22:26])
	atom.ICode = line[26]
	coords[0] = atof("x", line[30:38])
	coords[1] = atof("y", line[38:46])
	coords[2] = atof("z", line[46:54])
	atom.Occupancy = atof("occupancy", line[54:60])
	atom.Bfactor = atof("tempFactor", line[60:66])
	//The element and charge columns are read if present.
	if len(line) > 76 {
		atom.Symbol = strings.TrimSpace(line[76:min(78, len(line))])
	}
	if len(line) > 78 {
		atom.Charge = strings.TrimSpace(line[78:min(80, len(line))])
	}
	if perr != nil {
		return nil, [3]float64{}, perr
	}
	return atom, coords, nil
}

// ReadAtomTable reads the ATOM records from r, in one forward pass, and returns them
// as an AtomTable. All other records are ignored. If any ATOM
// record can't be parsed, the reading stops, and no table is returned.
func ReadAtomTable(r io.Reader) (*AtomTable, error) {
	pdb := bufio.NewReader(r)
	atoms := make([]*Atom, 0, 1000)
	coords := make([]float64, 0, 3000)
	for lineno := 1; ; lineno++ {
		line, err := pdb.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, errDecorate(&FileAccessError{Err: err}, "ReadAtomTable")
		}
		//the last line might not end in '\n', so we process before checking for EOF.
		if IsAtomLine(line) {
			at, c, perr := ParseAtomLine(line, lineno)
			if perr != nil {
				return nil, errDecorate(perr, "ReadAtomTable")
			}
			atoms = append(atoms, at)
			coords = append(coords, c[:]...)
		}
		if err != nil {
			break
		}
	}
	return newAtomTable(atoms, coords), nil
}

// ReadAtomTableFile reads the ATOM records of the PDB file fname. Files ending in .gz or .zst
// are decompressed on the fly. Errors opening or reading the file are returned as *FileAccessError.
func ReadAtomTableFile(fname string) (*AtomTable, error) {
	src, err := openSource(fname)
	if err != nil {
		return nil, errDecorate(err, "ReadAtomTableFile")
	}
	defer src.Close()
	table, err := ReadAtomTable(src)
	if err != nil {
		var ferr *FileAccessError
		if errors.As(err, &ferr) && ferr.Path == "" {
			ferr.Path = fname
		}
		return nil, errDecorate(err, "ReadAtomTableFile")
	}
	return table, nil
}

// FormatAtomLine returns the ATOM record for at, with coordinates c, without the
// trailing newline. Atom names shorter than 4 characters start at column 14.
func FormatAtomLine(at *Atom, c [3]float64) string {
	name := at.Name
	if len(name) < 4 {
		name = " " + name
	}
	chain := at.Chain
	if chain == "" {
		chain = " "
	}
	return fmt.Sprintf("%-6s%5d %-4s%c%3s %1s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s%2s",
		"ATOM", at.ID, name, blankIfZero(at.AltLoc), at.MolName, chain, at.MolID, blankIfZero(at.ICode),
		c[0], c[1], c[2], at.Occupancy, at.Bfactor, at.Symbol, at.Charge)
}

// WriteAtomTable writes the atoms in T to w in PDB format. A TER record
// is written every time the chain changes, and after the last atom.
func WriteAtomTable(w io.Writer, T *AtomTable) error {
	out := bufio.NewWriter(w)
	fmt.Fprint(out, "REMARK     WRITTEN WITH GORAMA\n")
	for i, at := range T.atoms {
		if i > 0 && at.Chain != T.atoms[i-1].Chain {
			fmt.Fprintln(out, "TER")
		}
		if _, err := fmt.Fprintln(out, FormatAtomLine(at, T.coords.Vec(i))); err != nil {
			return err
		}
	}
	if T.Len() > 0 {
		fmt.Fprintln(out, "TER")
	}
	fmt.Fprintln(out, "END")
	return out.Flush()
}

func blankIfZero(b byte) byte {
	if b == 0 {
		return ' '
	}
	return b
}
