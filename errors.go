/*
 * errors.go, part of gorama.
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
	"fmt"
)

// Error is the interface for errors that all the types in this package implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// The decoration slice contains the functions in the calling stack that the error went through,
// the innermost first. If passed an empty string, Decorate just returns the current value.
type Error interface {
	Error() string
	Decorate(string) []string
}

// ErrShortLine is the cause of a ParseError for ATOM lines shorter than the
// columns that must be present (up to the temperature factor).
var ErrShortLine = errors.New("ATOM record shorter than 66 columns")

// ErrNotFinite is the cause of a ParseError for numeric columns holding NaN or Inf.
var ErrNotFinite = errors.New("not a finite number")

type deco []string

func (d *deco) decorate(dec string) []string {
	if dec != "" {
		*d = append(*d, dec)
	}
	return *d
}

// FileAccessError is returned when a file can't be opened or read.
type FileAccessError struct {
	Path string
	Err  error
	deco deco
}

func (err *FileAccessError) Error() string {
	if err.Path == "" {
		return fmt.Sprintf("gorama: can't read input: %v", err.Err)
	}
	return fmt.Sprintf("gorama: can't read %s: %v", err.Path, err.Err)
}

func (err *FileAccessError) Unwrap() error { return err.Err }

func (err *FileAccessError) Decorate(dec string) []string { return err.deco.decorate(dec) }

// ParseError is returned when an ATOM record has a numeric column that can't
// be converted, or is too short. Line is 1-based.
type ParseError struct {
	Line  int
	Field string
	Text  string
	Err   error
	deco  deco
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("gorama: line %d: can't parse %s from %q: %v", err.Line, err.Field, err.Text, err.Err)
}

func (err *ParseError) Unwrap() error { return err.Err }

func (err *ParseError) Decorate(dec string) []string { return err.deco.decorate(dec) }

// AlignmentError is returned when the N, CA and C atoms can't be put
// in one-to-one correspondence with the residues of a chain.
// Residue and Atom are set when the problem concerns a particular residue/atom.
type AlignmentError struct {
	Residue ResidueKey
	Atom    string
	msg     string
	deco    deco
}

func (err *AlignmentError) Error() string { return "gorama: " + err.msg }

func (err *AlignmentError) Decorate(dec string) []string { return err.deco.decorate(dec) }

// DegenerateGeometryError is returned when a vector needed for a dihedral has zero length.
// Vector is one of the bond vectors ("b0", "b1", "b2") or one of the plane normals
// ("b0xb1", "b1xb2"), which vanish when consecutive bonds are collinear. Index is the
// position in the torsion array being computed.
type DegenerateGeometryError struct {
	Angle  string
	Index  int
	Vector string
	Norm   float64
	deco   deco
}

func (err *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("gorama: degenerate geometry for %s %d: %s has a norm of %g", err.Angle, err.Index, err.Vector, err.Norm)
}

func (err *DegenerateGeometryError) Decorate(dec string) []string { return err.deco.decorate(dec) }

// errDecorate decorates err with the caller's name, if err implements Error, and returns it.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}
