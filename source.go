/*
 * source.go, part of gorama.
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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// source is a decompressing reader that also closes the underlying file.
type source struct {
	io.Reader
	closers []func() error
}

// Close closes the decompressor, if any, and the file. It returns the first error found.
func (s *source) Close() error {
	var ret error
	for _, c := range s.closers {
		if err := c(); err != nil && ret == nil {
			ret = err
		}
	}
	return ret
}

// *zstd.Decoder's Close doesn't return an error.
func zstdClose(d *zstd.Decoder) func() error {
	return func() error {
		d.Close()
		return nil
	}
}

// openSource opens fname for reading, decompressing on the fly files with the .gz or
// .zst extensions. Other files are read as they are.
func openSource(fname string) (io.ReadCloser, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, &FileAccessError{Path: fname, Err: err}
	}
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".gz":
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, &FileAccessError{Path: fname, Err: err}
		}
		return &source{Reader: r, closers: []func() error{r.Close, f.Close}}, nil
	case ".zst", ".zstd":
		r, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			f.Close()
			return nil, &FileAccessError{Path: fname, Err: err}
		}
		return &source{Reader: r, closers: []func() error{zstdClose(r), f.Close}}, nil
	}
	return f, nil
}
