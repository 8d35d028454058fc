/*
 * fetch.go, part of gorama.
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

// Package fetch downloads structures from the Protein Data Bank and keeps
// them in a local cache directory.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// DefaultBaseURL is the RCSB download service. Files are requested as
// DefaultBaseURL+ID+".pdb.gz".
const DefaultBaseURL = "https://files.rcsb.org/download/"

// DefaultTimeout is the timeout of the HTTP client created by New.
const DefaultTimeout = 120 * time.Second

// ErrInvalidID is returned (wrapped) for strings that are not PDB identifiers.
var ErrInvalidID = errors.New("invalid PDB ID")

// StatusError is returned when the server answers with a status other than 200.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (err *StatusError) Error() string {
	return fmt.Sprintf("gorama/fetch: %s: %s", err.URL, err.Status)
}

// ValidID returns nil if id has the form of a PDB identifier: 4 characters,
// a digit followed by 3 letters or digits. Case is not considered.
func ValidID(id string) error {
	if len(id) != 4 {
		return fmt.Errorf("gorama/fetch: %w %q: it must have 4 characters", ErrInvalidID, id)
	}
	if id[0] < '0' || id[0] > '9' {
		return fmt.Errorf("gorama/fetch: %w %q: it must start with a digit", ErrInvalidID, id)
	}
	for _, c := range id[1:] {
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
			return fmt.Errorf("gorama/fetch: %w %q: %q is not a letter or a digit", ErrInvalidID, id, c)
		}
	}
	return nil
}

// Fetcher downloads PDB files into the directory Dir.
type Fetcher struct {
	Client  *http.Client
	BaseURL string
	Dir     string
	Log     *log.Logger //can be nil, in which case nothing is logged.
}

// New returns a Fetcher that stores the files in dir, and downloads them from the RCSB.
func New(dir string) *Fetcher {
	return &Fetcher{
		Client:  &http.Client{Timeout: DefaultTimeout},
		BaseURL: DefaultBaseURL,
		Dir:     dir,
	}
}

func (F *Fetcher) logf(format string, v ...interface{}) {
	if F.Log != nil {
		F.Log.Printf(format, v...)
	}
}

// Path returns the path where the structure id is (or would be) cached.
func (F *Fetcher) Path(id string) string {
	return filepath.Join(F.Dir, strings.ToUpper(id)+".pdb")
}

// Cached returns true if the structure id is already in the cache.
func (F *Fetcher) Cached(id string) bool {
	info, err := os.Stat(F.Path(id))
	return err == nil && info.Mode().IsRegular()
}

// Fetch returns the path to the decompressed PDB file for the structure id,
// downloading it first if it is not in the cache.
func (F *Fetcher) Fetch(ctx context.Context, id string) (string, error) {
	if err := ValidID(id); err != nil {
		return "", err
	}
	path := F.Path(id)
	if F.Cached(id) {
		F.logf("%s found in %s", strings.ToUpper(id), path)
		return path, nil
	}
	if err := os.MkdirAll(F.Dir, 0o755); err != nil {
		return "", fmt.Errorf("gorama/fetch: can't create the cache: %w", err)
	}
	url := F.BaseURL + strings.ToUpper(id) + ".pdb.gz"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("gorama/fetch: %w", err)
	}
	client := F.Client
	if client == nil {
		client = http.DefaultClient
	}
	F.logf("Downloading %s", url)
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gorama/fetch: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", &StatusError{URL: url, Code: res.StatusCode, Status: res.Status}
	}
	if err := writeGunzipped(path, res.Body); err != nil {
		return "", fmt.Errorf("gorama/fetch: %s: %w", url, err)
	}
	F.logf("%s saved to %s", strings.ToUpper(id), path)
	return path, nil
}

// writeGunzipped decompresses r into path. The data are written to a temporary file
// in the same directory, which is renamed to path only if everything went well.
func writeGunzipped(path string, r io.Reader) error {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer zr.Close()
	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //no-op after the rename
	if _, err := io.Copy(tmp, zr); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
