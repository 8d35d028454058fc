package fetch

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestValidID(Te *testing.T) {
	for _, id := range []string{"1axc", "2C9V", "9xyz", "1a0B"} {
		if err := ValidID(id); err != nil {
			Te.Errorf("%s should be valid: %v", id, err)
		}
	}
	for _, id := range []string{"", "1ax", "1axc2", "axc1", "1a-c", "1a c"} {
		if err := ValidID(id); !errors.Is(err, ErrInvalidID) {
			Te.Errorf("%q should be invalid, got %v", id, err)
		}
	}
}

func gzipped(Te *testing.T, data string) []byte {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	if _, err := w.Write([]byte(data)); err != nil {
		Te.Fatal(err)
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	return b.Bytes()
}

const pdbData = "ATOM      1  N   MET A  10       0.000   0.000   0.000  1.00 20.00           N\nEND\n"

func TestFetch(Te *testing.T) {
	body := gzipped(Te, pdbData)
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.URL.Path != "/1AXC.pdb.gz" {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()
	var logs bytes.Buffer
	F := New(filepath.Join(Te.TempDir(), "cache"))
	F.Client = srv.Client()
	F.BaseURL = srv.URL + "/"
	F.Log = log.New(&logs, "", 0)
	if F.Cached("1axc") {
		Te.Fatal("nothing should be cached yet")
	}
	path, err := F.Fetch(context.Background(), "1axc")
	if err != nil {
		Te.Fatal(err)
	}
	if path != F.Path("1AXC") || !F.Cached("1axc") {
		Te.Errorf("wrong path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		Te.Fatal(err)
	}
	if string(data) != pdbData {
		Te.Errorf("wrong data downloaded %q", data)
	}
	//the second time, the cache is used.
	if _, err := F.Fetch(context.Background(), "1AXC"); err != nil {
		Te.Fatal(err)
	}
	if n := atomic.LoadInt32(&requests); n != 1 {
		Te.Errorf("expected 1 request, got %d", n)
	}
	if !strings.Contains(logs.String(), "found in") {
		Te.Errorf("cache hit not logged: %q", logs.String())
	}
	entries, _ := os.ReadDir(F.Dir)
	if len(entries) != 1 {
		Te.Errorf("temporary files left in the cache: %v", entries)
	}
}

func TestFetchErrors(Te *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/2BAD") {
			w.Write([]byte("this is not gzip"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()
	F := New(Te.TempDir())
	F.Client = srv.Client()
	F.BaseURL = srv.URL + "/"
	_, err := F.Fetch(context.Background(), "9zzz")
	var serr *StatusError
	if !errors.As(err, &serr) || serr.Code != http.StatusNotFound {
		Te.Errorf("expected a 404 StatusError, got %v", err)
	}
	if _, err = F.Fetch(context.Background(), "2bad"); err == nil {
		Te.Error("a corrupted download should be an error")
	}
	if F.Cached("2bad") || F.Cached("9zzz") {
		Te.Error("failed downloads should not be cached")
	}
	if _, err = F.Fetch(context.Background(), "zzzz"); !errors.Is(err, ErrInvalidID) {
		Te.Errorf("expected ErrInvalidID, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err = F.Fetch(ctx, "1axc"); !errors.Is(err, context.Canceled) {
		Te.Errorf("expected a cancellation error, got %v", err)
	}
}
