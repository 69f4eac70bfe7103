package parser

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

const minimalReport = `{
  "match_uuid": "11111111-1111-1111-1111-111111111111",
  "title": "Test match",
  "date": "2024-06-01T20:00:00Z",
  "players": [{"uuid": "00000000-0000-0000-0000-00000000000a", "name": "Alice"}],
  "teams": [], "damages": [], "heals": [], "events": [],
  "unknown_field": 42
}`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

func zstded(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func TestParseFormats(t *testing.T) {
	plain := []byte(minimalReport)
	files := map[string][]byte{
		"report.json":     plain,
		"report.json.gz":  gzipped(t, plain),
		"report.json.zst": zstded(t, plain),
		"sniffed.bin":     zstded(t, plain),
	}

	var hashes []string
	for name, data := range files {
		p, err := ParseReport(context.Background(), writeFile(t, name, data))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if p.Report.Title != "Test match" || len(p.Report.Players) != 1 {
			t.Errorf("%s: unexpected report %+v", name, p.Report)
		}
		hashes = append(hashes, p.Hash)
	}
	for _, h := range hashes[1:] {
		if h != hashes[0] {
			t.Errorf("hash should not depend on compression: %s vs %s", h, hashes[0])
		}
	}
}

func TestParseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(minimalReport))
	}))
	defer srv.Close()

	p, err := ParseReport(context.Background(), srv.URL+"/report.json")
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if p.Report.Title != "Test match" {
		t.Errorf("unexpected title %q", p.Report.Title)
	}

	if _, err := ParseReport(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected an error for HTTP 404")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseReport(context.Background(), "ftp://example.org/r.json"); !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("want ErrUnsupportedInput, got %v", err)
	}
	if _, err := ParseReport(context.Background(), filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := writeFile(t, "bad.json", []byte(`{"match_uuid": "not-a-uuid"}`))
	if _, err := ParseReport(context.Background(), bad); err == nil {
		t.Error("expected decode error for invalid uuid")
	}
}
