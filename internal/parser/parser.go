package parser

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-mc-reports/internal/model"
)

// ErrUnsupportedInput is returned for sources that cannot be read as a report.
var ErrUnsupportedInput = errors.New("unsupported input")

// StdinSource reads the report from standard input.
const StdinSource = "-"

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	bzipMagic = []byte("BZh")
)

// Parsed is a decoded raw report with the JSON it was read from.
type Parsed struct {
	Source string
	// Hash is the sha256 of the decompressed JSON, used as idempotency key.
	Hash   string
	JSON   []byte
	Report *model.RawReport
}

// ParseReport reads the raw report at source: a file path, an http(s) URL,
// or "-" for stdin. Gzip, bzip2 and zstd inputs are decompressed.
func ParseReport(ctx context.Context, source string) (*Parsed, error) {
	rc, contentEncoding, err := open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	src, closeFn, err := decompress(rc, source, contentEncoding)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return ParseBytes(source, data)
}

// ParseBytes decodes an uncompressed JSON report.
func ParseBytes(source string, data []byte) (*Parsed, error) {
	report, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	return &Parsed{
		Source: source,
		Hash:   fmt.Sprintf("%x", sha256.Sum256(data)),
		JSON:   data,
		Report: report,
	}, nil
}

// Decode reads one raw report from r. Unknown fields are ignored.
func Decode(r io.Reader) (*model.RawReport, error) {
	var report model.RawReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}

func open(ctx context.Context, source string) (io.ReadCloser, string, error) {
	switch {
	case source == StdinSource:
		return io.NopCloser(os.Stdin), "", nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("download %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, "", fmt.Errorf("download %s: HTTP %d", source, resp.StatusCode)
		}
		return resp.Body, resp.Header.Get("Content-Encoding"), nil
	case strings.Contains(source, "://"):
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedInput, source)
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, "", fmt.Errorf("open report: %w", err)
		}
		return f, "", nil
	}
}

// decompress picks a decoder from the source suffix or Content-Encoding,
// falling back to sniffing magic bytes.
func decompress(r io.Reader, source, contentEncoding string) (io.Reader, func(), error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(4)
	noop := func() {}

	switch {
	case strings.HasSuffix(source, ".zst") || bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return dec, dec.Close, nil
	case strings.HasSuffix(source, ".bz2") || bytes.HasPrefix(head, bzipMagic):
		return bzip2.NewReader(br), noop, nil
	case strings.HasSuffix(source, ".gz") || contentEncoding == "gzip" || bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return gz, func() { gz.Close() }, nil
	}
	return br, noop, nil
}
