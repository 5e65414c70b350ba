// Package logfile opens simulator trace files, decompressing them by extension.
package logfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Open returns a reader over the decompressed contents of path. Files ending
// in .gz are gunzipped, .zst and .zstd are zstd-decoded, anything else is read
// as is. The caller must close the returned reader.
func Open(path string) (io.ReadCloser, error) {
	if path == Stdin {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	rc, err := Wrap(f, filepath.Ext(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("opening trace %s: %w", path, err)
	}
	return rc, nil
}

// Wrap decodes r according to a file extension such as ".gz". Closing the
// result closes r.
func Wrap(r io.ReadCloser, ext string) (io.ReadCloser, error) {
	switch strings.ToLower(ext) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip header: %w", err)
		}
		return &stacked{Reader: zr, closers: []io.Closer{zr, r}}, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		return &stacked{Reader: zr, closers: []io.Closer{zstdCloser{zr}, r}}, nil
	default:
		return r, nil
	}
}

// stacked closes a decoder and its underlying file in order.
type stacked struct {
	io.Reader
	closers []io.Closer
}

func (s *stacked) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// zstd.Decoder.Close has no error result.
type zstdCloser struct{ d *zstd.Decoder }

func (z zstdCloser) Close() error {
	z.d.Close()
	return nil
}
