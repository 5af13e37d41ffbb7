// internal/fileio/open.go
package fileio

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// Stdin is the path that reads standard input.
const Stdin = "-"

// Open returns a reader for path. "-" is stdin; a ".gz" suffix is decompressed.
func Open(path string) (io.ReadCloser, error) {
	if path == Stdin {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
