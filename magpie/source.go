package magpie

import (
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	// TableExt is the file extension of property tables.
	TableExt = ".table"

	// UnitsDoc is the name of the metadata document mapping property names
	// to their declared units.
	UnitsDoc = "README.txt"
)

// Compression suffixes recognized on table files.
const (
	zstExt = ".zst"
	gzExt  = ".gz"
	lz4Ext = ".lz4"
)

// Source enumerates and streams raw property tables. Implementations exist
// for local directories, in-memory fixtures, S3 and MinIO buckets.
type Source interface {
	// List returns the property names available from this source.
	List(ctx context.Context) ([]string, error)

	// Open streams the decoded table text for a property. The caller owns
	// the returned reader and must close it.
	Open(ctx context.Context, property string) (io.ReadCloser, error)

	// Units returns declared unit strings by property name. Sources without
	// unit metadata return an empty map.
	Units(ctx context.Context) (map[string]string, error)
}

// PropertyFromFilename strips compression and table suffixes from a file
// name, returning false for files that are not property tables.
func PropertyFromFilename(name string) (string, bool) {
	base := path.Base(name)

	for _, ext := range []string{zstExt, gzExt, lz4Ext} {
		base = strings.TrimSuffix(base, ext)
	}

	if !strings.HasSuffix(base, TableExt) {
		return "", false
	}

	return strings.TrimSuffix(base, TableExt), true
}

// candidateFilenames returns the file names a property may be stored under,
// plain first.
func candidateFilenames(property string) []string {
	name := property + TableExt

	return []string{name, name + zstExt, name + gzExt, name + lz4Ext}
}

// DecompressReader wraps r with the decoder matching the compression suffix
// of name. Closing the returned reader closes r as well.
func DecompressReader(name string, r io.ReadCloser) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, zstExt):
		zr, err := zstd.NewReader(r)
		if err != nil {
			r.Close()
			return nil, err
		}

		return &layeredReadCloser{
			Reader: zr,
			closers: []func() error{
				func() error { zr.Close(); return nil },
				r.Close,
			},
		}, nil
	case strings.HasSuffix(name, gzExt):
		gr, err := gzip.NewReader(r)
		if err != nil {
			r.Close()
			return nil, err
		}

		return &layeredReadCloser{
			Reader:  gr,
			closers: []func() error{gr.Close, r.Close},
		}, nil
	case strings.HasSuffix(name, lz4Ext):
		return &layeredReadCloser{
			Reader:  lz4.NewReader(r),
			closers: []func() error{r.Close},
		}, nil
	default:
		return r, nil
	}
}

// layeredReadCloser closes a decoder and its underlying stream in order.
type layeredReadCloser struct {
	io.Reader
	closers []func() error
}

func (l *layeredReadCloser) Close() error {
	var firstErr error

	for _, close := range l.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// ParseUnitsDoc reads the README format: a line naming "<Property>.table"
// opens a section, and a following "Units: <unit>" line declares its unit.
func ParseUnitsDoc(r io.Reader) (map[string]string, error) {
	units := make(map[string]string)

	var current string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		switch {
		case strings.HasSuffix(line, TableExt):
			current = strings.TrimSuffix(line, TableExt)
		case strings.HasPrefix(line, "Units:") && current != "":
			units[current] = strings.TrimSpace(strings.TrimPrefix(line, "Units:"))
		}
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return units, nil
}
