package magpie

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DirSource serves property tables from a local directory. Tables may be
// stored plain or compressed with zstd, gzip or lz4, distinguished by file
// suffix. Units come from an optional README.txt in the same directory.
type DirSource struct {
	dir string
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// List implements the Source interface.
func (s *DirSource) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var out []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		property, ok := PropertyFromFilename(entry.Name())
		if !ok {
			continue
		}

		if _, dup := seen[property]; dup {
			continue
		}

		seen[property] = struct{}{}
		out = append(out, property)
	}

	sort.Strings(out)

	return out, nil
}

// Open implements the Source interface.
func (s *DirSource) Open(_ context.Context, property string) (io.ReadCloser, error) {
	for _, name := range candidateFilenames(property) {
		f, err := os.Open(filepath.Join(s.dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return DecompressReader(name, f)
	}

	return nil, &ErrUnknownProperty{Property: property}
}

// Units implements the Source interface. A missing README is not an error.
func (s *DirSource) Units(_ context.Context) (map[string]string, error) {
	f, err := os.Open(filepath.Join(s.dir, UnitsDoc))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}

	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseUnitsDoc(f)
}
