package minio

import (
	"context"
	"io"
	"path"
	"sort"
	"sync"

	"github.com/hupe1980/matgo/magpie"
	"github.com/minio/minio-go/v7"
)

// Source implements magpie.Source on top of a MinIO bucket. Object naming
// follows the same rules as the local directory source.
type Source struct {
	client *minio.Client
	bucket string
	prefix string

	mu    sync.RWMutex
	files map[string]string // property -> object key
}

// NewSource creates a source reading from bucket under rootPrefix
// (e.g. "datasets/magpie/").
func NewSource(client *minio.Client, bucket, rootPrefix string) *Source {
	return &Source{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Source) key(name string) string {
	return path.Join(s.prefix, name)
}

func (s *Source) scan(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	if s.files != nil {
		files := s.files
		s.mu.RUnlock()

		return files, nil
	}
	s.mu.RUnlock()

	files := make(map[string]string)

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}

		property, ok := magpie.PropertyFromFilename(obj.Key)
		if !ok {
			continue
		}

		if existing, dup := files[property]; dup && len(existing) <= len(obj.Key) {
			continue
		}

		files[property] = obj.Key
	}

	s.mu.Lock()
	if s.files == nil {
		s.files = files
	}

	files = s.files
	s.mu.Unlock()

	return files, nil
}

// List implements the magpie.Source interface.
func (s *Source) List(ctx context.Context) ([]string, error) {
	files, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for property := range files {
		names = append(names, property)
	}

	sort.Strings(names)

	return names, nil
}

// Open implements the magpie.Source interface.
func (s *Source) Open(ctx context.Context, property string) (io.ReadCloser, error) {
	files, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	key, ok := files[property]
	if !ok {
		return nil, &magpie.ErrUnknownProperty{Property: property}
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject is lazy; Stat forces the request so missing objects fail
	// here instead of on first read.
	if _, err := obj.Stat(); err != nil {
		obj.Close()

		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, &magpie.ErrUnknownProperty{Property: property}
		}

		return nil, err
	}

	return magpie.DecompressReader(key, obj)
}

// Units implements the magpie.Source interface. A missing README object is
// not an error.
func (s *Source) Units(ctx context.Context) (map[string]string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(magpie.UnitsDoc), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	if _, err := obj.Stat(); err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return map[string]string{}, nil
		}

		return nil, err
	}

	return magpie.ParseUnitsDoc(obj)
}
