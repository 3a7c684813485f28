package s3

import (
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/matgo/magpie"
)

// Client is the interface for the S3 operations used by the source.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// UnitsProvider supplies unit metadata independently of the bucket content.
type UnitsProvider interface {
	Units(ctx context.Context) (map[string]string, error)
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithUnitsProvider overrides README-based unit discovery, typically with a
// DynamoDB UnitRegistry.
func WithUnitsProvider(p UnitsProvider) SourceOption {
	return func(s *Source) {
		s.units = p
	}
}

// Source implements magpie.Source on top of an S3 bucket. The object listing
// under the root prefix is scanned once and cached; tables may be stored
// plain or compressed, distinguished by key suffix.
type Source struct {
	client Client
	bucket string
	prefix string
	units  UnitsProvider

	mu    sync.RWMutex
	files map[string]string // property -> object key
}

// NewSource creates a source reading from bucket under rootPrefix
// (e.g. "datasets/magpie/").
func NewSource(client Client, bucket, rootPrefix string, optFns ...SourceOption) *Source {
	s := &Source{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}

	for _, fn := range optFns {
		fn(s)
	}

	return s
}

func (s *Source) key(name string) string {
	return path.Join(s.prefix, name)
}

// scan lists the bucket prefix once and maps property names to object keys,
// preferring the uncompressed variant when a table is stored both ways.
func (s *Source) scan(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	if s.files != nil {
		files := s.files
		s.mu.RUnlock()

		return files, nil
	}
	s.mu.RUnlock()

	files := make(map[string]string)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)

			property, ok := magpie.PropertyFromFilename(key)
			if !ok {
				continue
			}

			if existing, dup := files[property]; dup && len(existing) <= len(key) {
				continue
			}

			files[property] = key
		}
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

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, &magpie.ErrUnknownProperty{Property: property}
		}

		return nil, err
	}

	return magpie.DecompressReader(key, resp.Body)
}

// Units implements the magpie.Source interface. Without a UnitsProvider the
// units come from the bucket's README object; a missing README is not an
// error.
func (s *Source) Units(ctx context.Context) (map[string]string, error) {
	if s.units != nil {
		return s.units.Units(ctx)
	}

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(magpie.UnitsDoc)),
	})
	if err != nil {
		if isNotFound(err) {
			return map[string]string{}, nil
		}

		return nil, err
	}
	defer resp.Body.Close()

	return magpie.ParseUnitsDoc(resp.Body)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var nf *types.NotFound

	return errors.As(err, &nf)
}
