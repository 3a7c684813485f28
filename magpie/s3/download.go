package s3

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/matgo/magpie"
	"golang.org/x/sync/errgroup"
)

const defaultDownloadConcurrency = 4

// DownloadDataset mirrors all table objects and the README under prefix into
// dir, fetching up to concurrency objects in parallel. It returns the number
// of files written. Compressed tables stay compressed on disk; the directory
// source decodes them on open.
func DownloadDataset(ctx context.Context, client Client, bucket, prefix, dir string, concurrency int) (int, error) {
	if concurrency <= 0 {
		concurrency = defaultDownloadConcurrency
	}

	var keys []string

	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, err
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			base := path.Base(key)

			if _, ok := magpie.PropertyFromFilename(base); !ok && base != magpie.UnitsDoc {
				continue
			}

			keys = append(keys, key)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	downloader := manager.NewDownloader(client)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, key := range keys {
		key := key

		g.Go(func() error {
			f, err := os.Create(filepath.Join(dir, path.Base(key)))
			if err != nil {
				return err
			}

			if _, err := downloader.Download(ctx, f, &s3.GetObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			}); err != nil {
				f.Close()
				return fmt.Errorf("download %q: %w", key, err)
			}

			return f.Close()
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return len(keys), nil
}
