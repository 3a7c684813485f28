package main

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/matgo"
	"github.com/hupe1980/matgo/internal/config"
	"github.com/hupe1980/matgo/magpie"
	miniosource "github.com/hupe1980/matgo/magpie/minio"
	s3source "github.com/hupe1980/matgo/magpie/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// loadConfig resolves the effective configuration, applying the global
// flags on top of file and environment values.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if dataDir != "" {
		cfg.Data.Source = config.SourceDir
		cfg.Data.Dir = dataDir
	}

	return cfg, nil
}

func newLogger() *matgo.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	if logJSON {
		return matgo.NewJSONLogger(level)
	}

	return matgo.NewTextLogger(level)
}

// newSource builds the table source named by the configuration.
func newSource(ctx context.Context, cfg *config.Config) (magpie.Source, error) {
	switch cfg.Data.Source {
	case config.SourceDir, "":
		return magpie.NewDirSource(cfg.Data.Dir), nil

	case config.SourceS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}

		var opts []s3source.SourceOption
		if cfg.S3.UnitsTable != "" {
			registry := s3source.NewUnitRegistry(awsdynamodb.NewFromConfig(awsCfg), cfg.S3.UnitsTable, cfg.S3.Dataset)
			opts = append(opts, s3source.WithUnitsProvider(registry))
		}

		return s3source.NewSource(awss3.NewFromConfig(awsCfg), cfg.S3.Bucket, cfg.S3.Prefix, opts...), nil

	case config.SourceMinio:
		client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to MinIO: %w", err)
		}

		return miniosource.NewSource(client, cfg.Minio.Bucket, cfg.Minio.Prefix), nil
	}

	return nil, fmt.Errorf("unknown data source %q (want dir, s3 or minio)", cfg.Data.Source)
}

// newEngine wires an engine to the configured table source.
func newEngine(ctx context.Context, cfg *config.Config, optFns ...matgo.Option) (*matgo.Engine, error) {
	src, err := newSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []matgo.Option{
		matgo.WithTableStore(magpie.NewStore(src)),
		matgo.WithLogger(newLogger()),
	}

	if cfg.Concurrency > 0 {
		opts = append(opts, matgo.WithConcurrency(cfg.Concurrency))
	}

	return matgo.New(append(opts, optFns...)...), nil
}
