// Package config loads the CLI configuration. Values come from an optional
// YAML file, a .env file in the working directory and MATGO_* environment
// variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Data source names.
const (
	SourceDir   = "dir"
	SourceS3    = "s3"
	SourceMinio = "minio"
)

type Config struct {
	Data struct {
		Source string `yaml:"source"` // dir, s3 or minio
		Dir    string `yaml:"dir"`
	} `yaml:"data"`

	S3 struct {
		Bucket string `yaml:"bucket"`
		Prefix string `yaml:"prefix"`

		// UnitsTable names a DynamoDB unit registry consulted instead of the
		// bucket README; Dataset selects its partition.
		UnitsTable string `yaml:"units_table"`
		Dataset    string `yaml:"dataset"`
	} `yaml:"s3"`

	Minio struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		UseSSL    bool   `yaml:"use_ssl"`
		Bucket    string `yaml:"bucket"`
		Prefix    string `yaml:"prefix"`
	} `yaml:"minio"`

	Materials struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"materials"`

	Concurrency int `yaml:"concurrency"`
}

// Default returns the configuration used when no file and no overrides are
// present: local tables under ./data/magpie.
func Default() *Config {
	cfg := &Config{}
	cfg.Data.Source = SourceDir
	cfg.Data.Dir = "./data/magpie"
	cfg.S3.Dataset = "magpie"

	return cfg
}

// Load reads the configuration.
func Load(path string) (*Config, error) {
	// 1. Load .env if present.
	_ = godotenv.Load()

	cfg := Default()

	// 2. Merge the YAML file.
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// 3. Override with environment variables if present.
	if source := os.Getenv("MATGO_DATA_SOURCE"); source != "" {
		cfg.Data.Source = source
	}

	if dir := os.Getenv("MATGO_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}

	if bucket := os.Getenv("MATGO_S3_BUCKET"); bucket != "" {
		cfg.S3.Bucket = bucket
	}

	if prefix := os.Getenv("MATGO_S3_PREFIX"); prefix != "" {
		cfg.S3.Prefix = prefix
	}

	if table := os.Getenv("MATGO_S3_UNITS_TABLE"); table != "" {
		cfg.S3.UnitsTable = table
	}

	if dataset := os.Getenv("MATGO_S3_DATASET"); dataset != "" {
		cfg.S3.Dataset = dataset
	}

	if endpoint := os.Getenv("MATGO_MINIO_ENDPOINT"); endpoint != "" {
		cfg.Minio.Endpoint = endpoint
	}

	if key := os.Getenv("MATGO_MINIO_ACCESS_KEY"); key != "" {
		cfg.Minio.AccessKey = key
	}

	if secret := os.Getenv("MATGO_MINIO_SECRET_KEY"); secret != "" {
		cfg.Minio.SecretKey = secret
	}

	if key := os.Getenv("MATGO_MP_API_KEY"); key != "" {
		cfg.Materials.APIKey = key
	}

	if raw := os.Getenv("MATGO_CONCURRENCY"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("MATGO_CONCURRENCY: %w", err)
		}

		cfg.Concurrency = n
	}

	return cfg, nil
}
