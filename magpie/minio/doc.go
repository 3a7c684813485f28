// Package minio serves Magpie property tables from MinIO and other
// S3-compatible object stores, for self-hosted dataset mirrors.
package minio
