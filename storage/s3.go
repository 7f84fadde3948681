// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

// Package storage fetches dataset objects from S3-compatible storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Scheme prefixes object locations understood by Fetch.
const Scheme = "s3://"

// S3Service is a client for S3-compatible storage.
type S3Service struct {
	client *minio.Client
}

// Config holds the MinIO connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// ConfigFromEnv reads MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and
// MINIO_USE_SSL.
func ConfigFromEnv() Config {
	return Config{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}
}

// NewS3Service connects to the endpoint in cfg.
func NewS3Service(cfg Config) (*S3Service, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("missing one or more required settings: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating MinIO client: %w", err)
	}

	return &S3Service{client: client}, nil
}

// ParseObjectURL splits s3://bucket/key into its parts.
func ParseObjectURL(raw string) (bucket, key string, err error) {
	if !strings.HasPrefix(raw, Scheme) {
		return "", "", fmt.Errorf("not an %s url: %q", Scheme, raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parsing %q: %w", raw, err)
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")

	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%q must name a bucket and an object key", raw)
	}

	return bucket, key, nil
}

// Download copies bucket/key into dir and returns the local path. The local
// file keeps the object's base name so callers can dispatch on its extension.
func (s *S3Service) Download(ctx context.Context, bucket, key, dir string) (string, error) {
	dst := filepath.Join(dir, path.Base(key))

	if err := s.client.FGetObject(ctx, bucket, key, dst, minio.GetObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", fmt.Errorf("object %s/%s does not exist", bucket, key)
		}

		return "", fmt.Errorf("downloading %s/%s: %w", bucket, key, err)
	}

	log.Printf("Downloaded s3://%s/%s to %s", bucket, key, dst)

	return dst, nil
}

// Fetch downloads the object at location into a fresh temporary directory.
// The returned cleanup removes it.
func Fetch(ctx context.Context, location string, cfg Config) (string, func(), error) {
	bucket, key, err := ParseObjectURL(location)
	if err != nil {
		return "", nil, err
	}

	svc, err := NewS3Service(cfg)
	if err != nil {
		return "", nil, err
	}

	dir, err := os.MkdirTemp("", "schoolfinder-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp dir: %w", err)
	}

	cleanup := func() { _ = os.RemoveAll(dir) }

	local, err := svc.Download(ctx, bucket, key, dir)
	if err != nil {
		cleanup()

		return "", nil, err
	}

	return local, cleanup, nil
}
