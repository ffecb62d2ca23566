// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage keeps the content API's uploaded media (entity images,
// gallery photos and videos) in an S3-compatible bucket. Objects are public
// and addressed by URL; the database stores only that URL.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"mlomp/internal/metrics"
	"mlomp/internal/slug"
)

// Store uploads and deletes media objects in one public bucket.
type Store struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL for objects
	now       func() time.Time
	newID     func() string
}

// New creates a Store configured for path-style addressing, which MinIO
// and most self-hosted S3 services require. Returns (nil, nil) when the
// endpoint or credentials are empty so the API can start without media.
func New(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Store, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}
	if bucket == "" {
		return nil, errors.New("storage: bucket name is required")
	}

	endpoint = strings.TrimRight(endpoint, "/")
	client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Store{
		s3:        client,
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
		newID:     uuid.NewString,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	_, err := s.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *s3types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("s3 head bucket %s: %w", s.bucket, err)
	}
	if _, err := s.s3.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("s3 create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Upload stores data under a fresh key in the collection's folder and
// returns its public URL.
func (s *Store) Upload(ctx context.Context, collection, filename, contentType string, data []byte) (string, error) {
	key := s.objectKey(collection, filename)
	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	metrics.MediaOperationsTotal.WithLabelValues("upload", metrics.Outcome(err)).Inc()
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w", key, err)
	}
	return s.FileURL(key), nil
}

// DeleteURL removes the object a URL points to. URLs that do not belong
// to this bucket (external links, seed data) are ignored.
func (s *Store) DeleteURL(ctx context.Context, rawURL string) error {
	key, ok := s.KeyFromURL(rawURL)
	if !ok {
		return nil
	}
	_, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	metrics.MediaOperationsTotal.WithLabelValues("delete", metrics.Outcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

// FileURL returns the public URL of key. Uses the configured public URL
// if set, otherwise a path-style endpoint URL.
func (s *Store) FileURL(key string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return s.endpoint + "/" + s.bucket + "/" + key
}

// KeyFromURL extracts the object key from a URL produced by FileURL.
func (s *Store) KeyFromURL(rawURL string) (string, bool) {
	prefixes := []string{s.endpoint + "/" + s.bucket + "/"}
	if s.publicURL != "" {
		prefixes = append([]string{s.publicURL + "/"}, prefixes...)
	}
	for _, prefix := range prefixes {
		if key, ok := strings.CutPrefix(rawURL, prefix); ok && key != "" {
			return key, true
		}
	}
	return "", false
}

// objectKey builds "<collection>/<yyyy>/<mm>/<uuid>-<slugged name>".
func (s *Store) objectKey(collection, filename string) string {
	now := s.now().UTC()
	return path.Join(
		slug.Generate(collection),
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		s.newID()+"-"+slug.FileName(filename),
	)
}
