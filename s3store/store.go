/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package s3store keeps swisspair's persistent state in Amazon S3: the
// httpcache.Cache used to cache ratings and club website responses, and the
// archive of pairings emitted for each round.
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

var ErrNotFound = errors.New("s3store: object not found")

// Store objects store and retrieve data using Amazon S3.
type Store struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is initialized in Init() from the default Config; callers may
	// substitute their own.
	Client *s3.Client

	bucketName string

	// gzip compresses objects on write and decompresses them on read. Object
	// keys carry a ".gz" suffix when set.
	gzip bool

	logErrors bool

	ctx context.Context
}

// New returns a Store backed by the given S3 bucket. Callers should invoke
// Init() on the returned Store before use.
func New(ctx context.Context, bucketName string, gzip bool,
	logErrors bool) *Store {

	return &Store{
		ctx:        ctx,
		bucketName: bucketName,
		gzip:       gzip,
		logErrors:  logErrors,
	}
}

// Init loads the default AWS configuration (environment, then shared config
// and credentials files) and verifies the bucket is readable.
func (s *Store) Init() error {
	var err error
	s.Config, err = config.LoadDefaultConfig(s.ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	s.Client = s3.NewFromConfig(s.Config)

	if _, err = s.Client.HeadBucket(s.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w",
			s.bucketName, err)
	}

	if _, err = s.Client.ListObjectsV2(s.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w",
			s.bucketName, err)
	}

	return nil
}

func (s *Store) objectKey(key string) string {
	if s.gzip {
		return key + ".gz"
	}
	return key
}

func (s *Store) getObject(ctx context.Context, key string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
	}

	resp, err := s.Client.GetObject(ctx, input)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%w: %v/%v", ErrNotFound, s.bucketName,
				*input.Key)
		}
		return nil, fmt.Errorf("failed to get object %v/%v: %w", s.bucketName,
			*input.Key, err)
	}
	defer resp.Body.Close()

	if s.gzip {
		return decompress(resp.Body)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %v/%v: %w", s.bucketName,
			*input.Key, err)
	}

	return data, nil
}

func (s *Store) putObject(ctx context.Context, key string, data []byte,
	contentType string) error {

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if s.gzip {
		compressed, err := compress(data)
		if err != nil {
			return fmt.Errorf("failed to gzip data for %v/%v: %w",
				s.bucketName, *input.Key, err)
		}
		input.Body = bytes.NewReader(compressed)
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put failed for %v/%v: %w", s.bucketName,
			*input.Key, err)
	}

	return nil
}

func (s *Store) deleteObject(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("delete failed for %v/%v: %w", s.bucketName,
			s.objectKey(key), err)
	}

	return nil
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func decompress(r io.Reader) ([]byte, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed object: %w", err)
	}
	defer gr.Close()

	data, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("failed to read compressed object: %w", err)
	}

	return data, nil
}
