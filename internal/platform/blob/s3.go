// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Options configures an [S3Store].
type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Store is a [Store] backed by an S3-compatible bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store builds an S3 client from options.
//
// Static credentials are used when both keys are set; otherwise the SDK's default
// chain applies. A custom endpoint switches to path-style addressing, which R2 and
// MinIO expect.
func NewS3Store(context context.Context, options S3Options) (*S3Store, error) {
	if options.Bucket == "" {
		return nil, errors.New("blob: bucket is required")
	}

	loaders := []func(*config.LoadOptions) error{config.WithRegion(options.Region)}
	if options.AccessKeyID != "" && options.SecretAccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(options.AccessKeyID, options.SecretAccessKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(context, loaders...)
	if err != nil {
		return nil, fmt.Errorf("blob: failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if options.Endpoint != "" {
			o.BaseEndpoint = aws.String(options.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: options.Bucket}, nil
}

// Put implements [Store].
func (store *S3Store) Put(context context.Context, key string, object Object) error {
	_, err := store.client.PutObject(context, &s3.PutObjectInput{
		Bucket:        aws.String(store.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(object.Body),
		ContentLength: aws.Int64(int64(len(object.Body))),
		ContentType:   aws.String(object.ContentType),
	})
	if err != nil {
		return fmt.Errorf("blob: put %s failed: %w", key, err)
	}
	return nil
}

// Get implements [Store].
func (store *S3Store) Get(context context.Context, key string) (*Object, error) {
	output, err := store.client.GetObject(context, &s3.GetObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("blob: get %s failed: %w", key, err)
	}
	defer output.Body.Close()

	body, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("blob: read %s failed: %w", key, err)
	}

	return &Object{Body: body, ContentType: aws.ToString(output.ContentType)}, nil
}

// Delete implements [Store].
func (store *S3Store) Delete(context context.Context, key string) error {
	_, err := store.client.DeleteObject(context, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("blob: delete %s failed: %w", key, err)
	}
	return nil
}
