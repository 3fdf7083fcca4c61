// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_storage uploads finished report and transcript artifacts
// to an S3-compatible blob store, reached only through an interface so the
// Report Builder can run with it absent.
package internal_storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/rapidaai/meetingbot/pkg/commons"
	"github.com/rapidaai/meetingbot/pkg/configs"
)

// Store uploads artifacts and returns their public (or presigned) URL.
type Store interface {
	// PutHTML uploads an HTML report under reports/, returning its URL.
	PutHTML(ctx context.Context, key string, body []byte) (string, error)
	// PutText uploads a plain-text transcript under transcripts/, returning its URL.
	PutText(ctx context.Context, key string, body []byte) (string, error)
}

type s3Store struct {
	uploader *s3manager.Uploader
	bucket   string
	endpoint string
	logger   commons.Logger
}

// NewStore builds an S3-compatible client from AssetStoreConfig: region,
// access key and secret are resolved up front and the client is built once.
func NewStore(cfg configs.AssetStoreConfig, logger commons.Logger) (Store, error) {
	awsCfg := aws.NewConfig().
		WithRegion(cfg.Region).
		WithCredentials(credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")).
		WithS3ForcePathStyle(true)
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create aws session: %w", err)
	}

	return &s3Store{
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
		logger:   logger,
	}, nil
}

func (s *s3Store) PutHTML(ctx context.Context, key string, body []byte) (string, error) {
	return s.put(ctx, "reports/"+key, body, "text/html; charset=utf-8")
}

func (s *s3Store) PutText(ctx context.Context, key string, body []byte) (string, error) {
	return s.put(ctx, "transcripts/"+key, body, "text/plain; charset=utf-8")
}

func (s *s3Store) put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	uploadCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	result, err := s.uploader.UploadWithContext(uploadCtx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload %s: %w", key, err)
	}
	s.logger.Infof("storage: uploaded %s (%d bytes)", key, len(body))
	return result.Location, nil
}
