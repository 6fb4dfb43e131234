package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	appconfig "github.com/suzyprado85-cyber/portalunk2-sub001/internal/config"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store persists proof files in an S3-compatible bucket.
type S3Store struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
	publicURL string
}

// NewS3Store creates an S3 store from config. The endpoint override
// enables S3-compatible providers.
func NewS3Store(cfg appconfig.S3StorageConfig) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config failed: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// path-style is required by most S3-compatible providers
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	keyPrefix := strings.Trim(strings.TrimSpace(cfg.KeyPrefix), "/")
	if keyPrefix == "" {
		keyPrefix = "proofs"
	}

	logger.Infow("s3_store_initialized", "bucket", cfg.Bucket, "key_prefix", keyPrefix)

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: keyPrefix,
		publicURL: strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
	}, nil
}

// Save uploads the content and returns its public URL.
func (s *S3Store) Save(ctx context.Context, r io.Reader, contentType string) (string, error) {
	now := time.Now()
	key := fmt.Sprintf("%s/%s/%s/%s%s",
		s.keyPrefix,
		now.Format("2006"),
		now.Format("01"),
		uuid.New().String(),
		ExtensionForContentType(contentType),
	)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, key), nil
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// Delete removes the object behind a previously returned URL.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	key := s.keyFromURL(url)
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete failed: %w", err)
	}
	return nil
}

func (s *S3Store) keyFromURL(url string) string {
	if s.publicURL != "" {
		if rel, ok := strings.CutPrefix(url, s.publicURL+"/"); ok {
			return rel
		}
	}
	if rel, ok := strings.CutPrefix(url, fmt.Sprintf("s3://%s/", s.bucket)); ok {
		return rel
	}
	return ""
}
