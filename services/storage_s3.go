package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/shahzadcollection/storefront-api/config"
	"go.uber.org/zap"
)

const (
	s3KeyPrefix       = "products/"
	presignedURLValid = time.Hour
)

// S3Storage keeps images in an S3 bucket
type S3Storage struct {
	client        *s3.Client
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
}

// NewS3Storage creates an S3 client from the AWS settings. Static credentials
// are used when configured; otherwise the default AWS credential chain applies.
func NewS3Storage(ctx context.Context, cfg *config.Config) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)
	return &S3Storage{
		client:        client,
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.AWSS3Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.AWSS3PublicBaseURL, "/"),
	}, nil
}

func (s *S3Storage) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s3KeyPrefix + key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// URL returns a public URL when a public base is configured, otherwise a
// presigned GET valid for one hour.
func (s *S3Storage) URL(ctx context.Context, key string) (string, error) {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s%s", s.publicBaseURL, s3KeyPrefix, key), nil
	}

	request, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3KeyPrefix + key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignedURLValid
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	zap.L().Debug("Generated presigned URL", zap.String("key", key))
	return request.URL, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3KeyPrefix + key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}
