package config

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3 client and bucket info for recipe images
type S3Config struct {
	Client     *s3.Client
	BucketName string
	PresignTTL time.Duration
}

// NewS3Config initializes the S3 client from the application config.
// It returns nil when no bucket is configured.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	if cfg.S3BucketName == "" {
		return nil, nil
	}

	// Credentials come from the environment or shared config
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
	)
	if err != nil {
		return nil, err
	}

	return &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: cfg.S3BucketName,
		PresignTTL: cfg.S3PresignTTL,
	}, nil
}

// GeneratePresignedURL generates a presigned GET URL for the given object key
func (s *S3Config) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.Client)
	presignedURL, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}
