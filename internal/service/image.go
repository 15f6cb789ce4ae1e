package service

import (
	"context"
	"strings"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/logging"
)

// ImageResolver turns the stored image value of a recipe into a URL clients can fetch.
type ImageResolver interface {
	ResolveImage(ctx context.Context, image string) string
}

// PassthroughImages returns stored values unchanged. Used when no bucket is configured.
type PassthroughImages struct{}

func (PassthroughImages) ResolveImage(_ context.Context, image string) string {
	return image
}

// S3ImageSigner presigns object keys stored in the recipe image field.
// Absolute URLs are returned as they are.
type S3ImageSigner struct {
	s3 *config.S3Config
}

func NewS3ImageSigner(s3 *config.S3Config) *S3ImageSigner {
	return &S3ImageSigner{s3: s3}
}

func (s *S3ImageSigner) ResolveImage(ctx context.Context, image string) string {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	url, err := s.s3.GeneratePresignedURL(ctx, image, s.s3.PresignTTL)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", image).Msg("failed to presign recipe image")
		return ""
	}
	return url
}

// NewImageResolver picks the S3 signer when a bucket is configured.
func NewImageResolver(s3 *config.S3Config) ImageResolver {
	if s3 == nil {
		return PassthroughImages{}
	}
	return NewS3ImageSigner(s3)
}
