package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// s3Uploader implements Uploader on AWS S3.
type s3Uploader struct {
	client     *s3.Client
	bucket     string
	region     string
	prefix     string
	cdnBaseURL string
	logger     zerolog.Logger
}

// NewS3Uploader creates a new S3-backed image uploader. When cdnBaseURL is
// set, returned URLs are composed from it instead of the bucket endpoint.
func NewS3Uploader(ctx context.Context, bucket, region, prefix, cdnBaseURL string, logger zerolog.Logger) (Uploader, error) {
	logger = logger.With().Str("component", "s3-uploader").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 uploader initialised")

	return &s3Uploader{
		client:     client,
		bucket:     bucket,
		region:     region,
		prefix:     prefix,
		cdnBaseURL: strings.TrimSuffix(cdnBaseURL, "/"),
		logger:     logger,
	}, nil
}

// Upload writes the blob under a uuid-prefixed key and returns its URL.
// The original filename only contributes its extension, so callers cannot
// overwrite each other's objects.
func (u *s3Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := u.prefix + uuid.New().String() + path.Ext(filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.Error().
			Err(err).
			Str("bucket", u.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to upload image (bucket=%s, key=%s): %w", u.bucket, key, err)
	}

	url := u.objectURL(key)

	u.logger.Info().
		Str("key", key).
		Str("url", url).
		Msg("image uploaded")

	return url, nil
}

func (u *s3Uploader) objectURL(key string) string {
	if u.cdnBaseURL != "" {
		return u.cdnBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}
