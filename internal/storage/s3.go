package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	appconfig "github.com/BloggingApp/blog-service/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores a binary blob and returns a stable public URL for it.
// Uploads are the one visibly slow operation in the profile workflow,
// so every call is context-bounded.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, namingHint string, contentType string) (string, error)
}

type s3Uploader struct {
	client *s3.Client
	cfg    appconfig.S3Config
}

func NewS3Uploader(ctx context.Context, cfg appconfig.S3Config) (Uploader, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		o.UsePathStyle = true
	})

	return &s3Uploader{
		client: client,
		cfg:    cfg,
	}, nil
}

// Upload writes the blob under profileImages/<hint>_<nanos>. The suffix
// keeps repeated uploads for the same hint from colliding.
func (u *s3Uploader) Upload(ctx context.Context, file io.Reader, namingHint string, contentType string) (string, error) {
	key := objectKey(namingHint)

	if _, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(u.cfg.PublicOrigin, "/"), u.cfg.Bucket, key), nil
}

func objectKey(namingHint string) string {
	return fmt.Sprintf("profileImages/%s_%d", namingHint, time.Now().UnixNano())
}
