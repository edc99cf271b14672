// Package media выдаёт временные ссылки на видео в бакете S3.
package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// URLExpiry — срок действия подписанной ссылки.
const URLExpiry = time.Hour

// ErrNoBucket возвращается, если бакет не задан.
var ErrNoBucket = errors.New("media bucket is not configured")

// S3Signer подписывает ссылки GetObject по SigV4 с адресацией path-style.
type S3Signer struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

// NewS3Signer возвращает подписчик поверх готового клиента S3.
func NewS3Signer(client *s3.Client, bucket string) (*S3Signer, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	return &S3Signer{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		expiry:    URLExpiry,
	}, nil
}

// NewS3SignerFromEnv загружает учётные данные AWS из окружения.
// Пустой region означает регион по умолчанию из окружения.
func NewS3SignerFromEnv(ctx context.Context, region, bucket string) (*S3Signer, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}

	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return NewS3Signer(client, bucket)
}

// SignURL возвращает ссылку на objectKey, действующую URLExpiry.
func (s *S3Signer) SignURL(ctx context.Context, objectKey string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", objectKey, err)
	}
	return req.URL, nil
}
