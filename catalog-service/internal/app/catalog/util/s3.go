package util

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3ImageStore загружает изображения в S3 bucket с публичным чтением.
// Клиент получает обратно готовый URL и сохраняет его в документе.
type S3ImageStore struct {
	client  *s3.Client
	bucket  string
	baseURL string // публичный базовый URL bucket (CDN или virtual-hosted style)
}

// NewS3ImageStore создает S3 клиент со статическими credentials
func NewS3ImageStore(region, accessKeyID, secretAccessKey, bucket, baseURL string) (*S3ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &S3ImageStore{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload кладет файл под уникальным ключом и возвращает публичный URL
func (s *S3ImageStore) Upload(ctx context.Context, filename string, contentType string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}

	return s.baseURL + "/" + key, nil
}
