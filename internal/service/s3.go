package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"
	"zapzap/backend/internal/config"
	"zapzap/backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// S3Storage is the alternative upload backend for deployments with an
// S3-compatible object store (including MinIO via a custom endpoint).
// The object key is recorded as the message content.
type S3Storage struct {
	config   *config.Config
	uploader *manager.Uploader
	s3Client *s3.Client
}

func NewS3Storage(cfg *config.Config) (*S3Storage, error) {
	s3Opts := []func(*s3.Options){}

	if cfg.S3Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	credsProvider := credentials.NewStaticCredentialsProvider(
		cfg.S3AccessKeyID,
		cfg.S3SecretAccessKey,
		"",
	)

	awsCfg := aws.Config{
		Region:      cfg.S3Region,
		Credentials: credsProvider,
	}

	s3Client := s3.NewFromConfig(awsCfg, s3Opts...)

	storage := &S3Storage{
		config:   cfg,
		uploader: manager.NewUploader(s3Client),
		s3Client: s3Client,
	}

	log.WithField("endpoint", cfg.S3Endpoint).Info("S3 storage initialized")
	return storage, nil
}

func (s *S3Storage) Save(ctx context.Context, r io.Reader, filename, contentType string, size int64, uploadedBy, targetID string) (*model.FileMetadata, error) {
	fileID := uuid.NewString()
	s3Key := path.Join("chats", targetID, fileID, filename)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3BucketName),
		Key:         aws.String(s3Key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return &model.FileMetadata{
		ID:          fileID,
		Filename:    filename,
		Size:        size,
		ContentType: contentType,
		StoredPath:  s3Key,
		Bucket:      s.config.S3BucketName,
		UploadedBy:  uploadedBy,
		TargetID:    targetID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// PresignedURL hands out a temporary download link for a stored object.
func (s *S3Storage) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.s3Client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3BucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}
