package backup

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader writes snapshots to Amazon S3 (or compatible APIs).
type S3Uploader struct {
	uploader *manager.Uploader
}

func NewS3Uploader(client *s3.Client) *S3Uploader {
	return &S3Uploader{
		uploader: manager.NewUploader(client),
	}
}

func (u *S3Uploader) Upload(ctx context.Context, localPath, bucket, key string) (string, error) {
	if bucket == "" {
		return "", fmt.Errorf("backup bucket is required")
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open snapshot source: %w", err)
	}
	defer file.Close()

	if _, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	}); err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}
