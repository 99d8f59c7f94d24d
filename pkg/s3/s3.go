package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorageClient uploads objects to an S3 compatible store.
type ObjectStorageClient interface {
	Connect(ctx context.Context, endpoint, accessKeyID, secretAccessKey string, useSSL bool) error
	UploadFile(ctx context.Context, bucketName, objectName string, content io.Reader, size int64, contentType string) (string, error)
}

// ObjectStorage holds the object storage client instance
type ObjectStorage struct {
	Conn   *minio.Client
	Region string
}

// NewObjectStorage initialization
func NewObjectStorage() *ObjectStorage {
	return &ObjectStorage{Region: "us-east-1"}
}

// Connect establishes the object storage connection using client
func (o *ObjectStorage) Connect(ctx context.Context, endpoint, accessKeyID, secretAccessKey string, useSSL bool) error {
	var err error
	o.Conn, err = minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	// Check connection by listing buckets
	if _, err = o.Conn.ListBuckets(ctx); err != nil {
		return fmt.Errorf("failed to establish minio connection: %w", err)
	}

	return nil
}

// UploadFile creates the bucket if needed and writes the object, overwriting any object
// with the same name. It returns the object location.
func (o *ObjectStorage) UploadFile(ctx context.Context, bucketName, objectName string, content io.Reader, size int64, contentType string) (string, error) {
	if o.Conn == nil {
		return "", errors.New("object storage is not connected")
	}

	err := o.Conn.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{
		Region: o.Region,
	})
	if err != nil {
		exists, errBucketExists := o.Conn.BucketExists(ctx, bucketName)
		if !(errBucketExists == nil && exists) {
			return "", fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
		}
	}

	info, err := o.Conn.PutObject(ctx, bucketName, objectName, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", bucketName, objectName, err)
	}

	if info.Location != "" {
		return info.Location, nil
	}
	return fmt.Sprintf("%s/%s", info.Bucket, info.Key), nil
}
