package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"petawards/constant"
)

// minioStore keeps objects under "{id}/{name}" so the provider key stays
// opaque to clients while the client filename and the provider id are both
// recoverable from a plain listing.
type minioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

func NewMinioStore(client *minio.Client, bucket, publicBaseURL string) Store {
	return &minioStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// EnsureBucket creates the bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket %s: %w", bucket, err)
		}
	}
	return nil
}

func (s *minioStore) ListAll(ctx context.Context) ([]Object, error) {
	var objects []Object
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list objects: %w", info.Err)
		}
		id, name := splitKey(info.Key)
		objects = append(objects, Object{
			Key:        info.Key,
			Name:       name,
			ID:         id,
			Size:       info.Size,
			UploadedAt: info.LastModified,
			// The listing only ever reports completed uploads.
			Status: constant.ObjectStatusUploaded,
		})
	}
	return objects, nil
}

func (s *minioStore) Put(ctx context.Context, name, contentType string, r io.Reader, size int64) (Object, error) {
	id := uuid.NewString()
	key := id + "/" + name
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return Object{}, fmt.Errorf("put object %s: %w", key, err)
	}
	return Object{
		Key:        key,
		Name:       name,
		ID:         id,
		Size:       info.Size,
		UploadedAt: info.LastModified,
		Status:     constant.ObjectStatusUploaded,
	}, nil
}

func (s *minioStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer obj.Close()

	body, err := io.ReadAll(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.StatusCode == 404 {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return body, nil
}

func (s *minioStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

func (s *minioStore) URL(key string) string {
	return s.publicBaseURL + "/" + s.bucket + "/" + key
}

func splitKey(key string) (id, name string) {
	if i := strings.Index(key, "/"); i >= 0 {
		return key[:i], key[i+1:]
	}
	// Objects written outside this service carry no id segment.
	return key, key
}
