package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"survey_backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider 导出文件的归档后端
type StorageProvider interface {
	Save(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

// LocalStorage 本地磁盘归档
type LocalStorage struct {
	BasePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{BasePath: basePath}, nil
}

func (s *LocalStorage) Save(_ context.Context, filename string, reader io.Reader, _ int64, _ string) (string, error) {
	path := filepath.Join(s.BasePath, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, reader); err != nil {
		return "", err
	}
	return path, nil
}

// MinioStorage MinIO 对象存储归档
type MinioStorage struct {
	Client *minio.Client
	Bucket string
}

func NewMinioStorage(cfg config.StorageConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinioStorage{Client: client, Bucket: cfg.MinioBucket}, nil
}

func (s *MinioStorage) Save(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.Client.PutObject(ctx, s.Bucket, filename, reader, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.Bucket, filename), nil
}

// NewStorageProvider 按配置选择归档后端，未配置时返回 nil（导出不归档）
func NewStorageProvider(cfg config.StorageConfig) (StorageProvider, error) {
	switch cfg.Type {
	case "minio":
		return NewMinioStorage(cfg)
	case "local":
		return NewLocalStorage(cfg.LocalPath)
	default:
		return nil, nil
	}
}
