package minio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"pulse-go/internal/config"
	"pulse-go/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var client *minio.Client

// Init 初始化 MinIO 客户端并确保媒体 Bucket 存在且公开可读
func Init(cfg *config.MinIOConfig) error {
	var err error
	client, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.Bucket))
	}

	// 图片由前端直接访问
	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, cfg.Bucket)
	if err := client.SetBucketPolicy(ctx, cfg.Bucket, policy); err != nil {
		return fmt.Errorf("failed to set public policy for %s: %w", cfg.Bucket, err)
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
	)

	return nil
}

// Get 获取 MinIO 客户端实例
func Get() *minio.Client {
	return client
}

// MediaStore 以公开 URL 标识对象的媒体存储
type MediaStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMediaStore 基于已初始化的客户端创建媒体存储
func NewMediaStore(c *minio.Client, cfg *config.MinIOConfig) *MediaStore {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = PublicBaseURL(cfg.Endpoint, cfg.UseSSL, cfg.Bucket)
	}
	return &MediaStore{client: c, bucket: cfg.Bucket, baseURL: base}
}

// Put 上传对象并返回公开 URL
func (m *MediaStore) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}
	return m.baseURL + "/" + objectName, nil
}

// Delete 按公开 URL 删除对象，非本存储的 URL 忽略
func (m *MediaStore) Delete(ctx context.Context, url string) error {
	objectName, ok := m.ObjectName(url)
	if !ok {
		logger.Debug("Skip releasing foreign media url", zap.String("url", url))
		return nil
	}
	if err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s from minio: %w", objectName, err)
	}
	return nil
}

// ObjectName 从公开 URL 还原对象名
func (m *MediaStore) ObjectName(url string) (string, bool) {
	prefix := m.baseURL + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// PublicBaseURL 生成公开访问前缀（需要 Bucket 设置为 public-read）
func PublicBaseURL(endpoint string, useSSL bool, bucket string) string {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket)
}
