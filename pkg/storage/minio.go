// Package storage提供了与对象存储服务（如 MinIO）交互的功能。
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"kreatiq/internal/config"
	"kreatiq/pkg/log"
)

// ErrNotConfigured 表示没有配置 MinIO endpoint。
var ErrNotConfigured = errors.New("minio endpoint is not configured")

// Exporter 把导出的文件写入 MinIO，并返回预签名下载地址。
type Exporter struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewExporter 初始化 MinIO 客户端并确保指定的存储桶存在。
func NewExporter(ctx context.Context, cfg config.MinIOConfig) (*Exporter, error) {
	if cfg.Endpoint == "" {
		return nil, ErrNotConfigured
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化 MinIO 客户端失败: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("检查 MinIO 存储桶失败: %w", err)
	}
	if !exists {
		log.Infof("存储桶 '%s' 不存在，正在创建...", cfg.BucketName)
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建 MinIO 存储桶失败: %w", err)
		}
	}

	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	log.Infof("MinIO 导出已启用，存储桶 '%s'", cfg.BucketName)
	return &Exporter{client: client, bucket: cfg.BucketName, expiry: expiry}, nil
}

// Export 上传对象并返回预签名 GET 地址。
func (e *Exporter) Export(ctx context.Context, objectName string, body []byte, contentType string) (string, error) {
	_, err := e.client.PutObject(ctx, e.bucket, objectName, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	presignedURL, err := e.client.PresignedGetObject(ctx, e.bucket, objectName, e.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", objectName, err)
	}
	return presignedURL.String(), nil
}
