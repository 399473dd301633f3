package minio

import (
	"Inkwell/internal/api/config"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, MainBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, MainBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetPublicURL 获取文件的公共访问URL
func GetPublicURL(objectName string) string {
	cfg := config.Cfg.MinIO

	protocol := "https"
	endpoint := cfg.ExternalEndpoint
	if endpoint == "" {
		endpoint = cfg.InternalEndpoint
		if !cfg.InternalUseSSL {
			protocol = "http"
		}
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, MainBucket, objectName)
}
