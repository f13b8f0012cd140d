package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"

	"encode-service/ddd/domain/gateway"
	"encode-service/internal/resource"
	"encode-service/pkg/logger"
)

// MinioStorage moves media between the configured bucket and local disk.
type MinioStorage struct {
	minioResource *resource.MinioResource
}

// NewMinioStorage wires the storage gateway onto the shared minio resource.
func NewMinioStorage(minioResource *resource.MinioResource) gateway.StorageGateway {
	return &MinioStorage{minioResource: minioResource}
}

// DownloadFile fetches objectKey into localPath.
func (s *MinioStorage) DownloadFile(ctx context.Context, objectKey, localPath string) error {
	client := s.minioResource.GetClient()
	bucketName := s.minioResource.GetBucketName()

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("create local directory failed: %w", err)
	}

	object, err := client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("get object from minio failed: %w", err)
	}
	defer object.Close()

	localFile, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create local file failed: %w", err)
	}
	defer localFile.Close()

	if _, err := localFile.ReadFrom(object); err != nil {
		return fmt.Errorf("download file from minio failed: %w", err)
	}

	logger.Infof("source downloaded object_key=%s local_path=%s", objectKey, localPath)
	return nil
}

// UploadEncodedFile stores localPath under objectKey and returns the key.
func (s *MinioStorage) UploadEncodedFile(ctx context.Context, localPath, objectKey, contentType string) (string, error) {
	client := s.minioResource.GetClient()
	bucketName := s.minioResource.GetBucketName()

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open local file failed: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("get file info failed: %w", err)
	}

	if contentType == "" {
		contentType = contentTypeFromExtension(objectKey)
	}

	_, err = client.PutObject(ctx, bucketName, objectKey, file, fileInfo.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload encoded file to minio failed: %w", err)
	}

	logger.Infof("encoded file uploaded object_key=%s size=%d", objectKey, fileInfo.Size())
	return objectKey, nil
}

// contentTypeFromExtension maps a stored key to its media type.
func contentTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".ogv":
		return "video/ogg"
	case ".avi":
		return "video/x-msvideo"
	case ".mov":
		return "video/quicktime"
	case ".mkv":
		return "video/x-matroska"
	default:
		return "application/octet-stream"
	}
}
