package gateway

import "context"

// StorageGateway moves media between object storage and the local work dir.
type StorageGateway interface {
	// DownloadFile fetches objectKey into localPath, creating parent
	// directories as needed.
	DownloadFile(ctx context.Context, objectKey, localPath string) error

	// UploadEncodedFile stores localPath under objectKey and returns the
	// stored key.
	UploadEncodedFile(ctx context.Context, localPath, objectKey, contentType string) (string, error)
}
