package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry is how long generated upload/download URLs
// stay valid.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage abstracts the object store holding user avatars. The API
// never proxies file bytes; clients upload and download directly against
// presigned URLs.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL the client can
	// PUT the file to. The client must send the same Content-Type header.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary GET URL for an object.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object, e.g. a replaced avatar.
	DeleteObject(ctx context.Context, objectKey string) error
}
