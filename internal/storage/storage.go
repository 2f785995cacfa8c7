package storage

import (
	"context"
	"fmt"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the object storage operations used for progress photos.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// ObjectExists reports whether an object was actually written under the key.
	ObjectExists(ctx context.Context, objectKey string) (bool, error)

	// DeleteObject removes an object from the storage provider.
	// Deleting a missing object is not an error.
	DeleteObject(ctx context.Context, objectKey string) error
}

// SessionPhotoPrefix is the key prefix shared by every session's photos.
const SessionPhotoPrefix = "sessions/"

// ExpiringStorage can expire session photos server-side. Sessions that run
// out without a logout are dropped by the store without anyone deleting
// their objects; the bucket rule removes them instead.
type ExpiringStorage interface {
	FileStorage

	// EnsureSessionPhotoExpiry installs a bucket lifecycle rule deleting
	// objects under SessionPhotoPrefix after days. It replaces the bucket's
	// whole lifecycle configuration.
	EnsureSessionPhotoExpiry(ctx context.Context, days int32) error
}

// PhotoObjectKey is the bucket key of a session's progress photo. Keys are
// scoped by session so logout can remove them all.
func PhotoObjectKey(sessionID, slot string) string {
	return fmt.Sprintf("%s%s/progress/%s", SessionPhotoPrefix, sessionID, slot)
}
