package repository

import "context"

// UploadRepository persists uploaded photos and returns an opaque path
type UploadRepository interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
	// Delete removes a previously saved file; a missing file is not an error
	Delete(ctx context.Context, path string) error
}
