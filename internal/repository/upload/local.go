package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/pkg/errors"
)

// MaxPhotoSize bounds one uploaded photo
const MaxPhotoSize = 10 << 20

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

type localStore struct {
	dir    string
	now    func() time.Time
	logger *zap.Logger
}

// NewLocalStore saves uploads under dir, creating it when missing
func NewLocalStore(dir string, logger *zap.Logger) (repository.UploadRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &localStore{dir: dir, now: time.Now, logger: logger}, nil
}

// IsAllowedExtension reports whether filename has a png, jpg or jpeg suffix
func IsAllowedExtension(filename string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Save writes data as <yyyymmdd_hhmmss>_<8 hex chars><ext> and returns the
// stored path.
func (s *localStore) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !IsAllowedExtension(filename) {
		return "", errors.ErrUnsupportedMedia.WithDetails(map[string]interface{}{
			"filename": filepath.Base(filename),
			"allowed":  []string{"png", "jpg", "jpeg"},
		})
	}
	if len(data) == 0 {
		return "", errors.ErrValidation.WithDetails(map[string]interface{}{"photo": "empty file"})
	}
	if len(data) > MaxPhotoSize {
		return "", errors.ErrValidation.WithDetails(map[string]interface{}{"photo": "file too large"})
	}

	name := fmt.Sprintf("%s_%s%s",
		s.now().Format("20060102_150405"),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		ext,
	)
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("Failed to save upload", zap.String("path", path), zap.Error(err))
		return "", errors.ErrStorage.WithCause(err)
	}

	s.logger.Info("Upload saved", zap.String("path", path), zap.Int("bytes", len(data)))
	return path, nil
}

// Delete removes a file written by Save. Paths outside the upload dir are
// refused.
func (s *localStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(s.dir) {
		return errors.ErrValidation.WithDetails(map[string]interface{}{"path": "outside upload dir"})
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Failed to delete upload", zap.String("path", path), zap.Error(err))
		return errors.ErrStorage.WithCause(err)
	}

	s.logger.Info("Upload deleted", zap.String("path", path))
	return nil
}
