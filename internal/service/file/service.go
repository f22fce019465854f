package file

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/eximdesk/exim-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

// maxBucketPathDepth keeps client-chosen destination paths shallow.
const maxBucketPathDepth = 4

type FileService interface {
	// Upload stores one multipart file under bucketPath and returns its
	// public URL.
	Upload(ctx context.Context, bucketPath string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, storedPath string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(fileStorage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: fileStorage}
}

// sanitizeBucketPath normalizes the client-supplied destination folder and
// rejects traversal attempts.
func sanitizeBucketPath(bucketPath string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(bucketPath, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "." || cleaned == "" {
		cleaned = "misc"
	}
	if strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid bucket path: %s", bucketPath)
	}
	if strings.Count(cleaned, "/") >= maxBucketPathDepth {
		return "", fmt.Errorf("bucket path too deep: %s", bucketPath)
	}
	return cleaned, nil
}

// Upload implements FileService. Stored names are prefixed with a fresh
// UUID so repeated uploads of the same filename never collide.
func (s *fileServiceImpl) Upload(ctx context.Context, bucketPath string, file io.Reader, filename string) (string, error) {
	folder, err := sanitizeBucketPath(bucketPath)
	if err != nil {
		return "", err
	}

	base := filepath.Base(filename)
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("invalid filename: %s", filename)
	}

	ext := strings.ToLower(filepath.Ext(base))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	storedName := fmt.Sprintf("%s-%s", uuid.New().String(), base)
	storedPath := path.Join(folder, storedName)

	uploadedPath, err := s.storage.Upload(ctx, file, storedPath, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	url, err := s.storage.GetURL(ctx, uploadedPath, 0)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file url: %w", err)
	}
	return url, nil
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, storedPath string) error {
	return s.storage.Delete(ctx, storedPath)
}
