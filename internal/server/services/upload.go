package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/server/storage"
	"github.com/google/uuid"
)

// MaxUploadSize bounds a single body-analysis upload.
const MaxUploadSize = 64 << 20

var uploadContentTypes = map[string]string{
	".csv":  "text/csv",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
}

// Upload describes a stored object.
type Upload struct {
	Key         string
	Size        int64
	ContentType string
}

// UploadService stores body-analysis captures (landmark CSVs or videos).
type UploadService struct {
	storage storage.ObjectStorage
	now     func() time.Time
}

func NewUploadService(st storage.ObjectStorage) *UploadService {
	return &UploadService{storage: st, now: time.Now}
}

func (s *UploadService) Upload(ctx context.Context, userID, filename string, body io.ReadSeeker, size int64) (*Upload, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := uploadContentTypes[ext]
	switch {
	case !ok:
		return nil, fmt.Errorf("%w: unsupported file type %q", common.ErrorValidation, ext)
	case size <= 0:
		return nil, fmt.Errorf("%w: file is empty", common.ErrorValidation)
	case size > MaxUploadSize:
		return nil, fmt.Errorf("%w: file exceeds %d bytes", common.ErrorTooLarge, MaxUploadSize)
	}

	key := s.storageKey(userID, ext)
	if err := s.storage.Put(ctx, key, contentType, body, size); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return &Upload{Key: key, Size: size, ContentType: contentType}, nil
}

func (s *UploadService) storageKey(userID, ext string) string {
	d := s.now().UTC()
	return fmt.Sprintf("body-analysis/%s/%d/%02d/%02d/%s%s", userID, d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}
