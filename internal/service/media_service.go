package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/youthadmin/internal/logger"
)

// ErrUnsupportedExtension 허용되지 않은 확장자의 파일을 업로드했을 때 반환
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// allowedPhotoExtensions is matched case-sensitively.
var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// MediaService 는 심방 사진을 업로드 디렉터리에 저장합니다.
type MediaService struct {
	dir   string
	now   func() time.Time
	newID func() string
}

// NewMediaService creates a MediaService writing into dir.
func NewMediaService(dir string, now func() time.Time) *MediaService {
	if now == nil {
		now = time.Now
	}
	return &MediaService{dir: dir, now: now, newID: uuid.NewString}
}

// ValidateExtension checks the original file name against the allow-list.
func ValidateExtension(originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	if !allowedPhotoExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
	return ext, nil
}

// SavePhoto 는 업로드 파일을 저장하고 생성된 파일명을 돌려줍니다.
// 파일명 형식: {YYYYMMDDHHMMSS}-{uuid}{확장자}
func (s *MediaService) SavePhoto(originalName string, src io.Reader) (string, error) {
	ext, err := ValidateExtension(originalName)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := fmt.Sprintf("%s-%s%s", s.now().Format("20060102150405"), s.newID(), ext)
	if err := writeFile(filepath.Join(s.dir, filename), src); err != nil {
		return "", err
	}

	logger.Info("photo uploaded", "filename", filename)
	return filename, nil
}

func writeFile(path string, src io.Reader) (err error) {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close upload file: %w", closeErr)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}
	return nil
}
