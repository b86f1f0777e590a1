// Package upload stores user-submitted images on disk and hands back
// relative URLs for serving.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type FileStorage interface {
	Save(path string, data io.Reader) error
	Delete(path string) error
	Exists(path string) bool
}

type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) FileStorage {
	return &fileStorage{basePath: basePath}
}

func (s *fileStorage) Save(path string, data io.Reader) error {
	fullPath := filepath.Join(s.basePath, path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, data)
	return err
}

func (s *fileStorage) Delete(path string) error {
	return os.Remove(filepath.Join(s.basePath, path))
}

func (s *fileStorage) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(s.basePath, path))
	return !os.IsNotExist(err)
}

// Service validates incoming images, writes a width-bounded copy and
// returns the relative URL under which the file is served.
type Service struct {
	storage    FileStorage
	baseURL    string
	maxSize    int64
	thumbWidth int
}

func NewService(storage FileStorage, baseURL string, maxSize int64, thumbWidth int) *Service {
	return &Service{
		storage:    storage,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxSize:    maxSize,
		thumbWidth: thumbWidth,
	}
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// SaveImage decodes, downsizes and stores an uploaded image under the given
// subdirectory. Returns the relative URL of the stored file.
func (s *Service) SaveImage(header *multipart.FileHeader, subdir string) (string, error) {
	if header.Size > s.maxSize {
		return "", fmt.Errorf("file too large: %d bytes (max %d)", header.Size, s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image type: %q", ext)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > s.thumbWidth {
		img = imaging.Resize(img, s.thumbWidth, 0, imaging.Lanczos)
	}

	name := uuid.New().String() + ext
	relPath := filepath.Join(subdir, name)

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := imaging.Encode(tmp, img, formatForExt(ext)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return "", err
	}

	if err := s.storage.Save(relPath, tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	tmp.Close()

	return s.baseURL + "/" + filepath.ToSlash(relPath), nil
}

// DeleteByURL removes a previously stored file given its relative URL.
// Unknown or already-removed files are not an error.
func (s *Service) DeleteByURL(url string) error {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return nil
	}
	rel := strings.TrimPrefix(url, s.baseURL+"/")
	if rel == "" {
		return nil
	}
	if !s.storage.Exists(rel) {
		return nil
	}
	return s.storage.Delete(rel)
}

func formatForExt(ext string) imaging.Format {
	switch ext {
	case ".png":
		return imaging.PNG
	case ".gif":
		return imaging.GIF
	default:
		return imaging.JPEG
	}
}
