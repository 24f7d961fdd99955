package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type StorageService interface {
	SaveFile(file *multipart.FileHeader) (models.FileRef, error)
	DeleteFile(ref models.FileRef) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile stores the upload as <uploadPath>/<uuid>/<original base name> so the
// saved path keeps the name the user sent.
func (s *storageService) SaveFile(file *multipart.FileHeader) (models.FileRef, error) {
	name := sanitizeFilename(file.Filename)
	if name == "" {
		return models.FileRef{}, errors.New("uploaded file has no name")
	}

	dir := filepath.Join(s.uploadPath, uuid.New().String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return models.FileRef{}, fmt.Errorf("failed to create upload directory: %w", err)
	}
	filePath := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		os.RemoveAll(dir)
		return models.FileRef{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		os.RemoveAll(dir)
		return models.FileRef{}, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.RemoveAll(dir)
		return models.FileRef{}, fmt.Errorf("failed to save file: %w", err)
	}

	return models.FileRef{Path: filePath}, nil
}

// DeleteFile removes the upload together with its per-upload directory.
func (s *storageService) DeleteFile(ref models.FileRef) error {
	dir := filepath.Dir(ref.Path)
	if filepath.Clean(filepath.Dir(dir)) != filepath.Clean(s.uploadPath) {
		return fmt.Errorf("refusing to delete %s outside upload directory", ref.Path)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
