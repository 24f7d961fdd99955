package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func multipartFile(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	return form.File[field][0]
}

func TestStorageServiceSaveAndDelete(t *testing.T) {
	uploadDir := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(uploadDir)
	if err := storage.EnsureUploadDir(); err != nil {
		t.Fatalf("ensure upload dir: %v", err)
	}

	ref, err := storage.SaveFile(multipartFile(t, "resume", "jane_doe.pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if ref.Name() != "jane_doe.pdf" {
		t.Fatalf("saved name = %q, want jane_doe.pdf", ref.Name())
	}
	data, err := os.ReadFile(ref.Path)
	if err != nil || string(data) != "%PDF-1.4" {
		t.Fatalf("unexpected saved content %q (%v)", data, err)
	}

	if err := storage.DeleteFile(ref); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(ref.Path)); !os.IsNotExist(err) {
		t.Fatalf("expected per-upload directory to be removed, got %v", err)
	}
	if _, err := os.Stat(uploadDir); err != nil {
		t.Fatalf("upload root must survive delete: %v", err)
	}
}

func TestStorageServiceSameNameUploadsDoNotCollide(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	first, err := storage.SaveFile(multipartFile(t, "resumes", "cv.txt", []byte("one")))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := storage.SaveFile(multipartFile(t, "resumes", "cv.txt", []byte("two")))
	if err != nil {
		t.Fatalf("save second: %v", err)
	}

	if first.Path == second.Path {
		t.Fatalf("uploads with the same name share a path: %s", first.Path)
	}
	if first.Name() != second.Name() {
		t.Fatalf("both uploads should keep their original name")
	}
}

func TestStorageServiceDeleteOutsideUploadDir(t *testing.T) {
	storage := NewStorageService(filepath.Join(t.TempDir(), "uploads"))
	outside := writeFile(t, t.TempDir(), "keep.txt", []byte("keep"))

	if err := storage.DeleteFile(models.FileRef{Path: outside}); err == nil {
		t.Fatalf("expected refusal to delete outside the upload directory")
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside upload dir was removed: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"resume.pdf":            "resume.pdf",
		"../../etc/passwd":      "passwd",
		`C:\Users\jane\cv.docx`: "cv.docx",
		"  spaced name.txt  ":   "spaced name.txt",
		"..":                    "",
		"":                      "",
	}

	for input, want := range tests {
		if got := sanitizeFilename(input); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", input, got, want)
		}
	}
}
