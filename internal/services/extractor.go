package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

type TextExtractor interface {
	Extract(filePath string) (*models.ExtractedDocument, error)
	SupportedExtensions() []string
}

type readerFunc func(filePath string) (text string, pages int, err error)

type textExtractor struct {
	readers map[string]readerFunc
	logger  *zap.Logger
}

func NewTextExtractor(log *zap.Logger) TextExtractor {
	e := &textExtractor{logger: logger.OrNop(log)}
	e.readers = map[string]readerFunc{
		".txt":  readPlainText,
		".pdf":  readPDF,
		".docx": readDocx,
		".html": readHTML,
		".htm":  readHTML,
	}
	return e
}

// SupportedExtensions implements TextExtractor.
func (e *textExtractor) SupportedExtensions() []string {
	exts := make([]string, 0, len(e.readers))
	for ext := range e.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extract implements TextExtractor.
func (e *textExtractor) Extract(filePath string) (*models.ExtractedDocument, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	read, ok := e.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(e.SupportedExtensions(), ", "))
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	text, pages, err := guardedRead(read, filePath)
	if err != nil {
		return nil, err
	}

	chars := utf8.RuneCountInString(text)
	e.logger.Info("📄 text extracted",
		zap.String(logger.FieldFile, filepath.Base(filePath)),
		zap.Int("chars", chars),
		zap.Int64("size_bytes", info.Size()),
	)

	return &models.ExtractedDocument{
		Text: text,
		Meta: models.DocumentMeta{
			Path:      filePath,
			Extension: ext,
			SizeBytes: info.Size(),
			Chars:     chars,
			PageCount: pages,
		},
	}, nil
}

// guardedRead turns a parser panic into an error; ledongthuc/pdf and docconv
// panic on some malformed files.
func guardedRead(read readerFunc, filePath string) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = fmt.Errorf("failed to parse %s: %v", filepath.Base(filePath), r)
		}
	}()
	return read(filePath)
}

func readPlainText(filePath string) (string, int, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read text file: %w", err)
	}
	// invalid UTF-8 sequences are dropped rather than rejected
	return strings.ToValidUTF8(string(data), ""), 0, nil
}

func readPDF(filePath string) (string, int, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	parts := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Keep going; one broken page should not lose the rest of the resume
			continue
		}

		parts = append(parts, text)
	}

	return strings.Join(parts, "\n"), totalPage, nil
}

func readDocx(filePath string) (string, int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return "", 0, fmt.Errorf("failed to convert DOCX: %w", err)
	}
	return text, 0, nil
}

func readHTML(filePath string) (string, int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open HTML: %w", err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertHTML(f, false)
	if err != nil {
		return "", 0, fmt.Errorf("failed to convert HTML: %w", err)
	}
	return text, 0, nil
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
