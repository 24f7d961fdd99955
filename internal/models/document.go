package models

import "path/filepath"

// FileRef points at a resume on local disk.
type FileRef struct {
	Path string `json:"path"`
}

// Name is the base name of the file path; it is the file_name shown in bulk results.
func (f FileRef) Name() string {
	if f.Path == "" {
		return ""
	}
	return filepath.Base(f.Path)
}

type DocumentMeta struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
	SizeBytes int64  `json:"size_bytes"`
	Chars     int    `json:"chars"`
	PageCount int    `json:"page_count,omitempty"`
}

type ExtractedDocument struct {
	Text string
	Meta DocumentMeta
}
