package core

import (
	"mime/multipart"
	"path/filepath"
	"strings"
)

type (
	// UploadRule is an allow-list of file extensions and declared MIME types,
	// plus a size ceiling. Both the extension and the MIME type must match.
	UploadRule struct {
		AllowedExts  []string
		AllowedTypes []string
		MaxSize      int64
	}

	// FileStore persists uploaded files and serves back the relative URL path
	// (e.g. "/uploads/courses/course-....png") that gets recorded on entities.
	FileStore interface {
		Save(fh *multipart.FileHeader, subdir, prefix string) (string, error)
		Remove(path string) error
	}
)

// Check validates an upload against the rule. It never touches the file
// contents; only the declared filename, MIME type and size are inspected.
func (r UploadRule) Check(fh *multipart.FileHeader) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if !contains(r.AllowedExts, ext) {
		return ErrUnsupportedMediaType
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(fh.Header.Get("Content-Type"), ";", 2)[0]))
	if !contains(r.AllowedTypes, mediaType) {
		return ErrUnsupportedMediaType
	}
	if r.MaxSize > 0 && fh.Size > r.MaxSize {
		return ErrFileTooLarge
	}
	return nil
}

func contains(vals []string, s string) bool {
	for _, v := range vals {
		if v == s {
			return true
		}
	}
	return false
}
