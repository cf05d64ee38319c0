// Package uploads stores résumé files on local disk under names derived from
// the applying student and internship, keeping uploads collision-free and
// path-traversal-safe.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// allowedExtensions is the résumé file whitelist. Anything else is dropped
// without failing the application.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Allowed reports whether the original filename carries an accepted
// résumé extension.
func Allowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedExtensions[ext]
	return ok
}

// Save writes the résumé to disk as {studentID}_{internshipID}_{sanitized}
// and returns the stored filename. The upload directory is created on first
// need.
func (s *Store) Save(studentID, internshipID int64, filename string, r io.Reader) (string, error) {
	if !Allowed(filename) {
		return "", fmt.Errorf("disallowed extension: %s", filepath.Ext(filename))
	}

	stored := fmt.Sprintf("%d_%d_%s", studentID, internshipID, SanitizeFilename(filename))
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return stored, nil
}

// SanitizeFilename strips any path components and reduces the name to a safe
// character set, so user-supplied names can never escape the upload dir.
func SanitizeFilename(filename string) string {
	base := filepath.Base(filepath.ToSlash(filename))
	base = strings.ReplaceAll(base, "\\", "_")

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		cleaned = "file"
	}
	return cleaned
}
