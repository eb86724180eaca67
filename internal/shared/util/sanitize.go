package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName flags upload names that are empty or attempt path traversal.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName normalizes an uploaded file name for storage and logging:
// surrounding whitespace is dropped, path separators become underscores, and
// traversal sequences are rejected outright.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" || strings.Contains(s, "..") {
		return "", ErrInvalidFileName
	}
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s, nil
}
