package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// MaxAvatarSize limits avatar uploads to 5 MB
const MaxAvatarSize = 5 * 1024 * 1024

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// ValidateImage reads and validates an uploaded image, returning the
// buffered data and detected MIME type.
func ValidateImage(reader io.Reader, maxSize int64) (*bytes.Buffer, string, error) {
	// Limit to maxSize + 1 to detect oversized files
	limitedReader := io.LimitReader(reader, maxSize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}

	if int64(len(data)) > maxSize {
		return nil, "", ErrFileTooLarge
	}

	// Detect MIME type from content (magic bytes)
	mimeType := http.DetectContentType(data)
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	allowed := false
	for _, t := range allowedImageTypes {
		if t == mimeType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, "", ErrInvalidMimeType
	}

	return bytes.NewBuffer(data), mimeType, nil
}

// ExtensionForMime returns the file extension for a MIME type
func ExtensionForMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
