package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SaveEventImage writes an uploaded image under <uploadDir>/<eventID>/<filename>
// with upsert semantics (an existing file at the same path is overwritten) and
// returns the public URL the record should store.
func SaveEventImage(uploadDir, baseURL string, eventID uint, filename string, data []byte) (string, error) {
	filename = filepath.Base(filename)
	if filename == "" || filename == "." {
		return "", fmt.Errorf("invalid file name")
	}

	dir := filepath.Join(uploadDir, fmt.Sprint(eventID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst := filepath.Join(dir, filename)
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return PublicImageURL(baseURL, eventID, filename), nil
}

// PublicImageURL returns the URL the file server exposes a stored image at.
func PublicImageURL(baseURL string, eventID uint, filename string) string {
	return fmt.Sprintf("%s/uploads/%d/%s", strings.TrimSuffix(baseURL, "/"), eventID, filename)
}

// ImageContentType maps a filename extension to the Content-Type the file
// server should send. Unknown extensions are served as octet-stream.
func ImageContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	}
	return "application/octet-stream"
}
