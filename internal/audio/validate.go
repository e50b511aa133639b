// Package audio inspects candidate audio files before they are sent to the
// transcription provider.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize is the provider's upload limit (25 MiB).
const MaxFileSize int64 = 25 * 1024 * 1024

// ErrInvalidAudio is matched by every validation failure.
var ErrInvalidAudio = errors.New("invalid audio file")

var allowedExts = []string{".mp3", ".mp4", ".mpeg", ".mpga", ".m4a", ".wav", ".webm"}

// ValidationError explains why a file was rejected.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid audio file %s: %s", e.Path, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidAudio }

// Validate checks, in order, that the file exists, is a regular file no
// larger than MaxFileSize and has a supported extension. It only reads
// file metadata.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ValidationError{Path: path, Reason: "file not found"}
		}
		return &ValidationError{Path: path, Reason: err.Error()}
	}
	if info.IsDir() {
		return &ValidationError{Path: path, Reason: "path is a directory"}
	}

	if info.Size() > MaxFileSize {
		return &ValidationError{
			Path:   path,
			Reason: fmt.Sprintf("file too large: %.1fMB (max 25MB)", float64(info.Size())/(1024*1024)),
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !SupportedExtension(ext) {
		return &ValidationError{Path: path, Reason: fmt.Sprintf("unsupported format: %q", ext)}
	}

	return nil
}

// SupportedExtension reports whether ext (with leading dot, any case) is
// accepted by the transcription provider.
func SupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range allowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// SupportedFormats lists the accepted extensions without dots, for error
// messages.
func SupportedFormats() string {
	names := make([]string, len(allowedExts))
	for i, ext := range allowedExts {
		names[i] = strings.TrimPrefix(ext, ".")
	}
	return strings.Join(names, ", ")
}
