package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultExtension is used for uploads whose name carries no extension.
const DefaultExtension = ".wav"

// Upload is an uploaded file saved to disk for the duration of a request.
type Upload struct {
	Path     string
	Filename string
	Size     int64
}

// UploadStore saves multipart uploads under a directory with random names.
type UploadStore struct {
	dir string
	log logrus.FieldLogger
}

// NewUploadStore stores uploads in dir, or in the OS temp dir when dir is
// empty.
func NewUploadStore(dir string, log logrus.FieldLogger) *UploadStore {
	if dir == "" {
		dir = os.TempDir()
	}
	return &UploadStore{dir: dir, log: log.WithField("component", "storage")}
}

// Save writes file to disk. The returned cleanup removes it and must be
// called whatever the outcome of processing; it is safe to call more than
// once.
func (s *UploadStore) Save(file *multipart.FileHeader) (*Upload, func(), error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = DefaultExtension
	}
	dst := filepath.Join(s.dir, "upload_"+uuid.NewString()+ext)

	cleanup := func() { s.remove(dst) }

	n, err := saveMultipartFile(file, dst)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to save file: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"filename": file.Filename,
		"path":     dst,
		"size":     n,
	}).Debug("upload saved")

	return &Upload{Path: dst, Filename: file.Filename, Size: n}, cleanup, nil
}

func (s *UploadStore) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.WithError(err).WithField("path", path).Warn("failed to remove upload")
	}
}

func saveMultipartFile(file *multipart.FileHeader, dst string) (int64, error) {
	src, err := file.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := out.ReadFrom(src)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return n, err
}
