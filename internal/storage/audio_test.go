package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"interviewai/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSaveAndCleanup(t *testing.T) {
	dir := t.TempDir()
	store := NewUploadStore(dir, logging.Discard())

	upload, cleanup, err := store.Save(fileHeader(t, "Answer.MP3", []byte("audio-bytes")))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(upload.Path))
	assert.Equal(t, ".mp3", filepath.Ext(upload.Path))
	assert.Equal(t, "Answer.MP3", upload.Filename)
	assert.EqualValues(t, len("audio-bytes"), upload.Size)

	data, err := os.ReadFile(upload.Path)
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes", string(data))

	cleanup()
	_, err = os.Stat(upload.Path)
	assert.True(t, os.IsNotExist(err))

	// second call is a no-op
	cleanup()
}

func TestSaveDefaultsExtension(t *testing.T) {
	store := NewUploadStore(t.TempDir(), logging.Discard())

	upload, cleanup, err := store.Save(fileHeader(t, "recording", []byte("x")))
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, DefaultExtension, filepath.Ext(upload.Path))
}

func TestSaveUsesDistinctNames(t *testing.T) {
	store := NewUploadStore(t.TempDir(), logging.Discard())

	a, cleanA, err := store.Save(fileHeader(t, "same.wav", []byte("a")))
	require.NoError(t, err)
	defer cleanA()
	b, cleanB, err := store.Save(fileHeader(t, "same.wav", []byte("b")))
	require.NoError(t, err)
	defer cleanB()

	assert.NotEqual(t, a.Path, b.Path)
}
