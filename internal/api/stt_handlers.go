package api

import (
	"mime/multipart"
	"net/http"
	"strings"

	"interviewai/internal/model"
	"interviewai/internal/storage"
	"interviewai/internal/stt"
	"interviewai/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
)

// audioFields are the multipart field names accepted for a single upload.
var audioFields = []string{"file", "audio", "audio_file"}

const batchField = "files"

// transcribeAudio handles POST /transcribe-audio. The upload is removed
// once the request is done, whatever the outcome.
func (h *Handler) transcribeAudio(c *gin.Context) {
	file, err := formFile(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	upload, cleanup, err := h.uploads.Save(file)
	if err != nil {
		h.fail(c, "failed to save audio file", err)
		return
	}
	defer cleanup()

	log := requestLog(c, h.log).WithField("filename", upload.Filename)
	log.Infof("transcribing upload (%d bytes) with %s", upload.Size, h.stt.Name())

	req := transcriptionRequest(c)
	req.FilePath = upload.Path
	result, err := h.stt.Transcribe(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "transcription failed", scrubPath(err, upload))
		return
	}
	result.FilePath = upload.Filename

	c.JSON(http.StatusOK, gin.H{"transcript": result})
}

// transcribeBatch handles POST /transcribe-audio/batch with repeated
// "files" fields. Results are keyed by the uploaded file name.
func (h *Handler) transcribeBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.badRequest(c, err)
		return
	}
	files := form.File[batchField]
	if len(files) == 0 {
		utils.Error(c, http.StatusBadRequest, "invalid request: at least one file is required in field \""+batchField+"\"")
		return
	}

	uploads := make([]*storage.Upload, 0, len(files))
	paths := make([]string, 0, len(files))
	for _, file := range files {
		upload, cleanup, err := h.uploads.Save(file)
		if err != nil {
			h.fail(c, "failed to save audio file", err)
			return
		}
		defer cleanup()
		uploads = append(uploads, upload)
		paths = append(paths, upload.Path)
	}

	requestLog(c, h.log).WithField("files", len(paths)).Info("batch transcription requested")

	batch := h.stt.TranscribeBatch(c.Request.Context(), paths, transcriptionRequest(c))
	c.JSON(http.StatusOK, renameBatch(batch, uploads))
}

func formFile(c *gin.Context) (*multipart.FileHeader, error) {
	var err error
	for _, field := range audioFields {
		var file *multipart.FileHeader
		if file, err = c.FormFile(field); err == nil {
			return file, nil
		}
	}
	return nil, err
}

// transcriptionRequest reads optional overrides from the form. Anything
// left empty falls back to the provider defaults.
func transcriptionRequest(c *gin.Context) stt.Request {
	return stt.Request{
		Language:       c.PostForm("language"),
		Prompt:         c.PostForm("prompt"),
		ResponseFormat: openai.AudioResponseFormat(c.PostForm("response_format")),
	}
}

// renameBatch replaces temporary paths with the uploaded file names.
func renameBatch(batch *model.BatchResult, uploads []*storage.Upload) *model.BatchResult {
	names := make(map[string]string, len(uploads))
	for _, u := range uploads {
		names[u.Path] = u.Filename
	}

	successful := make(map[string]*model.TranscriptionResult, len(batch.Successful))
	for path, result := range batch.Successful {
		name := names[path]
		result.FilePath = name
		successful[name] = result
	}
	batch.Successful = successful

	for i, failed := range batch.FailedFiles {
		name := names[failed.File]
		batch.FailedFiles[i] = model.FailedFile{
			File:  name,
			Error: strings.ReplaceAll(failed.Error, failed.File, name),
		}
	}
	return batch
}

type pathScrubbedError struct {
	msg string
	err error
}

func (e *pathScrubbedError) Error() string { return e.msg }
func (e *pathScrubbedError) Unwrap() error { return e.err }

// scrubPath hides the temporary upload path from error messages while
// keeping the error chain intact.
func scrubPath(err error, upload *storage.Upload) error {
	return &pathScrubbedError{
		msg: strings.ReplaceAll(err.Error(), upload.Path, upload.Filename),
		err: err,
	}
}
