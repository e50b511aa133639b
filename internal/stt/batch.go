package stt

import (
	"context"

	"interviewai/internal/model"

	"golang.org/x/sync/errgroup"
)

// TranscribeBatch transcribes every path with the same settings. A failed
// file is recorded and never stops the rest. FailedFiles keeps input order.
func (p *WhisperProvider) TranscribeBatch(ctx context.Context, paths []string, req Request) *model.BatchResult {
	p.log.WithField("files", len(paths)).Info("starting batch transcription")

	results := make([]*model.TranscriptionResult, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(p.batchSize)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			r := req
			r.FilePath = path
			results[i], errs[i] = p.Transcribe(ctx, r)
			return nil
		})
	}
	_ = g.Wait()

	batch := &model.BatchResult{
		Successful:  make(map[string]*model.TranscriptionResult),
		FailedFiles: []model.FailedFile{},
		TotalFiles:  len(paths),
	}
	for i, path := range paths {
		if errs[i] != nil {
			p.log.WithError(errs[i]).WithField("file", path).Error("failed to transcribe")
			batch.FailedFiles = append(batch.FailedFiles, model.FailedFile{File: path, Error: errs[i].Error()})
			continue
		}
		batch.Successful[path] = results[i]
		batch.SuccessCount++
	}
	batch.FailureCount = len(batch.FailedFiles)
	return batch
}
