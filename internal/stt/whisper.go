package stt

import (
	"context"
	"fmt"
	"time"

	"interviewai/internal/audio"
	"interviewai/internal/model"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// WhisperProvider implements Provider on top of the OpenAI audio API.
type WhisperProvider struct {
	api       AudioTranscriber
	model     string
	defaults  Request
	batchSize int
	log       logrus.FieldLogger

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// Option customises a WhisperProvider.
type Option func(*WhisperProvider)

// WithDefaults replaces the request defaults. Unset fields of d keep the
// built-in defaults.
func WithDefaults(d Request) Option {
	return func(p *WhisperProvider) { p.defaults = d.withDefaults(p.defaults) }
}

// WithBatchConcurrency bounds how many files TranscribeBatch sends at once.
func WithBatchConcurrency(n int) Option {
	return func(p *WhisperProvider) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// NewWhisperProvider creates a provider using the given transcription model
// (e.g. "whisper-1").
func NewWhisperProvider(api AudioTranscriber, modelName string, log logrus.FieldLogger, opts ...Option) *WhisperProvider {
	if modelName == "" {
		modelName = openai.Whisper1
	}
	p := &WhisperProvider{
		api:       api,
		model:     modelName,
		defaults:  DefaultRequest(),
		batchSize: 2,
		log:       log.WithField("component", "stt"),
		sleep:     sleepContext,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name
func (p *WhisperProvider) Name() string {
	return "openai-" + p.model
}

// Transcribe validates req.FilePath, calls the provider up to MaxRetries
// times with linear backoff and normalizes the reply.
func (p *WhisperProvider) Transcribe(ctx context.Context, req Request) (*model.TranscriptionResult, error) {
	req = req.withDefaults(p.defaults)
	log := p.log.WithField("file", req.FilePath)

	if err := audio.Validate(req.FilePath); err != nil {
		log.WithError(err).Error("rejecting audio file")
		return nil, err
	}

	params := openai.AudioRequest{
		Model:       p.model,
		FilePath:    req.FilePath,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		Language:    req.Language,
		Format:      req.ResponseFormat,
	}
	if req.ResponseFormat == openai.AudioResponseFormatVerboseJSON {
		params.TimestampGranularities = req.TimestampGranularities
	}

	var lastErr error
	for n := 1; n <= req.MaxRetries; n++ {
		log.WithField("attempt", n).Info("transcription attempt")

		start := p.now()
		a := call(ctx, p.api, params)
		elapsed := p.now().Sub(start)

		switch a.status {
		case attemptSucceeded:
			log.WithField("processing_time", elapsed).Info("transcription completed")
			return p.normalize(a.resp, req, elapsed), nil
		case attemptTerminal:
			log.WithError(a.err).Error("transcription failed, not retrying")
			return nil, fmt.Errorf("transcription of %s: %w", req.FilePath, a.err)
		}

		lastErr = a.err
		log.WithError(a.err).Warnf("attempt %d failed", n)
		if n == req.MaxRetries {
			break
		}

		delay := req.RetryDelay * time.Duration(n)
		if err := p.sleep(ctx, delay); err != nil {
			log.WithError(err).Warn("retry abandoned")
			return nil, fmt.Errorf("transcription of %s abandoned: %w", req.FilePath, err)
		}
	}

	log.Error("all transcription attempts failed")
	return nil, &ExhaustedError{Attempts: req.MaxRetries, Err: lastErr}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
