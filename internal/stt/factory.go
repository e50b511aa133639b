package stt

import (
	"interviewai/internal/config"

	"github.com/sirupsen/logrus"
)

// CreateProvider builds the transcription provider from configuration.
func CreateProvider(cfg *config.Config, api AudioTranscriber, log logrus.FieldLogger) Provider {
	defaults := Request{
		Language:   cfg.TranscriptionLanguage,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	}

	p := NewWhisperProvider(api, cfg.TranscriptionModel, log, WithDefaults(defaults))
	log.WithField("component", "stt").Infof("STT provider initialized: %s (retries=%d, delay=%s)",
		p.Name(), cfg.MaxRetries, cfg.RetryDelay)
	return p
}
