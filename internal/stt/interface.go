package stt

import (
	"context"

	"interviewai/internal/model"

	"github.com/sashabaranov/go-openai"
)

// AudioTranscriber is the part of the OpenAI client used here.
// *openai.Client satisfies it.
type AudioTranscriber interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

// Provider transcribes one audio file into a normalized result.
type Provider interface {
	// Transcribe validates the file, calls the provider with retries and
	// returns the normalized result
	Transcribe(ctx context.Context, req Request) (*model.TranscriptionResult, error)

	// TranscribeBatch transcribes several files without stopping on failures
	TranscribeBatch(ctx context.Context, paths []string, req Request) *model.BatchResult

	// Name returns the provider name
	Name() string
}
