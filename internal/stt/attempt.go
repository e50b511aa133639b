package stt

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

type attemptStatus int

const (
	attemptSucceeded attemptStatus = iota
	attemptTransient
	attemptTerminal
)

func (s attemptStatus) String() string {
	switch s {
	case attemptSucceeded:
		return "succeeded"
	case attemptTransient:
		return "transient"
	default:
		return "terminal"
	}
}

// attempt is the outcome of a single provider call. The retry loop
// branches on status only.
type attempt struct {
	status attemptStatus
	resp   openai.AudioResponse
	err    error
}

// ExhaustedError is returned once every attempt failed transiently.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("transcription failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// terminalStatus lists provider replies that will not change on retry.
var terminalStatus = map[int]bool{
	http.StatusBadRequest:            true,
	http.StatusUnauthorized:          true,
	http.StatusForbidden:             true,
	http.StatusNotFound:              true,
	http.StatusRequestEntityTooLarge: true,
	http.StatusUnsupportedMediaType:  true,
	http.StatusUnprocessableEntity:   true,
}

func call(ctx context.Context, api AudioTranscriber, req openai.AudioRequest) attempt {
	resp, err := api.CreateTranscription(ctx, req)
	if err == nil {
		return attempt{status: attemptSucceeded, resp: resp}
	}
	return attempt{status: classify(ctx, err), err: err}
}

func classify(ctx context.Context, err error) attemptStatus {
	if ctx.Err() != nil {
		return attemptTerminal
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return attemptTerminal
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && terminalStatus[apiErr.HTTPStatusCode] {
		return attemptTerminal
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && terminalStatus[reqErr.HTTPStatusCode] {
		return attemptTerminal
	}
	return attemptTransient
}
