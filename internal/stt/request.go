package stt

import (
	"time"

	"github.com/sashabaranov/go-openai"
)

// InterviewPrompt guides the model towards verbatim interview transcripts.
const InterviewPrompt = `This is a job interview recording with a candidate responding to technical interview questions. ` +
	`Please transcribe accurately, maintaining natural speech patterns including 'um', 'uh', pauses, and repetitions. ` +
	`Preserve technical terms and regional English expressions as spoken. ` +
	`Include natural hesitations and self-corrections that show the candidate's thought process.`

// Request describes one transcription call. Zero values are replaced by the
// client's defaults, so a Request with only FilePath set is valid.
type Request struct {
	FilePath               string
	Language               string
	Prompt                 string
	Temperature            float32
	ResponseFormat         openai.AudioResponseFormat
	TimestampGranularities []openai.TranscriptionTimestampGranularity
	MaxRetries             int
	RetryDelay             time.Duration
}

// withDefaults returns a copy of r with unset fields filled from d.
func (r Request) withDefaults(d Request) Request {
	if r.Language == "" {
		r.Language = d.Language
	}
	if r.Prompt == "" {
		r.Prompt = d.Prompt
	}
	if r.ResponseFormat == "" {
		r.ResponseFormat = d.ResponseFormat
	}
	if len(r.TimestampGranularities) == 0 {
		r.TimestampGranularities = d.TimestampGranularities
	}
	if r.MaxRetries <= 0 {
		r.MaxRetries = d.MaxRetries
	}
	if r.RetryDelay <= 0 {
		r.RetryDelay = d.RetryDelay
	}
	return r
}

// DefaultRequest holds the settings used for interview answers.
func DefaultRequest() Request {
	return Request{
		Language:       "en",
		Prompt:         InterviewPrompt,
		Temperature:    0,
		ResponseFormat: openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularityWord,
			openai.TranscriptionTimestampGranularitySegment,
		},
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}
