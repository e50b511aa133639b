package stt

import (
	"strings"
	"time"

	"interviewai/internal/model"

	"github.com/sashabaranov/go-openai"
)

func (p *WhisperProvider) normalize(resp openai.AudioResponse, req Request, elapsed time.Duration) *model.TranscriptionResult {
	result := &model.TranscriptionResult{
		FilePath:       req.FilePath,
		ProcessingTime: elapsed.Seconds(),
		ResponseFormat: string(req.ResponseFormat),
		Timestamp:      p.now().UTC(),
	}

	switch req.ResponseFormat {
	case openai.AudioResponseFormatVerboseJSON:
		result.Text = resp.Text
		result.Language = resp.Language
		result.Duration = resp.Duration

		for _, w := range resp.Words {
			result.Words = append(result.Words, model.Word{Word: w.Word, Start: w.Start, End: w.End})
		}
		for _, s := range resp.Segments {
			result.Segments = append(result.Segments, model.Segment{ID: s.ID, Start: s.Start, End: s.End, Text: s.Text})
		}

		result.WordCount = len(strings.Fields(resp.Text))
		result.SpeakingRate = speakingRate(result.WordCount, resp.Duration)

		if len(result.Words) > 0 {
			analysis := AnalyzePauses(result.Words)
			result.PauseAnalysis = &analysis
		}

	case openai.AudioResponseFormatText:
		result.Text = resp.Text
		result.WordCount = len(strings.Fields(resp.Text))

	default:
		result.Content = resp.Text
	}

	return result
}

// speakingRate returns words per minute, or 0 when the duration is unknown.
func speakingRate(words int, durationSeconds float64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return float64(words) / durationSeconds * 60
}
