package model

import "time"

// Word is a single transcribed word with its offsets in seconds.
// A zero offset means the provider did not report it.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is a timestamped span of the transcript.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// LongPause is a silence longer than the long-pause threshold.
type LongPause struct {
	Duration   float64 `json:"duration"`
	Position   float64 `json:"position"`
	BeforeWord string  `json:"before_word"`
	AfterWord  string  `json:"after_word"`
}

// PauseAnalysis summarises the silences between consecutive words.
type PauseAnalysis struct {
	PauseCount       int         `json:"pause_count"`
	AvgPauseDuration float64     `json:"avg_pause_duration"`
	MaxPauseDuration float64     `json:"max_pause_duration"`
	TotalPauseTime   float64     `json:"total_pause_time"`
	LongPauses       []LongPause `json:"long_pauses"`
}

// TranscriptionResult is the normalized outcome of one transcription call.
// Which content fields are populated depends on ResponseFormat.
type TranscriptionResult struct {
	FilePath       string    `json:"file_path"`
	ProcessingTime float64   `json:"processing_time"`
	ResponseFormat string    `json:"response_format"`
	Timestamp      time.Time `json:"timestamp"`

	Text          string         `json:"text,omitempty"`
	Language      string         `json:"language,omitempty"`
	Duration      float64        `json:"duration,omitempty"`
	Words         []Word         `json:"words,omitempty"`
	Segments      []Segment      `json:"segments,omitempty"`
	WordCount     int            `json:"word_count,omitempty"`
	SpeakingRate  float64        `json:"speaking_rate,omitempty"`
	PauseAnalysis *PauseAnalysis `json:"pause_analysis,omitempty"`

	// Content holds the raw provider payload for formats that are not
	// normalized (srt, vtt, json).
	Content string `json:"content,omitempty"`
}

// FailedFile records one file that could not be transcribed in a batch.
type FailedFile struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// BatchResult is the outcome of transcribing several files.
type BatchResult struct {
	Successful   map[string]*TranscriptionResult `json:"successful_transcriptions"`
	FailedFiles  []FailedFile                    `json:"failed_files"`
	TotalFiles   int                             `json:"total_files"`
	SuccessCount int                             `json:"success_count"`
	FailureCount int                             `json:"failure_count"`
}
