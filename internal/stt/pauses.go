package stt

import "interviewai/internal/model"

const (
	// Gaps at or below this are treated as measurement noise.
	minPauseSeconds = 0.1
	// Gaps above this are reported individually.
	longPauseSeconds = 2.0
)

// AnalyzePauses measures the silences between consecutive words. Word pairs
// missing either boundary offset are skipped. It is a pure function.
func AnalyzePauses(words []model.Word) model.PauseAnalysis {
	analysis := model.PauseAnalysis{LongPauses: []model.LongPause{}}
	if len(words) < 2 {
		return analysis
	}

	for i := 1; i < len(words); i++ {
		prevEnd := words[i-1].End
		currStart := words[i].Start
		if prevEnd == 0 || currStart == 0 {
			continue
		}

		gap := currStart - prevEnd
		if gap <= minPauseSeconds {
			continue
		}

		analysis.PauseCount++
		analysis.TotalPauseTime += gap
		if gap > analysis.MaxPauseDuration {
			analysis.MaxPauseDuration = gap
		}

		if gap > longPauseSeconds {
			analysis.LongPauses = append(analysis.LongPauses, model.LongPause{
				Duration:   gap,
				Position:   currStart,
				BeforeWord: words[i-1].Word,
				AfterWord:  words[i].Word,
			})
		}
	}

	if analysis.PauseCount > 0 {
		analysis.AvgPauseDuration = analysis.TotalPauseTime / float64(analysis.PauseCount)
	}
	return analysis
}
