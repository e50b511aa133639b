package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AnswerRequest is the body of POST /evaluate-answer. Fields other than
// question and answer are kept in Extra and otherwise ignored.
type AnswerRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (r *AnswerRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	type plain AnswerRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	delete(fields, "question")
	delete(fields, "answer")
	if len(fields) > 0 {
		p.Extra = fields
	}
	*r = AnswerRequest(p)
	return nil
}

// Grade holds a score exactly as the model returned it, either a JSON
// number or a JSON string. It is not clamped or validated.
type Grade json.RawMessage

// DefaultGrade is reported when the model omits the grade.
var DefaultGrade = Grade(`"0"`)

func (g Grade) MarshalJSON() ([]byte, error) {
	if len(g) == 0 {
		return DefaultGrade, nil
	}
	return g, nil
}

func (g *Grade) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = nil
		return nil
	}
	if len(data) == 0 || (data[0] != '"' && data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return fmt.Errorf("grade must be a number or a string, got %s", data)
	}
	*g = append((*g)[:0], data...)
	return nil
}

// String returns the grade without JSON quoting.
func (g Grade) String() string {
	if len(g) == 0 {
		return "0"
	}
	var s string
	if err := json.Unmarshal(g, &s); err == nil {
		return s
	}
	return string(g)
}

// EvaluationResult is the answer-level verdict.
type EvaluationResult struct {
	Grade    Grade  `json:"grade"`
	Feedback string `json:"feedback"`
}

// QAPair is one interview exchange fed into the final evaluation.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback,omitempty"`
}

// FinalEvaluationRequest is the body of POST /final-evaluation.
type FinalEvaluationRequest struct {
	JobDescription  string   `json:"job_description" binding:"required"`
	QAPairs         []QAPair `json:"qa_pairs" binding:"required,min=1"`
	CandidateName   string   `json:"candidate_name" binding:"required"`
	YearsExperience int      `json:"years_experience" binding:"min=0,max=60"`
}

// Score is an integer 0-100. Models sometimes send it as a string or a
// float, so both are accepted when they hold a whole number in range.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("overall_score is not a number: %s", data)
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("overall_score is not an integer: %s", data)
	}
	if f < 0 || f > 100 {
		return fmt.Errorf("overall_score %v out of range 0-100", f)
	}
	*s = Score(f)
	return nil
}

// FinalEvaluation is the aggregate verdict over a whole interview.
type FinalEvaluation struct {
	OverallScore        Score  `json:"overall_score"`
	Strengths           string `json:"strengths"`
	AreasForImprovement string `json:"areas_for_improvement"`
	TechnicalAssessment string `json:"technical_assessment"`
	Recommendations     string `json:"recommendations"`
}
