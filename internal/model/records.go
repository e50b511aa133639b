package model

import "time"

// AnswerEvaluationRecord is one row of the append-only answer log.
type AnswerEvaluationRecord struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Score     string    `gorm:"size:32" json:"score"`
	Feedback  string    `gorm:"type:text" json:"feedback"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AnswerEvaluationRecord) TableName() string { return "answer_evaluations" }

// FinalEvaluationRecord is one row of the append-only final evaluation log.
// ResultJSON stores the full verdict as returned to the caller.
type FinalEvaluationRecord struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	CandidateName   string    `gorm:"size:255;not null" json:"candidate_name"`
	YearsExperience int       `json:"years_experience"`
	OverallScore    int       `json:"overall_score"`
	ResultJSON      string    `gorm:"type:text" json:"result_json"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

func (FinalEvaluationRecord) TableName() string { return "final_evaluations" }
