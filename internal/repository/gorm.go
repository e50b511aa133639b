package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"interviewai/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type gormRepository struct {
	db  *gorm.DB
	log logrus.FieldLogger
	now func() time.Time
}

// NewGormRepository creates an evaluation store on an open connection.
func NewGormRepository(db *gorm.DB, log logrus.FieldLogger) EvaluationStore {
	return &gormRepository{
		db:  db,
		log: log.WithField("component", "repository"),
		now: time.Now,
	}
}

func (r *gormRepository) SaveAnswerEvaluation(ctx context.Context, req model.AnswerRequest, result *model.EvaluationResult) (*model.AnswerEvaluationRecord, error) {
	rec := &model.AnswerEvaluationRecord{
		ID:        uuid.NewString(),
		Question:  req.Question,
		Answer:    req.Answer,
		Score:     result.Grade.String(),
		Feedback:  result.Feedback,
		CreatedAt: r.now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to save answer evaluation: %w", err)
	}

	r.log.WithField("id", rec.ID).Debug("answer evaluation saved")
	return rec, nil
}

func (r *gormRepository) SaveFinalEvaluation(ctx context.Context, req model.FinalEvaluationRequest, result *model.FinalEvaluation) (*model.FinalEvaluationRecord, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal final evaluation: %w", err)
	}

	rec := &model.FinalEvaluationRecord{
		ID:              uuid.NewString(),
		CandidateName:   req.CandidateName,
		YearsExperience: req.YearsExperience,
		OverallScore:    int(result.OverallScore),
		ResultJSON:      string(payload),
		CreatedAt:       r.now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to save final evaluation: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"id":        rec.ID,
		"candidate": rec.CandidateName,
	}).Debug("final evaluation saved")
	return rec, nil
}
