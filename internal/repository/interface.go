package repository

import (
	"context"

	"interviewai/internal/model"
)

// EvaluationStore is an append-only log of evaluation results. Rows are
// never updated or deleted.
type EvaluationStore interface {
	// SaveAnswerEvaluation records one graded answer.
	SaveAnswerEvaluation(ctx context.Context, req model.AnswerRequest, result *model.EvaluationResult) (*model.AnswerEvaluationRecord, error)

	// SaveFinalEvaluation records one final verdict with its full payload.
	SaveFinalEvaluation(ctx context.Context, req model.FinalEvaluationRequest, result *model.FinalEvaluation) (*model.FinalEvaluationRecord, error)
}
