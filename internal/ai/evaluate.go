package ai

import (
	"context"

	"interviewai/internal/model"
)

const noFeedback = "No feedback provided"

// AnswerEvaluator grades a single answer.
type AnswerEvaluator struct {
	llm *Client
}

func NewAnswerEvaluator(llm *Client) *AnswerEvaluator {
	return &AnswerEvaluator{llm: llm}
}

// Evaluate returns the grade exactly as the model reported it along with
// its feedback.
func (e *AnswerEvaluator) Evaluate(ctx context.Context, req model.AnswerRequest) (*model.EvaluationResult, error) {
	var result model.EvaluationResult
	prompt := BuildAnswerEvaluationPrompt(req.Question, req.Answer)
	if err := e.llm.completeJSON(ctx, StepAnswerEvaluation, prompt, callOptions{}, &result); err != nil {
		return nil, err
	}

	if len(result.Grade) == 0 {
		result.Grade = model.DefaultGrade
	}
	if result.Feedback == "" {
		result.Feedback = noFeedback
	}

	e.llm.log.WithField("grade", result.Grade.String()).Info("answer evaluated")
	return &result, nil
}
