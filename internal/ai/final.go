package ai

import (
	"context"
	"fmt"

	"interviewai/internal/model"
)

// FinalEvaluator produces the overall verdict for an interview.
type FinalEvaluator struct {
	llm *Client
}

func NewFinalEvaluator(llm *Client) *FinalEvaluator {
	return &FinalEvaluator{llm: llm}
}

// finalReply uses pointers so missing keys can be told apart from empty
// values.
type finalReply struct {
	OverallScore        *model.Score `json:"overall_score"`
	Strengths           *string      `json:"strengths"`
	AreasForImprovement *string      `json:"areas_for_improvement"`
	TechnicalAssessment *string      `json:"technical_assessment"`
	Recommendations     *string      `json:"recommendations"`
}

func (r finalReply) missing() string {
	switch {
	case r.OverallScore == nil:
		return "overall_score"
	case r.Strengths == nil:
		return "strengths"
	case r.AreasForImprovement == nil:
		return "areas_for_improvement"
	case r.TechnicalAssessment == nil:
		return "technical_assessment"
	case r.Recommendations == nil:
		return "recommendations"
	}
	return ""
}

// Evaluate scores the whole interview. Every key of the verdict must be
// present in the reply.
func (e *FinalEvaluator) Evaluate(ctx context.Context, req model.FinalEvaluationRequest) (*model.FinalEvaluation, error) {
	log := e.llm.log.WithField("candidate", req.CandidateName)
	log.Infof("final evaluation over %d answers", len(req.QAPairs))

	var reply finalReply
	opts := callOptions{temperature: 0.5}
	if err := e.llm.completeJSON(ctx, StepFinalEvaluation, BuildFinalEvaluationPrompt(req), opts, &reply); err != nil {
		return nil, err
	}
	if key := reply.missing(); key != "" {
		return nil, &ParseError{Step: StepFinalEvaluation, Err: fmt.Errorf("missing key %q", key)}
	}

	result := &model.FinalEvaluation{
		OverallScore:        *reply.OverallScore,
		Strengths:           *reply.Strengths,
		AreasForImprovement: *reply.AreasForImprovement,
		TechnicalAssessment: *reply.TechnicalAssessment,
		Recommendations:     *reply.Recommendations,
	}
	log.WithField("overall_score", int(result.OverallScore)).Info("final evaluation complete")
	return result, nil
}
