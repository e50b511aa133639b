package events

import (
	"context"
	"time"

	"interviewai/internal/model"

	"github.com/google/uuid"
)

const (
	TypeAnswerEvaluated = "answer.evaluated"
	TypeFinalEvaluated  = "final.evaluated"
)

// Event is the JSON envelope published for every completed evaluation.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	RequestID  string    `json:"request_id,omitempty"`
	Payload    any       `json:"payload"`
}

// Publisher delivers evaluation events. Delivery is best-effort.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type AnswerEvaluated struct {
	Question string                  `json:"question"`
	Answer   string                  `json:"answer"`
	Result   *model.EvaluationResult `json:"result"`
}

type FinalEvaluated struct {
	CandidateName   string                 `json:"candidate_name"`
	YearsExperience int                    `json:"years_experience"`
	Questions       int                    `json:"questions"`
	Result          *model.FinalEvaluation `json:"result"`
}

func NewAnswerEvaluated(requestID string, req model.AnswerRequest, result *model.EvaluationResult) Event {
	return newEvent(TypeAnswerEvaluated, requestID, AnswerEvaluated{
		Question: req.Question,
		Answer:   req.Answer,
		Result:   result,
	})
}

func NewFinalEvaluated(requestID string, req model.FinalEvaluationRequest, result *model.FinalEvaluation) Event {
	return newEvent(TypeFinalEvaluated, requestID, FinalEvaluated{
		CandidateName:   req.CandidateName,
		YearsExperience: req.YearsExperience,
		Questions:       len(req.QAPairs),
		Result:          result,
	})
}

func newEvent(typ, requestID string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: time.Now().UTC(),
		RequestID:  requestID,
		Payload:    payload,
	}
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
