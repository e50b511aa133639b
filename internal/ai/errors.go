package ai

import "fmt"

// Step names one model call in the interview workflow.
type Step string

const (
	StepTechStack        Step = "tech stack extraction"
	StepGeneralQuestions Step = "general question generation"
	StepTechQuestions    Step = "tech question generation"
	StepAnswerEvaluation Step = "answer evaluation"
	StepFinalEvaluation  Step = "final evaluation"
)

// ParseError means the model replied but the reply did not have the
// requested JSON shape. It is never retried.
type ParseError struct {
	Step Step
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from LLM: %v", e.Step, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ProviderError means the model call itself failed.
type ProviderError struct {
	Step Step
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
