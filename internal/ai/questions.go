package ai

import (
	"context"
	"fmt"
	"strings"

	"interviewai/internal/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const answerPointsPerQuestion = 5

// QuestionGenerator builds an interview question set from a job
// description in three model calls. Tech stack extraction and general
// questions run concurrently; tech questions wait for the tech stack.
type QuestionGenerator struct {
	llm *Client
}

func NewQuestionGenerator(llm *Client) *QuestionGenerator {
	return &QuestionGenerator{llm: llm}
}

// Generate returns the full question set or the first step error. No
// partial result is returned.
func (g *QuestionGenerator) Generate(ctx context.Context, req model.GenerateQuestionsRequest) (*model.QuestionSet, error) {
	log := g.llm.log.WithField("years_experience", req.YearsExperience)
	log.Infof("generating %d questions", req.QuestionCount())

	var (
		techStack []string
		general   []model.GeneralQuestion
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		techStack, err = g.extractTechStack(egCtx, req.JobDescription)
		return err
	})
	eg.Go(func() error {
		var err error
		general, err = g.generalQuestions(egCtx, req)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	techQuestions := []model.TechQuestion{}
	if len(techStack) > 0 {
		var err error
		techQuestions, err = g.techQuestions(ctx, techStack, req.YearsExperience)
		if err != nil {
			return nil, err
		}
	} else {
		log.Info("empty tech stack, skipping tech questions")
	}

	log.WithFields(logrus.Fields{
		"tech_stack":        len(techStack),
		"general_questions": len(general),
		"tech_questions":    len(techQuestions),
	}).Info("question set complete")

	return &model.QuestionSet{
		GeneralQuestions: general,
		TechQuestions:    techQuestions,
		TechStack:        techStack,
	}, nil
}

func (g *QuestionGenerator) extractTechStack(ctx context.Context, jobDescription string) ([]string, error) {
	var reply struct {
		TechStack []string `json:"tech_stack"`
	}
	opts := callOptions{maxTokens: 500, temperature: 0.3}
	if err := g.llm.completeJSON(ctx, StepTechStack, BuildTechStackPrompt(jobDescription), opts, &reply); err != nil {
		return nil, err
	}

	stack := make([]string, 0, len(reply.TechStack))
	for _, tech := range reply.TechStack {
		if tech = strings.TrimSpace(tech); tech != "" {
			stack = append(stack, tech)
		}
	}
	return stack, nil
}

func (g *QuestionGenerator) generalQuestions(ctx context.Context, req model.GenerateQuestionsRequest) ([]model.GeneralQuestion, error) {
	var reply struct {
		Questions []model.GeneralQuestion `json:"questions"`
	}
	prompt := BuildGeneralQuestionsPrompt(req.JobDescription, req.QuestionCount(), req.YearsExperience)
	opts := callOptions{maxTokens: 1500, temperature: 0.7}
	if err := g.llm.completeJSON(ctx, StepGeneralQuestions, prompt, opts, &reply); err != nil {
		return nil, err
	}

	if want := req.QuestionCount(); len(reply.Questions) != want {
		return nil, &ParseError{Step: StepGeneralQuestions, Err: fmt.Errorf("expected %d questions, got %d", want, len(reply.Questions))}
	}
	for i, q := range reply.Questions {
		if err := checkQuestion(q.Question, q.AnswerPoints); err != nil {
			return nil, &ParseError{Step: StepGeneralQuestions, Err: fmt.Errorf("question %d: %w", i+1, err)}
		}
	}
	return reply.Questions, nil
}

func (g *QuestionGenerator) techQuestions(ctx context.Context, techStack []string, years int) ([]model.TechQuestion, error) {
	var reply struct {
		TechQuestions []model.TechQuestion `json:"tech_questions"`
	}
	opts := callOptions{maxTokens: 1500, temperature: 0.7}
	if err := g.llm.completeJSON(ctx, StepTechQuestions, BuildTechQuestionsPrompt(techStack, years), opts, &reply); err != nil {
		return nil, err
	}

	if len(reply.TechQuestions) != len(techStack) {
		return nil, &ParseError{Step: StepTechQuestions, Err: fmt.Errorf("expected %d questions, one per technology, got %d", len(techStack), len(reply.TechQuestions))}
	}
	for i, q := range reply.TechQuestions {
		if !strings.EqualFold(strings.TrimSpace(q.Technology), techStack[i]) {
			return nil, &ParseError{Step: StepTechQuestions, Err: fmt.Errorf("question %d: expected technology %q, got %q", i+1, techStack[i], q.Technology)}
		}
		if err := checkQuestion(q.Question, q.AnswerPoints); err != nil {
			return nil, &ParseError{Step: StepTechQuestions, Err: fmt.Errorf("question %d (%s): %w", i+1, q.Technology, err)}
		}
	}
	return reply.TechQuestions, nil
}

func checkQuestion(question string, points []string) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("empty question text")
	}
	if len(points) != answerPointsPerQuestion {
		return fmt.Errorf("expected %d answer points, got %d", answerPointsPerQuestion, len(points))
	}
	return nil
}
