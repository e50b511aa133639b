package api

import (
	"context"
	"net/http"
	"time"

	"interviewai/internal/events"
	"interviewai/internal/model"
	"interviewai/internal/repository"
	"interviewai/internal/storage"
	"interviewai/internal/stt"
	"interviewai/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type QuestionGenerator interface {
	Generate(ctx context.Context, req model.GenerateQuestionsRequest) (*model.QuestionSet, error)
}

type AnswerEvaluator interface {
	Evaluate(ctx context.Context, req model.AnswerRequest) (*model.EvaluationResult, error)
}

type FinalEvaluator interface {
	Evaluate(ctx context.Context, req model.FinalEvaluationRequest) (*model.FinalEvaluation, error)
}

// Dependencies are the collaborators behind the HTTP routes. Store and
// Publisher are optional.
type Dependencies struct {
	Questions QuestionGenerator
	Answers   AnswerEvaluator
	Final     FinalEvaluator
	STT       stt.Provider
	Uploads   *storage.UploadStore
	Store     repository.EvaluationStore
	Publisher events.Publisher
	Log       logrus.FieldLogger
}

// Handler serves the interview API.
type Handler struct {
	questions QuestionGenerator
	answers   AnswerEvaluator
	final     FinalEvaluator
	stt       stt.Provider
	uploads   *storage.UploadStore
	store     repository.EvaluationStore
	publisher events.Publisher
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewHandler(deps Dependencies) *Handler {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Handler{
		questions: deps.Questions,
		answers:   deps.Answers,
		final:     deps.Final,
		stt:       deps.STT,
		uploads:   deps.Uploads,
		store:     deps.Store,
		publisher: publisher,
		log:       deps.Log.WithField("component", "api"),
		now:       time.Now,
	}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", h.root)
	r.GET("/health", h.healthCheck)

	r.POST("/generate-questions", h.generateQuestions)
	r.POST("/evaluate-answer", h.evaluateAnswer)
	r.POST("/transcribe-audio", h.transcribeAudio)
	r.POST("/transcribe-audio/batch", h.transcribeBatch)
	r.POST("/final-evaluation", h.finalEvaluation)
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "AI Interview Assistant API is running"})
}

// healthCheck returns server health status
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) generateQuestions(c *gin.Context) {
	var req model.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	set, err := h.questions.Generate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "question generation failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": set})
}

func (h *Handler) evaluateAnswer(c *gin.Context) {
	var req model.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if len(req.Extra) > 0 {
		requestLog(c, h.log).WithField("ignored_fields", len(req.Extra)).Debug("ignoring extra answer fields")
	}

	result, err := h.answers.Evaluate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "answer evaluation failed", err)
		return
	}

	h.recordAnswer(c, req, result)
	c.JSON(http.StatusOK, result)
}

func (h *Handler) finalEvaluation(c *gin.Context) {
	var req model.FinalEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	result, err := h.final.Evaluate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "final evaluation failed", err)
		return
	}

	h.recordFinal(c, req, result)
	utils.Success(c, gin.H{
		"overall_score":         result.OverallScore,
		"strengths":             result.Strengths,
		"areas_for_improvement": result.AreasForImprovement,
		"technical_assessment":  result.TechnicalAssessment,
		"recommendations":       result.Recommendations,
	})
}
