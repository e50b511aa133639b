package api

import (
	"context"

	"interviewai/internal/events"
	"interviewai/internal/model"

	"github.com/gin-gonic/gin"
)

// recordAnswer appends the evaluation to the store and publishes an event.
// Failures are logged and never reach the caller.
func (h *Handler) recordAnswer(c *gin.Context, req model.AnswerRequest, result *model.EvaluationResult) {
	ctx := context.WithoutCancel(c.Request.Context())
	log := requestLog(c, h.log)

	if h.store != nil {
		if _, err := h.store.SaveAnswerEvaluation(ctx, req, result); err != nil {
			log.WithError(err).Warn("failed to persist answer evaluation")
		}
	}
	if err := h.publisher.Publish(ctx, events.NewAnswerEvaluated(requestID(c), req, result)); err != nil {
		log.WithError(err).Warn("failed to publish answer evaluation")
	}
}

// recordFinal is recordAnswer for final evaluations.
func (h *Handler) recordFinal(c *gin.Context, req model.FinalEvaluationRequest, result *model.FinalEvaluation) {
	ctx := context.WithoutCancel(c.Request.Context())
	log := requestLog(c, h.log)

	if h.store != nil {
		if _, err := h.store.SaveFinalEvaluation(ctx, req, result); err != nil {
			log.WithError(err).Warn("failed to persist final evaluation")
		}
	}
	if err := h.publisher.Publish(ctx, events.NewFinalEvaluated(requestID(c), req, result)); err != nil {
		log.WithError(err).Warn("failed to publish final evaluation")
	}
}
