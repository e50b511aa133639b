package api

import (
	"errors"
	"net/http"

	"interviewai/internal/ai"
	"interviewai/internal/audio"
	"interviewai/internal/stt"
	"interviewai/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
)

// statusFor maps a component error to an HTTP status: bad input is the
// caller's fault, upstream model failures are a bad gateway.
func statusFor(err error) int {
	var (
		parseErr     *ai.ParseError
		providerErr  *ai.ProviderError
		exhaustedErr *stt.ExhaustedError
		apiErr       *openai.APIError
		requestErr   *openai.RequestError
	)
	switch {
	case errors.Is(err, audio.ErrInvalidAudio):
		return http.StatusBadRequest
	case errors.As(err, &parseErr),
		errors.As(err, &providerErr),
		errors.As(err, &exhaustedErr),
		errors.As(err, &apiErr),
		errors.As(err, &requestErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, stage string, err error) {
	code := statusFor(err)
	requestLog(c, h.log).WithError(err).WithField("status", code).Error(stage)
	utils.Error(c, code, stage+": "+err.Error())
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	requestLog(c, h.log).WithError(err).Warn("invalid request")
	utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
}
