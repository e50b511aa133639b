package ai

import (
	"context"
	"strings"

	"interviewai/internal/logging"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// ChatCompleter is the part of the OpenAI client used here.
// *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient creates the OpenAI client shared by all components.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// Client sends single-message prompts and decodes JSON replies.
type Client struct {
	api   ChatCompleter
	model string
	log   logrus.FieldLogger
}

// NewClient wraps api for the given chat model.
func NewClient(api ChatCompleter, model string, log logrus.FieldLogger) *Client {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &Client{
		api:   api,
		model: model,
		log:   log.WithField("component", "ai"),
	}
}

type callOptions struct {
	maxTokens   int
	temperature float32
}

// completeJSON sends prompt as a user message in JSON mode and decodes the
// reply into out. Call failures are ProviderErrors and undecodable replies
// are ParseErrors, both tagged with step.
func (c *Client) completeJSON(ctx context.Context, step Step, prompt string, opts callOptions, out any) error {
	log := c.log.WithField("step", string(step))

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   opts.maxTokens,
		Temperature: opts.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	log.WithField("prompt_length", len(prompt)).Debug("calling OpenAI")
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		log.WithError(err).Error("OpenAI API error")
		return &ProviderError{Step: step, Err: err}
	}

	log.WithFields(logrus.Fields{
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	}).Debug("OpenAI response received")

	if len(resp.Choices) == 0 {
		log.Error("OpenAI returned no choices")
		return &ParseError{Step: step, Err: errEmptyReply}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := decodeReply(content, out); err != nil {
		log.WithError(err).Error("failed to parse reply")
		log.Debugf("raw reply: %s", logging.Truncate(content, 500))
		return &ParseError{Step: step, Err: err}
	}
	return nil
}
