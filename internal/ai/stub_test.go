package ai

import (
	"context"
	"strings"
	"sync"

	"interviewai/internal/logging"

	"github.com/sashabaranov/go-openai"
)

type chatReply struct {
	content string
	err     error
}

// stubChat answers by matching a marker in the prompt; it records every
// request it receives.
type stubChat struct {
	mu       sync.Mutex
	routes   map[string]chatReply
	fallback chatReply
	requests []openai.ChatCompletionRequest
}

func newStubChat(fallback chatReply) *stubChat {
	return &stubChat{routes: map[string]chatReply{}, fallback: fallback}
}

func (s *stubChat) on(marker string, reply chatReply) *stubChat {
	s.routes[marker] = reply
	return s
}

func (s *stubChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)

	prompt := req.Messages[0].Content
	reply := s.fallback
	for marker, r := range s.routes {
		if strings.Contains(prompt, marker) {
			reply = r
			break
		}
	}
	if reply.err != nil {
		return openai.ChatCompletionResponse{}, reply.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply.content}},
		},
	}, nil
}

func (s *stubChat) promptsContaining(marker string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, r := range s.requests {
		if strings.Contains(r.Messages[0].Content, marker) {
			out = append(out, r.Messages[0].Content)
		}
	}
	return out
}

func newTestClient(api ChatCompleter) *Client {
	return NewClient(api, "gpt-test", logging.Discard())
}

const (
	techStackMarker     = `"tech_stack"`
	techQuestionsMarker = `"tech_questions"`
)
