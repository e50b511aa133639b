package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"interviewai/internal/ai"
	"interviewai/internal/events"
	"interviewai/internal/logging"
	"interviewai/internal/model"
	"interviewai/internal/storage"
	"interviewai/internal/stt"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubChat returns a canned reply chosen by a marker in the prompt.
type stubChat struct {
	mu      sync.Mutex
	replies map[string]string
	err     error
	calls   int
}

func (s *stubChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	content := s.replies[""]
	for marker, reply := range s.replies {
		if marker != "" && strings.Contains(req.Messages[0].Content, marker) {
			content = reply
			break
		}
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
	}, nil
}

// stubTranscriber fails files whose content is "FAIL".
type stubTranscriber struct {
	resp openai.AudioResponse
	err  error
}

func (s *stubTranscriber) CreateTranscription(_ context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	if data, err := os.ReadFile(req.FilePath); err == nil && string(data) == "FAIL" {
		return openai.AudioResponse{}, errors.New("connection reset")
	}
	return s.resp, s.err
}

type fakeStore struct {
	mu      sync.Mutex
	answers []model.AnswerRequest
	finals  []model.FinalEvaluationRequest
	err     error
}

func (f *fakeStore) SaveAnswerEvaluation(_ context.Context, req model.AnswerRequest, result *model.EvaluationResult) (*model.AnswerEvaluationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.answers = append(f.answers, req)
	return &model.AnswerEvaluationRecord{Question: req.Question, Score: result.Grade.String()}, nil
}

func (f *fakeStore) SaveFinalEvaluation(_ context.Context, req model.FinalEvaluationRequest, result *model.FinalEvaluation) (*model.FinalEvaluationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.finals = append(f.finals, req)
	return &model.FinalEvaluationRecord{CandidateName: req.CandidateName, OverallScore: int(result.OverallScore)}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type testServer struct {
	router    *gin.Engine
	chat      *stubChat
	audio     *stubTranscriber
	store     *fakeStore
	publisher *fakePublisher
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logging.Discard()
	ts := &testServer{
		chat:      &stubChat{replies: map[string]string{}},
		audio:     &stubTranscriber{resp: openai.AudioResponse{Text: "A mutex is a lock", Language: "english", Duration: 2}},
		store:     &fakeStore{},
		publisher: &fakePublisher{},
		uploadDir: t.TempDir(),
	}

	llm := ai.NewClient(ts.chat, "gpt-test", log)
	provider := stt.NewWhisperProvider(ts.audio, openai.Whisper1, log,
		stt.WithDefaults(stt.Request{MaxRetries: 1}))

	h := NewHandler(Dependencies{
		Questions: ai.NewQuestionGenerator(llm),
		Answers:   ai.NewAnswerEvaluator(llm),
		Final:     ai.NewFinalEvaluator(llm),
		STT:       provider,
		Uploads:   storage.NewUploadStore(ts.uploadDir, log),
		Store:     ts.store,
		Publisher: ts.publisher,
		Log:       log,
	})
	h.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	r := gin.New()
	r.Use(RequestID(), CORSMiddleware())
	RegisterRoutes(r, h)
	ts.router = r
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return ts.do(req)
}

func (ts *testServer) uploadsLeft(t *testing.T) int {
	entries, err := os.ReadDir(ts.uploadDir)
	require.NoError(t, err)
	return len(entries)
}

func multipartRequest(t *testing.T, path, field string, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestRootAndHealth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "AI Interview Assistant API is running"}`, w.Body.String())

	w = ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "healthy", "timestamp": "2026-01-02T03:04:05Z"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestEvaluateAnswerEndToEnd(t *testing.T) {
	ts := newTestServer(t)
	ts.chat.replies[""] = `{"grade":"3","feedback":"Too shallow"}`

	req := httptest.NewRequest(http.MethodPost, "/evaluate-answer",
		strings.NewReader(`{"question":"What is a mutex?","answer":"A lock.","session":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-42")
	w := ts.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"grade":"3","feedback":"Too shallow"}`, w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	require.Len(t, ts.store.answers, 1)
	assert.Equal(t, "What is a mutex?", ts.store.answers[0].Question)
	require.Len(t, ts.publisher.events, 1)
	assert.Equal(t, events.TypeAnswerEvaluated, ts.publisher.events[0].Type)
	assert.Equal(t, "req-42", ts.publisher.events[0].RequestID)
}

func TestEvaluateAnswerSurvivesRecordingFailures(t *testing.T) {
	ts := newTestServer(t)
	ts.chat.replies[""] = `{"grade": 6, "feedback": "Fine"}`
	ts.store.err = errors.New("disk full")
	ts.publisher.err = errors.New("broker down")

	w := ts.postJSON("/evaluate-answer", `{"question":"q","answer":"a"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"grade": 6, "feedback": "Fine"}`, w.Body.String())
}

func TestEvaluateAnswerErrors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postJSON("/evaluate-answer", `{"answer":"a"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Zero(t, ts.chat.calls)

	ts.chat.replies[""] = `no json here`
	w = ts.postJSON("/evaluate-answer", `{"question":"q","answer":"a"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "failed to parse answer evaluation")
	assert.Empty(t, ts.store.answers)

	ts.chat.err = errors.New("timeout")
	w = ts.postJSON("/evaluate-answer", `{"question":"q","answer":"a"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGenerateQuestions(t *testing.T) {
	ts := newTestServer(t)
	ts.chat.replies[`"tech_stack"`] = `{"tech_stack": ["Go"]}`
	ts.chat.replies[`"tech_questions"`] = `{"tech_questions": [{"technology": "Go", "question": "What is a goroutine?", "answer_points": ["1","2","3","4","5"]}]}`
	ts.chat.replies[""] = `{"questions": [{"question": "Explain CAP.", "answer_points": ["1","2","3","4","5"]}]}`

	w := ts.postJSON("/generate-questions", `{"job_description": "Go engineer", "num_questions": 1, "years_experience": 3}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Questions model.QuestionSet `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"Go"}, body.Questions.TechStack)
	require.Len(t, body.Questions.GeneralQuestions, 1)
	require.Len(t, body.Questions.TechQuestions, 1)
	assert.Equal(t, "Go", body.Questions.TechQuestions[0].Technology)
}

func TestGenerateQuestionsValidation(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{`{}`, `{"job_description": "x", "num_questions": -1}`, `not json`} {
		w := ts.postJSON("/generate-questions", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Zero(t, ts.chat.calls)
}

func TestFinalEvaluation(t *testing.T) {
	ts := newTestServer(t)
	ts.chat.replies[""] = `{"overall_score": 81, "strengths": "s", "areas_for_improvement": "a", "technical_assessment": "t", "recommendations": "r"}`

	w := ts.postJSON("/final-evaluation", `{
		"job_description": "Go engineer",
		"candidate_name": "Sam",
		"years_experience": 5,
		"qa_pairs": [{"question": "q1", "answer": "a1", "feedback": "good"}]
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"success": true,
		"overall_score": 81,
		"strengths": "s",
		"areas_for_improvement": "a",
		"technical_assessment": "t",
		"recommendations": "r"
	}`, w.Body.String())
	require.Len(t, ts.store.finals, 1)
	require.Len(t, ts.publisher.events, 1)
	assert.Equal(t, events.TypeFinalEvaluated, ts.publisher.events[0].Type)
}

func TestFinalEvaluationErrors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postJSON("/final-evaluation", `{"job_description": "jd", "candidate_name": "Sam", "qa_pairs": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ts.chat.replies[""] = `{"overall_score": 81}`
	w = ts.postJSON("/final-evaluation", `{"job_description": "jd", "candidate_name": "Sam", "qa_pairs": [{"question": "q", "answer": ""}]}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, ts.store.finals)
}

func TestTranscribeAudio(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(multipartRequest(t, "/transcribe-audio", "file", map[string]string{"answer.wav": "RIFF"}))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Transcript model.TranscriptionResult `json:"transcript"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "A mutex is a lock", body.Transcript.Text)
	assert.Equal(t, "answer.wav", body.Transcript.FilePath)
	assert.Zero(t, ts.uploadsLeft(t))
}

func TestTranscribeAudioAcceptsAlternateField(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(multipartRequest(t, "/transcribe-audio", "audio", map[string]string{"answer.mp3": "ID3"}))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTranscribeAudioFailuresCleanUp(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(multipartRequest(t, "/transcribe-audio", "file", map[string]string{"notes.txt": "hello"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "notes.txt")
	assert.Zero(t, ts.uploadsLeft(t))

	ts.audio.err = &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable, Message: "overloaded"}
	w = ts.do(multipartRequest(t, "/transcribe-audio", "file", map[string]string{"answer.wav": "RIFF"}))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), ts.uploadDir)
	assert.Zero(t, ts.uploadsLeft(t))

	w = ts.do(multipartRequest(t, "/transcribe-audio", "other", map[string]string{"answer.wav": "RIFF"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranscribeBatch(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(multipartRequest(t, "/transcribe-audio/batch", "files", map[string]string{
		"one.wav":  "RIFF",
		"two.m4a":  "ftyp",
		"bad.txt":  "text",
		"fail.mp3": "FAIL",
	}))
	require.Equal(t, http.StatusOK, w.Code)

	var batch model.BatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &batch))
	assert.Equal(t, 4, batch.TotalFiles)
	assert.Equal(t, 2, batch.SuccessCount)
	assert.Equal(t, 2, batch.FailureCount)
	assert.Contains(t, batch.Successful, "one.wav")
	assert.Contains(t, batch.Successful, "two.m4a")

	failed := map[string]string{}
	for _, f := range batch.FailedFiles {
		failed[f.File] = f.Error
	}
	assert.Contains(t, failed, "bad.txt")
	assert.Contains(t, failed, "fail.mp3")
	assert.NotContains(t, failed["bad.txt"], ts.uploadDir)
	assert.Zero(t, ts.uploadsLeft(t))
}

func TestTranscribeBatchRequiresFiles(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(multipartRequest(t, "/transcribe-audio/batch", "file", map[string]string{"one.wav": "RIFF"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodOptions, "/evaluate-answer", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
