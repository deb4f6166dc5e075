package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/emiliopalmerini/flexrun/internal/review"
	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
)

type testLogger struct{}

func (testLogger) Debug(string) {}
func (testLogger) Error(string) {}

type fakeBackend struct {
	def       *domain.TestDefinition
	defErr    error
	submitted *domain.FeedbackSubmission
	submitErr error
}

func (f *fakeBackend) FetchDefinition(ctx context.Context, id string) (*domain.TestDefinition, error) {
	return f.def, f.defErr
}

func (f *fakeBackend) SubmitFeedback(ctx context.Context, sub *domain.FeedbackSubmission) error {
	f.submitted = sub
	return f.submitErr
}

func (f *fakeBackend) TranscribeAudio(ctx context.Context, audio []byte) (string, error) {
	return "", nil
}

type fakeRecorder struct{}

func (fakeRecorder) Start(ctx context.Context) error { return nil }
func (fakeRecorder) Stop() ([]byte, error)           { return nil, nil }

type fakeMetrics struct{}

func (fakeMetrics) RecordFetch(context.Context, string, time.Duration)         {}
func (fakeMetrics) RecordSubmission(context.Context, string)                   {}
func (fakeMetrics) RecordTranscription(context.Context, string, time.Duration) {}
func (fakeMetrics) Close(context.Context) error                                { return nil }

type fakeDirectory struct {
	tests    []review.TestSummary
	grouped  []review.QuestionResponses
	title    string
	listErr  error
	fetchErr error
}

func (f *fakeDirectory) ListTests(ctx context.Context) ([]review.TestSummary, error) {
	return f.tests, f.listErr
}

func (f *fakeDirectory) FetchResponses(ctx context.Context, id string) (string, []review.QuestionResponses, error) {
	return f.title, f.grouped, f.fetchErr
}

func newTestServer(backend *fakeBackend, directory *fakeDirectory) *Server {
	service := domain.NewService(backend, fakeRecorder{}, fakeMetrics{}, testLogger{})
	return NewServer(service, directory, testLogger{}, 0)
}

func get(t *testing.T, s *Server, path string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakeBackend{}, &fakeDirectory{})
	rec := get(t, s, "/health", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestShareLink(t *testing.T) {
	s := newTestServer(&fakeBackend{}, &fakeDirectory{})

	rec := get(t, s, "/?id=%20rec%201%20", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/t/rec1" {
		t.Errorf("Location = %q", loc)
	}

	rec = get(t, s, "/", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status without id = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No se encontró el ID del test en el link.") {
		t.Error("missing-id message not rendered")
	}
}

func TestWelcomePage(t *testing.T) {
	backend := &fakeBackend{def: &domain.TestDefinition{
		ID:          "rec1",
		Title:       "Checkout <Flow>",
		Description: "Comprá algo",
	}}
	s := newTestServer(backend, &fakeDirectory{})

	rec := get(t, s, "/t/rec1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "¡Bienvenido/a!") || !strings.Contains(body, "Comprá algo") {
		t.Error("welcome content missing")
	}
	if strings.Contains(body, "<Flow>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(body, "/t/rec1/proto") {
		t.Error("start link missing")
	}
}

func TestWelcomePage_BackendDown(t *testing.T) {
	backend := &fakeBackend{defErr: errors.New("connection refused")}
	s := newTestServer(backend, &fakeDirectory{})

	rec := get(t, s, "/t/rec1", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "No se pudo cargar el test") {
		t.Error("error message missing")
	}
	if !strings.Contains(body, "Reintentar") {
		t.Error("retry link missing for retryable failure")
	}
}

func TestPrototypePage(t *testing.T) {
	backend := &fakeBackend{def: &domain.TestDefinition{
		ID:            "rec1",
		Title:         "T",
		DeviceType:    domain.DeviceWeb,
		PrototypeLink: "https://www.figma.com/proto/abc",
	}}
	s := newTestServer(backend, &fakeDirectory{})

	rec := get(t, s, "/t/rec1/proto", nil)
	body := rec.Body.String()
	if !strings.Contains(body, "figma.com/embed?embed_host=share") {
		t.Error("embed wrapper missing")
	}
	if !strings.Contains(body, "aspect-ratio: 16 / 10") {
		t.Error("web geometry missing")
	}
	if !strings.Contains(body, "allowfullscreen") {
		t.Error("iframe should allow fullscreen")
	}
	if !strings.Contains(body, `class="no-scroll"`) {
		t.Error("prototype page should lock scrolling")
	}
	if strings.Contains(body, "advisory") {
		t.Error("desktop viewport should get no advisory")
	}
}

func TestPrototypePage_MobileAdvisory(t *testing.T) {
	backend := &fakeBackend{def: &domain.TestDefinition{
		ID:            "rec1",
		Title:         "T",
		DeviceType:    domain.DeviceWeb,
		PrototypeLink: "https://www.figma.com/proto/abc",
	}}
	s := newTestServer(backend, &fakeDirectory{})

	rec := get(t, s, "/t/rec1/proto?vw=390&vh=844", map[string]string{
		"User-Agent": "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)",
	})
	body := rec.Body.String()
	if !strings.Contains(body, "Girá tu celular") {
		t.Error("portrait web advisory missing")
	}
	if !strings.Contains(body, "aspect-ratio: 16 / 10") {
		t.Error("web geometry should not change on mobile")
	}
}

func TestQuestionsPage(t *testing.T) {
	backend := &fakeBackend{def: &domain.TestDefinition{
		ID:        "rec1",
		Title:     "T",
		Questions: []string{"¿Primera?", "¿Segunda?"},
	}}
	s := newTestServer(backend, &fakeDirectory{})

	rec := get(t, s, "/t/rec1/questions", nil)
	body := rec.Body.String()
	if !strings.Contains(body, "¿Primera?") || !strings.Contains(body, "¿Segunda?") {
		t.Error("questions missing")
	}
	if !strings.Contains(body, `name="answer-0"`) || !strings.Contains(body, `name="answer-1"`) {
		t.Error("answer fields missing")
	}
}

func TestQuestionsPage_NoQuestionsSkipsToFinish(t *testing.T) {
	backend := &fakeBackend{def: &domain.TestDefinition{ID: "rec1", Title: "T"}}
	s := newTestServer(backend, &fakeDirectory{})

	rec := get(t, s, "/t/rec1/questions", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/t/rec1/finish" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestSubmit(t *testing.T) {
	backend := &fakeBackend{def: &domain.TestDefinition{
		ID:        "rec1",
		Title:     "T",
		Questions: []string{"¿Primera?", "¿Segunda?"},
	}}
	s := newTestServer(backend, &fakeDirectory{})

	form := url.Values{"answer-0": {"  bien  "}, "answer-1": {""}}
	req := httptest.NewRequest(http.MethodPost, "/t/rec1/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/t/rec1/finish" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if backend.submitted == nil {
		t.Fatal("no submission reached the backend")
	}
	if backend.submitted.Responses[0].Answer != "bien" {
		t.Errorf("answer = %q, want trimmed", backend.submitted.Responses[0].Answer)
	}
	if len(backend.submitted.Responses) != 2 {
		t.Errorf("responses = %d, want every question", len(backend.submitted.Responses))
	}
}

func TestSubmit_BackendFailureKeepsAnswers(t *testing.T) {
	backend := &fakeBackend{
		def:       &domain.TestDefinition{ID: "rec1", Title: "T", Questions: []string{"¿Primera?"}},
		submitErr: errors.New("502"),
	}
	s := newTestServer(backend, &fakeDirectory{})

	form := url.Values{"answer-0": {"lo que escribí"}}
	req := httptest.NewRequest(http.MethodPost, "/t/rec1/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "No se pudieron guardar las respuestas") {
		t.Error("submission error message missing")
	}
	if !strings.Contains(body, "lo que escribí") {
		t.Error("entered answer lost on failure")
	}
}

func TestTestsPage(t *testing.T) {
	directory := &fakeDirectory{tests: []review.TestSummary{
		{ID: "rec1", Title: "Checkout", Link: "https://tester.example/?id=rec1"},
	}}
	s := newTestServer(&fakeBackend{}, directory)

	rec := get(t, s, "/tests", nil)
	if !strings.Contains(rec.Body.String(), "Checkout") {
		t.Error("test list missing entries")
	}
}

func TestResponsesPage(t *testing.T) {
	directory := &fakeDirectory{
		title: "Checkout",
		grouped: []review.QuestionResponses{
			{Question: "¿Primera?", Answers: []review.ResponseDetail{{Answer: "bien", IsAudio: true}}},
		},
	}
	s := newTestServer(&fakeBackend{}, directory)

	rec := get(t, s, "/tests/rec1", nil)
	body := rec.Body.String()
	if !strings.Contains(body, "¿Primera?") || !strings.Contains(body, "bien") {
		t.Error("responses missing")
	}
	if !strings.Contains(body, "audio") {
		t.Error("audio tag missing")
	}
}
