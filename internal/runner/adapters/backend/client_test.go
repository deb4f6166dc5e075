package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emiliopalmerini/flexrun/internal/review"
	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
)

type testLogger struct{}

func (testLogger) Debug(string) {}
func (testLogger) Error(string) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, ShareBaseURL: "https://tester.example/"}, testLogger{})
}

func TestFetchDefinition(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-definition" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("id") != "rec1" {
			t.Errorf("id = %s", r.URL.Query().Get("id"))
		}
		if r.Header.Get("Cache-Control") != "no-store" {
			t.Errorf("missing no-store header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"Title":"Checkout","questions":["q1"]}]`))
	})

	def, err := client.FetchDefinition(context.Background(), "rec1")
	if err != nil {
		t.Fatalf("FetchDefinition() error: %v", err)
	}
	if def.Title != "Checkout" || len(def.Questions) != 1 {
		t.Errorf("definition = %+v", def)
	}
}

func TestFetchDefinition_FreshNoncePerAttempt(t *testing.T) {
	var nonces []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		nonces = append(nonces, r.URL.Query().Get("t"))
		if len(nonces) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"Title":"T"}`))
	})

	if _, err := client.FetchDefinition(context.Background(), "rec1"); err == nil {
		t.Fatal("first attempt should fail")
	}
	if _, err := client.FetchDefinition(context.Background(), "rec1"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}

	if len(nonces) != 2 {
		t.Fatalf("got %d requests, want 2", len(nonces))
	}
	if nonces[0] == "" || nonces[0] == nonces[1] {
		t.Errorf("retry reused nonce %q", nonces[0])
	}
}

func TestFetchDefinition_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL, FetchTimeout: 20 * time.Millisecond}, testLogger{})
	_, err := client.FetchDefinition(context.Background(), "rec1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestSubmitFeedback(t *testing.T) {
	var received domain.FeedbackSubmission
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/submit-feedback" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
	})

	sub := &domain.FeedbackSubmission{
		TestID:    "rec1",
		Title:     "T",
		Responses: []domain.ResponseEntry{{QuestionIndex: 0, Question: "q", Answer: "a"}},
		Timestamp: "2026-03-14T18:09:26Z",
	}
	if err := client.SubmitFeedback(context.Background(), sub); err != nil {
		t.Fatalf("SubmitFeedback() error: %v", err)
	}
	if received.TestID != "rec1" || len(received.Responses) != 1 {
		t.Errorf("received payload = %+v", received)
	}
}

func TestSubmitFeedback_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if err := client.SubmitFeedback(context.Background(), &domain.FeedbackSubmission{}); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}

func TestTranscribeAudio(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		ct      string
		body    string
		want    string
		wantErr bool
	}{
		{name: "text key", status: 200, ct: "application/json", body: `{"text":" hola "}`, want: "hola"},
		{name: "transcription key", status: 200, ct: "application/json", body: `{"transcription":"hola"}`, want: "hola"},
		{name: "capitalized key", status: 200, ct: "application/json", body: `{"Text":"hola"}`, want: "hola"},
		{name: "empty object soft-fails", status: 200, ct: "application/json", body: `{}`, want: ""},
		{name: "empty body soft-fails", status: 200, ct: "application/json", body: ``, want: ""},
		{name: "invalid json soft-fails", status: 200, ct: "application/json", body: `{broken`, want: ""},
		{name: "non-json content type soft-fails", status: 200, ct: "text/plain", body: `hola`, want: ""},
		{name: "server error is hard", status: 503, ct: "application/json", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/receive-audio" {
					t.Errorf("path = %s", r.URL.Path)
				}
				if r.URL.Query().Get("t") == "" {
					t.Error("missing cache nonce")
				}
				file, _, err := r.FormFile("audio")
				if err != nil {
					t.Errorf("audio part missing: %v", err)
				} else {
					file.Close()
				}
				w.Header().Set("Content-Type", tt.ct)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := client.TranscribeAudio(context.Background(), []byte("RIFFdata"))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("TranscribeAudio() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListTests(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/list-tests" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"id":"rec1","Título":"Viejo","Fecha de Creación":"2026-01-01"},
			{"id":"rec2","Título":"Nuevo","Fecha de Creación":"2026-02-01"}
		]`))
	})

	tests, err := client.ListTests(context.Background())
	if err != nil {
		t.Fatalf("ListTests() error: %v", err)
	}
	if len(tests) != 2 {
		t.Fatalf("got %d tests", len(tests))
	}
	if tests[0].ID != "rec2" {
		t.Errorf("newest first expected, got %s", tests[0].ID)
	}
	if tests[0].Link != "https://tester.example/?id=rec2" {
		t.Errorf("synthesized link = %q", tests[0].Link)
	}
}

func TestCreateTest(t *testing.T) {
	var received map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/crear-nuevo-test" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
	})

	created, err := client.CreateTest(context.Background(), review.TestDraft{
		Title:         "Checkout",
		Description:   "Probá el flujo de compra",
		PrototypeLink: "https://www.figma.com/proto/abc/x",
		DeviceType:    "App",
		Questions:     []string{"q1", "q2"},
	})
	if err != nil {
		t.Fatalf("CreateTest() error: %v", err)
	}

	if created.ID == "" {
		t.Fatal("created test has no id")
	}
	if created.Link != "https://tester.example/?id="+created.ID {
		t.Errorf("link = %q", created.Link)
	}

	if received["id"] != created.ID || received["title"] != "Checkout" {
		t.Errorf("payload = %+v", received)
	}
	if received["tipo_dispositivo"] != "App" {
		t.Errorf("device = %v", received["tipo_dispositivo"])
	}
	qs, _ := received["questions"].([]any)
	if len(qs) != 2 {
		t.Errorf("questions = %v", received["questions"])
	}
	// Older workflow versions read the share link under different keys.
	for _, key := range []string{"testLink", "link", "url"} {
		if received[key] != created.Link {
			t.Errorf("%s = %v, want %q", key, received[key], created.Link)
		}
	}
	if _, err := time.Parse(time.RFC3339, received["createdAt"].(string)); err != nil {
		t.Errorf("createdAt = %v: %v", received["createdAt"], err)
	}
}

func TestCreateTest_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if _, err := client.CreateTest(context.Background(), review.TestDraft{Title: "T"}); err == nil {
		t.Fatal("expected error on HTTP 502")
	}
}

func TestFetchResponses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fetch-responses" || r.URL.Query().Get("id") != "rec1" {
			t.Errorf("%s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[
			{"Título":"Checkout","timestamp":"2026-02-01","Respuestas":"[{\"question\":\"q1\",\"answer\":\"bien\"}]"}
		]`))
	})

	title, grouped, err := client.FetchResponses(context.Background(), "rec1")
	if err != nil {
		t.Fatalf("FetchResponses() error: %v", err)
	}
	if title != "Checkout" {
		t.Errorf("title = %q", title)
	}
	if len(grouped) != 1 || grouped[0].Question != "q1" || grouped[0].Answers[0].Answer != "bien" {
		t.Errorf("grouped = %+v", grouped)
	}
}
