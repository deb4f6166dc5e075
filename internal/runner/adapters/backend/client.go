// Package backend implements the remote data client against the automation
// backend's webhook endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/flexrun/internal/review"
	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultListTimeout  = 5 * time.Second

	// maximum error body kept for diagnostics
	errBodyLimit = 2048
)

// Config holds the client's endpoints and deadlines.
type Config struct {
	// BaseURL is the webhook base all operation paths hang off.
	BaseURL string
	// ShareBaseURL synthesizes tester links for list rows that lack one.
	ShareBaseURL string
	FetchTimeout time.Duration
	ListTimeout  time.Duration
}

// Client talks to the remote backend. It implements domain.Backend and
// review.Directory. Requests carry a cache-defeating nonce because the
// backend sits behind caching intermediaries that would otherwise replay a
// stale definition after an edit.
type Client struct {
	base         string
	shareBase    string
	fetchTimeout time.Duration
	listTimeout  time.Duration
	http         *http.Client
	logger       domain.Logger
	nonce        func() string
}

// NewClient creates a backend client.
func NewClient(cfg Config, logger domain.Logger) *Client {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.ListTimeout <= 0 {
		cfg.ListTimeout = defaultListTimeout
	}
	return &Client{
		base:         strings.TrimRight(cfg.BaseURL, "/"),
		shareBase:    cfg.ShareBaseURL,
		fetchTimeout: cfg.FetchTimeout,
		listTimeout:  cfg.ListTimeout,
		http:         &http.Client{},
		logger:       logger,
		nonce:        uuid.NewString,
	}
}

// FetchDefinition reads the test definition. Each call issues an independent
// request with a fresh nonce; deduplication is the caller's concern.
func (c *Client) FetchDefinition(ctx context.Context, id string) (*domain.TestDefinition, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/test-definition?id=%s&t=%s", c.base, url.QueryEscape(id), c.nonce())
	c.logger.Debug("fetching definition: " + endpoint)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch definition: %w", err)
	}
	return domain.DecodeDefinition(id, body)
}

// SubmitFeedback sends the aggregate submission. The response body is ignored;
// any non-success status is a failure and re-submission is driven from the UI.
func (c *Client) SubmitFeedback(ctx context.Context, sub *domain.FeedbackSubmission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/submit-feedback", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logErrorBody("submit feedback", resp)
		return fmt.Errorf("submit feedback: HTTP %d", resp.StatusCode)
	}
	return nil
}

// TranscribeAudio posts the recorded audio as a multipart body. Only a JSON
// response with a non-empty text field counts as a transcription; every other
// well-formed outcome means "no transcription available" and returns empty
// without error. Transport and status failures do return an error.
func (c *Client) TranscribeAudio(ctx context.Context, audio []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "recording.wav")
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}

	endpoint := c.base + "/receive-audio?t=" + c.nonce()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logErrorBody("transcribe audio", resp)
		return "", fmt.Errorf("transcribe audio: HTTP %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		c.logger.Debug("transcription response is not JSON, content-type: " + ct)
		return "", nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		c.logger.Debug("transcription response body is empty")
		return "", nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		c.logger.Debug(fmt.Sprintf("transcription response is invalid JSON: %v", err))
		return "", nil
	}

	for _, key := range []string{"text", "transcription", "Text"} {
		if v, ok := decoded[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return "", nil
}

// ListTests fetches the creator's test list.
func (c *Client) ListTests(ctx context.Context) ([]review.TestSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, c.listTimeout)
	defer cancel()

	body, err := c.get(ctx, c.base+"/list-tests")
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	return review.DecodeTestList(body, c.shareBase)
}

// CreateTest stores a new test definition on the backend. The identifier and
// the share link are minted client-side; the backend keeps the row as sent.
// The same link goes out under three keys because older workflow versions read
// different ones.
func (c *Client) CreateTest(ctx context.Context, draft review.TestDraft) (review.TestSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	id := c.nonce()
	link := ""
	if c.shareBase != "" {
		link = c.shareBase + "?id=" + id
	}
	questions := draft.Questions
	if questions == nil {
		questions = []string{}
	}

	payload, err := json.Marshal(map[string]any{
		"id":               id,
		"title":            draft.Title,
		"description":      draft.Description,
		"tipo_dispositivo": draft.DeviceType,
		"figmaLink":        draft.PrototypeLink,
		"questions":        questions,
		"testLink":         link,
		"link":             link,
		"url":              link,
		"createdAt":        time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return review.TestSummary{}, fmt.Errorf("encode test: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/crear-nuevo-test", bytes.NewReader(payload))
	if err != nil {
		return review.TestSummary{}, fmt.Errorf("create test: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return review.TestSummary{}, fmt.Errorf("create test: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logErrorBody("create test", resp)
		return review.TestSummary{}, fmt.Errorf("create test: HTTP %d", resp.StatusCode)
	}

	return review.TestSummary{ID: id, Title: draft.Title, Link: link, CreatedAt: time.Now()}, nil
}

// FetchResponses fetches and groups the collected feedback for one test.
func (c *Client) FetchResponses(ctx context.Context, id string) (string, []review.QuestionResponses, error) {
	body, err := c.get(ctx, c.base+"/fetch-responses?id="+url.QueryEscape(id))
	if err != nil {
		return "", nil, fmt.Errorf("fetch responses: %w", err)
	}
	return review.DecodeResponses(body)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logErrorBody("get", resp)
		return nil, fmt.Errorf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) logErrorBody(op string, resp *http.Response) {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
	c.logger.Error(fmt.Sprintf("%s: HTTP %d, body: %s", op, resp.StatusCode, string(body)))
}
