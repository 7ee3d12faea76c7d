package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"chat-relay/internal/logger"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.0-flash"
)

// Generator sends a rendered context block upstream and returns the reply
// text. Failures are one of the taxonomy errors in this package.
type Generator interface {
	Generate(ctx context.Context, apiKey, text string) (string, error)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content *content `json:"content"`
	} `json:"candidates"`
}

// RESTClient calls the generateContent endpoint directly over HTTP.
type RESTClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type RESTOption func(*RESTClient)

func WithBaseURL(baseURL string) RESTOption {
	return func(c *RESTClient) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithModel(model string) RESTOption {
	return func(c *RESTClient) {
		c.model = strings.TrimSpace(model)
	}
}

func WithHTTPClient(httpClient *http.Client) RESTOption {
	return func(c *RESTClient) {
		c.httpClient = httpClient
	}
}

// NewRESTClient returns a client with no request timeout unless one is set
// through WithHTTPClient.
func NewRESTClient(opts ...RESTOption) *RESTClient {
	c := &RESTClient{
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

func generateURL(baseURL, model string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	model = strings.TrimPrefix(model, "models/")
	if model == "" {
		model = DefaultModel
	}
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", base, model)
}

func (c *RESTClient) Generate(ctx context.Context, apiKey, text string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
	})
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	url := generateURL(c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-goog-api-key", apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}
	if res.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: res.StatusCode, Body: string(raw)}
	}

	var payload generateResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	logger.Debugw("gemini response received", "model", c.model, "candidates", len(payload.Candidates))

	return payload.firstCandidateText()
}

// firstCandidateText joins the parts of the first candidate and trims the
// result. A missing candidate or content is an EmptyResponseError.
func (r generateResponse) firstCandidateText() (string, error) {
	if len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return "", &EmptyResponseError{}
	}
	var text strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return strings.TrimSpace(text.String()), nil
}
