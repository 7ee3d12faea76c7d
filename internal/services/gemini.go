package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"chat-relay/internal/logger"
)

// SDKClient generates through the Gemini Go SDK. The API key arrives with
// each request, so a client is created and closed per call; all of them
// share one connection pool.
type SDKClient struct {
	model     string
	endpoint  string
	timeout   time.Duration
	transport http.RoundTripper
}

// NewSDKClient returns an SDK-backed Generator. An empty endpoint uses the
// SDK default and a zero timeout means none.
func NewSDKClient(model, endpoint string, timeout time.Duration) *SDKClient {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &SDKClient{
		model:     model,
		endpoint:  strings.TrimSpace(endpoint),
		timeout:   timeout,
		transport: http.DefaultTransport.(*http.Transport).Clone(),
	}
}

// apiKeyTransport stamps the caller's key on every SDK request. A supplied
// HTTP client bypasses the SDK's own key handling.
type apiKeyTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-goog-api-key", t.apiKey)
	return t.base.RoundTrip(req)
}

func (c *SDKClient) clientOptions(apiKey string) []option.ClientOption {
	httpClient := &http.Client{Transport: &apiKeyTransport{apiKey: apiKey, base: c.transport}}
	opts := []option.ClientOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}
	return opts
}

func (c *SDKClient) Generate(ctx context.Context, apiKey, text string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, c.clientOptions(apiKey)...)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("create Gemini client: %w", err)}
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		if partial, ok := blockedText(resp, err); ok {
			logger.Warnw("gemini response blocked, returning first candidate", "error", err)
			return partial, nil
		}
		return "", classifySDKError(err)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			logger.Warnw("gemini candidate stopped early", "candidate", i, "finish_reason", cand.FinishReason.String())
		}
	}

	return extractText(resp)
}

// blockedText recovers the first candidate's text when the SDK reports a
// block but candidates[0] still carries content.
func blockedText(resp *genai.GenerateContentResponse, err error) (string, bool) {
	var blocked *genai.BlockedError
	if !errors.As(err, &blocked) {
		return "", false
	}
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		text, _ := extractText(resp)
		return text, true
	}
	if resp == nil && blocked.Candidate != nil && blocked.Candidate.Index == 0 && blocked.Candidate.Content != nil {
		text, _ := extractText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{blocked.Candidate}})
		return text, true
	}
	return "", false
}

// classifySDKError maps SDK failures onto the relay's error taxonomy.
func classifySDKError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &EmptyResponseError{}
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		body := apiErr.Body
		if body == "" {
			body = apiErr.Message
		}
		return &UpstreamError{StatusCode: apiErr.Code, Body: body}
	}
	return &TransportError{Err: err}
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &EmptyResponseError{}
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return strings.TrimSpace(text.String()), nil
}
