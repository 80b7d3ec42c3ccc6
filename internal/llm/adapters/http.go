package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/smallbiznis/supportly/internal/llm/domain"
	"github.com/tidwall/gjson"
)

const (
	defaultTimeout = 30 * time.Second
	retryDelay     = 250 * time.Millisecond
	maxErrorBody   = 64 << 10
)

// Request is a JSON POST to a vendor endpoint.
type Request struct {
	Vendor  string
	URL     string
	Headers map[string]string
	Body    any
	// ErrorPath locates the vendor error message in a failed response body.
	ErrorPath string
}

// HTTPClient posts JSON and retries transient failures.
type HTTPClient struct {
	client     *http.Client
	maxRetries int
}

func NewHTTPClient(timeout time.Duration, maxRetries int) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &HTTPClient{
		client:     &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

// PostJSON sends req and returns the raw response body of a 2xx answer.
func (c *HTTPClient) PostJSON(ctx context.Context, req Request) ([]byte, error) {
	payload, err := json.Marshal(req.Body)
	if err != nil {
		return nil, err
	}

	var body []byte
	err = retry.Do(
		func() error {
			var doErr error
			body, doErr = c.do(ctx, req, payload)
			return doErr
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)+1),
		retry.Delay(retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *HTTPClient) do(ctx context.Context, req Request, payload []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := ""
		if req.ErrorPath != "" && gjson.ValidBytes(raw) {
			message = strings.TrimSpace(gjson.GetBytes(raw, req.ErrorPath).String())
		}
		return nil, &domain.StatusError{Vendor: req.Vendor, StatusCode: resp.StatusCode, Message: message}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(raw) {
		return nil, retry.Unrecoverable(errors.New(req.Vendor + ": invalid json response"))
	}
	return raw, nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return true
}

// Text extracts a string at path from a response body, failing when empty.
func Text(body []byte, path string) (string, error) {
	text := strings.TrimSpace(gjson.GetBytes(body, path).String())
	if text == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}

// BaseURL returns the configured base URL without a trailing slash, or fallback.
func BaseURL(configured, fallback string) string {
	value := strings.TrimSpace(configured)
	if value == "" {
		value = fallback
	}
	return strings.TrimRight(value, "/")
}
