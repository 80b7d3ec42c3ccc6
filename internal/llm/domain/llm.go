package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client completes a single prompt. Responses are expected to be deterministic
// (temperature 0).
type Client interface {
	Vendor() string
	Complete(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	Vendor     string
	Model      string
	APIKey     string
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
	MaxRetries int
}

type Factory interface {
	Vendor() string
	New(cfg Config) (Client, error)
}

var (
	ErrVendorNotFound = errors.New("llm_vendor_not_found")
	ErrInvalidConfig  = errors.New("llm_invalid_config")
	ErrEmptyResponse  = errors.New("llm_empty_response")
)

// StatusError is returned when the vendor answers with a non-2xx status.
type StatusError struct {
	Vendor     string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request failed with status %d", e.Vendor, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Vendor, e.Message, e.StatusCode)
}

// Retryable reports whether the request may succeed if sent again.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
