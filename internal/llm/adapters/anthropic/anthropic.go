package anthropic

import (
	"context"
	"strings"

	"github.com/smallbiznis/supportly/internal/llm/adapters"
	"github.com/smallbiznis/supportly/internal/llm/domain"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	maxTokens      = 1024
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Vendor() string {
	return "anthropic"
}

func (f *Factory) New(cfg domain.Config) (domain.Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	model := strings.TrimSpace(cfg.Model)
	if apiKey == "" || model == "" {
		return nil, domain.ErrInvalidConfig
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: adapters.BaseURL(cfg.BaseURL, defaultBaseURL),
		http:    adapters.NewHTTPClient(cfg.Timeout, cfg.MaxRetries),
	}, nil
}

type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *adapters.HTTPClient
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

func (c *Client) Vendor() string {
	return "anthropic"
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := c.http.PostJSON(ctx, adapters.Request{
		Vendor: "anthropic",
		URL:    c.baseURL + "/v1/messages",
		Headers: map[string]string{
			"x-api-key":         c.apiKey,
			"anthropic-version": apiVersion,
		},
		Body: messagesRequest{
			Model:       c.model,
			MaxTokens:   maxTokens,
			Temperature: 0,
			Messages:    []message{{Role: "user", Content: prompt}},
		},
		ErrorPath: "error.message",
	})
	if err != nil {
		return "", err
	}
	return adapters.Text(body, `content.#(type=="text").text`)
}
