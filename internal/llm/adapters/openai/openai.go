package openai

import (
	"context"
	"strings"

	"github.com/smallbiznis/supportly/internal/llm/adapters"
	"github.com/smallbiznis/supportly/internal/llm/domain"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Vendor() string {
	return "openai"
}

func (f *Factory) New(cfg domain.Config) (domain.Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, domain.ErrInvalidConfig
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
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

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

func (c *Client) Vendor() string {
	return "openai"
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := c.http.PostJSON(ctx, adapters.Request{
		Vendor: "openai",
		URL:    c.baseURL + "/chat/completions",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
		},
		Body: chatRequest{
			Model:       c.model,
			Messages:    []message{{Role: "user", Content: prompt}},
			Temperature: 0,
		},
		ErrorPath: "error.message",
	})
	if err != nil {
		return "", err
	}
	return adapters.Text(body, "choices.0.message.content")
}
