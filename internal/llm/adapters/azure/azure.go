package azure

import (
	"context"
	"net/url"
	"strings"

	"github.com/smallbiznis/supportly/internal/llm/adapters"
	"github.com/smallbiznis/supportly/internal/llm/domain"
)

const defaultAPIVersion = "2024-06-01"

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Vendor() string {
	return "azure"
}

// New builds a client for an Azure OpenAI deployment. Model names the deployment.
func (f *Factory) New(cfg domain.Config) (domain.Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	endpoint := adapters.BaseURL(cfg.BaseURL, "")
	deployment := strings.TrimSpace(cfg.Model)
	if apiKey == "" || endpoint == "" || deployment == "" {
		return nil, domain.ErrInvalidConfig
	}
	version := strings.TrimSpace(cfg.APIVersion)
	if version == "" {
		version = defaultAPIVersion
	}

	query := url.Values{}
	query.Set("api-version", version)
	return &Client{
		apiKey: apiKey,
		url:    endpoint + "/openai/deployments/" + url.PathEscape(deployment) + "/chat/completions?" + query.Encode(),
		http:   adapters.NewHTTPClient(cfg.Timeout, cfg.MaxRetries),
	}, nil
}

type Client struct {
	apiKey string
	url    string
	http   *adapters.HTTPClient
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

func (c *Client) Vendor() string {
	return "azure"
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := c.http.PostJSON(ctx, adapters.Request{
		Vendor:  "azure",
		URL:     c.url,
		Headers: map[string]string{"api-key": c.apiKey},
		Body: chatRequest{
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
