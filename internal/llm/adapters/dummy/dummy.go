package dummy

import (
	"context"
	"strings"

	"github.com/smallbiznis/supportly/internal/llm/domain"
)

const (
	Greeting  = "Hello! Welcome to Acme Shoe Store. I can help you find shoes, check sizes and stock, or answer questions about your order. What can I do for you today?"
	Apology   = "I'm sorry, something went wrong while I was preparing that for you. Could you try again, or ask me about our products or your order?"
	Knowledge = "Thanks for reaching out to Acme Shoe Store! Orders ship within 2 business days and unworn shoes can be returned within 30 days. Is there anything else I can help you with?"
)

var intentKeywords = []struct {
	intent   string
	keywords []string
}{
	{intent: "greeting", keywords: []string{"hello", "hi ", "hey", "good morning", "good afternoon", "good evening"}},
	{intent: "orders", keywords: []string{"order", "cancel", "shipping", "delivery", "return", "refund", "track"}},
	{intent: "reports", keywords: []string{"report", "analytics", "statistics"}},
	{intent: "products", keywords: []string{"shoe", "sneaker", "boot", "sandal", "size", "color", "price", "brand", "running", "available", "stock"}},
}

// Factory builds clients that answer from canned text without network access.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Vendor() string {
	return "dummy"
}

func (f *Factory) New(cfg domain.Config) (domain.Client, error) {
	return &Client{}, nil
}

type Client struct{}

func (c *Client) Vendor() string {
	return "dummy"
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lowered := strings.ToLower(prompt)
	switch {
	case strings.Contains(lowered, "classify"):
		return Classify(userMessage(prompt)), nil
	case strings.Contains(lowered, "greet the user"):
		return Greeting, nil
	case strings.Contains(lowered, "error occurred"):
		return Apology, nil
	default:
		return Knowledge, nil
	}
}

// Classify picks an intent for text by keyword, defaulting to "other".
func Classify(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text)) + " "
	for _, entry := range intentKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.intent
			}
		}
	}
	return "other"
}

// userMessage returns the text after the last "User message:" marker.
func userMessage(prompt string) string {
	const marker = "User message:"
	idx := strings.LastIndex(prompt, marker)
	if idx < 0 {
		return prompt
	}
	rest := prompt[idx+len(marker):]
	if end := strings.Index(rest, "\n---"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
