package service

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/smallbiznis/supportly/internal/agent"
	"github.com/smallbiznis/supportly/internal/chat/domain"
	"github.com/smallbiznis/supportly/internal/tool"
	"go.uber.org/zap"
)

const (
	greetingFallback = "Hello! Welcome to Acme Shoe Store. How can I help you today?"
	apologyText      = "I apologize, but I encountered an error while processing your request. Please try again or contact support if the issue persists."
	defaultQuestion  = "What is the refund policy?"
)

var productIDPattern = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`)

type reply struct {
	text        string
	suggestions []string
}

func (s *Service) route(ctx context.Context, intent, text string, history []domain.Message) reply {
	switch intent {
	case domain.IntentInitialGreeting, domain.IntentGreeting:
		return s.greet(ctx, text, history)
	case domain.IntentProducts:
		return s.products(ctx, text)
	case domain.IntentReports:
		report := s.reports.Respond(ctx, text)
		return reply{text: report.Response, suggestions: report.Suggestions}
	case domain.IntentOrders:
		return s.orders(ctx, text, history)
	default:
		return s.knowledge(ctx, text, history)
	}
}

func (s *Service) greet(ctx context.Context, text string, history []domain.Message) reply {
	if s.llm == nil {
		return reply{text: greetingFallback}
	}
	answer, err := s.llm.Complete(ctx, greetingPrompt(text, history))
	if err != nil || answer == "" {
		s.log.Warn("greeting generation failed", zap.Error(err))
		return reply{text: greetingFallback}
	}
	return reply{text: answer}
}

func (s *Service) knowledge(ctx context.Context, text string, history []domain.Message) reply {
	if text == "" {
		text = defaultQuestion
	}
	if s.llm == nil {
		return reply{text: apologyText}
	}
	answer, err := s.llm.Complete(ctx, knowledgePrompt(text, history))
	if err != nil || answer == "" {
		s.log.Warn("knowledge answer failed", zap.Error(err))
		return reply{text: apologyText}
	}
	return reply{text: answer}
}

// products maps the message onto one products tool action: a product id
// with size and color checks stock, a bare id shows details, anything else
// searches.
func (s *Service) products(ctx context.Context, text string) reply {
	params := map[string]any{"action": tool.ActionSearch, "query": text}
	if id := productIDPattern.FindString(text); id != "" {
		extracted := agent.ExtractSearchParams(text)
		if extracted.Size != "" && extracted.Color != "" {
			params = map[string]any{
				"action":     tool.ActionAvailability,
				"product_id": id,
				"size":       extracted.Size,
				"color":      extracted.Color,
			}
		} else {
			params = map[string]any{"action": tool.ActionDetails, "product_id": id}
		}
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return reply{text: apologyText}
	}
	out, err := s.tools.Execute(ctx, tool.ProductsToolName, raw)
	if err != nil {
		s.log.Error("products tool failed", zap.Error(err))
		return reply{text: apologyText}
	}
	if out.Error != "" {
		s.log.Info("products tool returned an error", zap.String("error", out.Error))
	}
	return reply{text: out.Response}
}
