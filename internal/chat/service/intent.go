package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/supportly/internal/chat/domain"
	"github.com/smallbiznis/supportly/internal/config"
	"go.uber.org/zap"
)

const storePersona = "You are a helpful customer support bot for Acme Shoe Store, Inc. An online retailer of shoes of all types."

var intentDescriptions = map[string]string{
	domain.IntentGreeting: "If the user is greeting the bot, introducing themselves, or making small talk",
	domain.IntentOrders:   "If the user is asking about their order",
	domain.IntentProducts: "If the user is asking about the products",
	domain.IntentReports:  "If the user is asking for reports, analytics, inventory data, or business insights",
	domain.IntentOther:    "If the user's intent is not clear from the message, or if the user is asking a question that doesn't fall into the other categories",
}

// classifyIntent never fails; a classifier error routes to the knowledge
// responder.
func (s *Service) classifyIntent(ctx context.Context, text string, history []domain.Message, cfg config.ChatConfig) string {
	if text == "" {
		if len(history) == 0 {
			return domain.IntentInitialGreeting
		}
		return domain.IntentGreeting
	}

	lowered := strings.ToLower(text)
	for _, keyword := range cfg.ReportKeywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" && strings.Contains(lowered, keyword) {
			s.log.Debug("reports keyword detected", zap.String("keyword", keyword))
			return domain.IntentReports
		}
	}

	if s.llm == nil {
		return domain.IntentOther
	}
	reply, err := s.llm.Complete(ctx, intentPrompt(text, history))
	if err != nil {
		s.log.Warn("intent classification failed", zap.Error(err))
		return domain.IntentOther
	}
	return parseIntent(reply)
}

// parseIntent returns the first known intent mentioned in reply.
func parseIntent(reply string) string {
	lowered := strings.ToLower(strings.TrimSpace(reply))
	for _, intent := range domain.ClassifiableIntents {
		if strings.Contains(lowered, intent) {
			return intent
		}
	}
	return domain.IntentOther
}

func intentPrompt(text string, history []domain.Message) string {
	var b strings.Builder
	b.WriteString("Classify the user's intent from the user message:\n---\n")
	b.WriteString("Return exactly one of the following intents:\n")
	for _, intent := range domain.ClassifiableIntents {
		fmt.Fprintf(&b, "- '%s': %s\n", intent, intentDescriptions[intent])
	}
	b.WriteString("---\nChat history:\n")
	b.WriteString(historyText(history))
	b.WriteString("\n---\nUser message: ")
	b.WriteString(text)
	b.WriteString("\n")
	return b.String()
}

func greetingPrompt(text string, history []domain.Message) string {
	var b strings.Builder
	b.WriteString(storePersona)
	b.WriteString("\n---\nInstructions:\nGreet the user with a friendly message.\n")
	if len(history) > 0 {
		b.WriteString("---\nChat history: ")
		b.WriteString(historyText(history))
		b.WriteString("\n")
	}
	if text != "" {
		b.WriteString("---\nThe user said: ")
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

func knowledgePrompt(text string, history []domain.Message) string {
	var b strings.Builder
	b.WriteString(storePersona)
	b.WriteString("\n---\nAnswer the customer's question about the store, its policies, or their order.\n")
	if len(history) > 0 {
		b.WriteString("---\nChat history:\n")
		b.WriteString(historyText(history))
		b.WriteString("\n")
	}
	b.WriteString("---\nQuestion: ")
	b.WriteString(text)
	b.WriteString("\nAnswer: ")
	return b.String()
}

func historyText(history []domain.Message) string {
	lines := make([]string, 0, len(history))
	for _, message := range history {
		role := "Human"
		if message.Sender == domain.SenderAI {
			role = "AI"
		}
		lines = append(lines, role+": "+message.MessageText)
	}
	return strings.Join(lines, "\n")
}
