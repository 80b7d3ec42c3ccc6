package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/smallbiznis/supportly/internal/chat/domain"
	ordersdomain "github.com/smallbiznis/supportly/internal/orders/domain"
	"github.com/smallbiznis/supportly/internal/tool"
	"go.uber.org/zap"
)

const maxOrderSuggestions = 3

var (
	orderIDPattern     = regexp.MustCompile(`(?i)\bORD-\d+\b`)
	orderNumberPattern = regexp.MustCompile(`(?i)\border\s*#?\s*(\d+)\b`)
)

var popularShoeSuggestions = []string{
	"Show me Nike Air Max 90",
	"Show me Adidas Ultraboost",
	"What do Jordan 1 Retro High look like?",
	"Show me Converse Chuck Taylor",
	"Can I see Dr. Martens 1460 boots?",
	"Show me Vans Old Skool",
}

// orders answers order questions for the configured customer. A cancel
// request without an order falls back to the order discussed last.
func (s *Service) orders(ctx context.Context, text string, history []domain.Message) reply {
	customerID := s.chatConfig.Get().DemoCustomerID
	lowered := strings.ToLower(text)
	orderID := orderRef(text)

	params := map[string]any{"action": tool.ActionRecent, "customer_id": customerID}
	switch {
	case strings.Contains(lowered, "cancel"):
		if orderID == "" {
			orderID = orderFromHistory(history)
		}
		params["action"] = tool.ActionCancel
		if orderID != "" {
			params["order_id"] = orderID
		}
	case orderID != "":
		params["action"] = tool.ActionOrderDetails
		params["order_id"] = orderID
	case strings.Contains(lowered, "more orders"):
		params["limit"] = ordersdomain.MaxRecentLimit
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return reply{text: apologyText}
	}
	out, err := s.tools.Execute(ctx, tool.OrdersToolName, raw)
	if err != nil {
		s.log.Error("orders tool failed", zap.Error(err))
		return reply{text: apologyText}
	}
	if out.Error != "" {
		s.log.Info("orders tool returned an error", zap.String("error", out.Error))
	}

	listed := params["action"] == tool.ActionRecent
	if ids := uniqueOrderIDs(out.Response); len(ids) == 1 {
		orderID, listed = ids[0], false
	} else if listed {
		orderID = ""
	}
	return reply{
		text:        out.Response,
		suggestions: orderSuggestions(orderID, listed, len(history)),
	}
}

// orderRef finds an order reference such as "ORD-104" or "order #104".
func orderRef(text string) string {
	if id := orderIDPattern.FindString(text); id != "" {
		return ordersdomain.NormalizeOrderID(id)
	}
	if m := orderNumberPattern.FindStringSubmatch(text); m != nil {
		return "ORD-" + m[1]
	}
	return ""
}

// orderFromHistory returns the order the conversation was last about. An
// assistant message naming several orders ends the search.
func orderFromHistory(history []domain.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Sender == domain.SenderUser {
			if id := orderRef(msg.MessageText); id != "" {
				return id
			}
			continue
		}
		ids := uniqueOrderIDs(msg.MessageText)
		if len(ids) == 1 {
			return ids[0]
		}
		if len(ids) > 1 {
			return ""
		}
	}
	return ""
}

func uniqueOrderIDs(text string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, id := range orderIDPattern.FindAllString(text, -1) {
		id = ordersdomain.NormalizeOrderID(id)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// orderSuggestions puts the order actions first and fills up with popular
// shoes, rotated by turn so consecutive replies differ.
func orderSuggestions(orderID string, listed bool, turn int) []string {
	suggestions := []string{"Show my recent orders"}
	if orderID != "" {
		suggestions = append(suggestions,
			fmt.Sprintf("Cancel order %s", orderID),
			fmt.Sprintf("Track order %s", orderID),
			fmt.Sprintf("Show details for %s", orderID),
		)
	}
	if listed {
		suggestions = append(suggestions, "Show more orders")
	}
	for i := 0; len(suggestions) < maxOrderSuggestions; i++ {
		suggestions = append(suggestions, popularShoeSuggestions[(turn+i)%len(popularShoeSuggestions)])
	}
	return suggestions[:maxOrderSuggestions]
}
