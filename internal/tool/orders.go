package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/smallbiznis/supportly/internal/agent"
	"github.com/smallbiznis/supportly/internal/observability/metrics"
	ordersdomain "github.com/smallbiznis/supportly/internal/orders/domain"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const OrdersToolName = "orders_tool"

const (
	ActionRecent       = "recent"
	ActionOrderDetails = "details"
	ActionCancel       = "cancel"
)

const ordersSchema = `{
	"type": "object",
	"properties": {
		"action": {
			"type": "string",
			"enum": ["recent", "details", "cancel"],
			"description": "The action to perform with the orders tool."
		},
		"customer_id": {
			"type": "string",
			"description": "The customer whose orders are read or changed."
		},
		"order_id": {
			"type": "string",
			"description": "For details and cancel actions: ID of the order, e.g. ORD-101."
		},
		"limit": {
			"type": "integer",
			"minimum": 1,
			"maximum": 20,
			"description": "For recent action: number of orders to list. Defaults to 5."
		}
	},
	"required": ["action", "customer_id"]
}`

// OrdersAgent is the part of the orders agent the tool dispatches to.
type OrdersAgent interface {
	Recent(ctx context.Context, customerID string, limit int) (*agent.Result[*ordersdomain.RecentOrders], error)
	Details(ctx context.Context, customerID, orderID string) (*agent.Result[*ordersdomain.OrderDetails], error)
	Cancel(ctx context.Context, customerID, orderID string) (*agent.Result[*ordersdomain.CancelResult], error)
}

// OrdersTool exposes the orders agent as a named tool.
type OrdersTool struct {
	agent   OrdersAgent
	schema  *jsonschema.Schema
	actions map[string]actionFunc
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewOrdersTool(ordersAgent OrdersAgent, m *metrics.Metrics, log *zap.Logger) (*OrdersTool, error) {
	if ordersAgent == nil {
		return nil, errors.New("orders agent is required")
	}
	schema, err := compileSchema(ordersSchema)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	t := &OrdersTool{
		agent:   ordersAgent,
		schema:  schema,
		metrics: m,
		log:     log.Named("tool.orders"),
	}
	t.actions = map[string]actionFunc{
		ActionRecent:       t.recent,
		ActionOrderDetails: t.details,
		ActionCancel:       t.cancel,
	}
	return t, nil
}

func (t *OrdersTool) Description() Description {
	return Description{
		Name:        OrdersToolName,
		Description: "Use this tool to list a customer's recent orders, show the details of an order or cancel an order that has not shipped.",
		Parameters:  json.RawMessage(ordersSchema),
	}
}

func (t *OrdersTool) Execute(ctx context.Context, params json.RawMessage) (*Output, error) {
	parsed := gjson.ParseBytes(params)
	action := strings.TrimSpace(parsed.Get("action").String())
	if action == "" {
		t.record(ctx, "", "clarify")
		return &Output{
			Error:    "Missing required parameter: action",
			Response: "I'm not sure what you want me to do with your orders.",
		}, nil
	}

	run, ok := t.actions[action]
	if !ok {
		t.record(ctx, "unknown", "invalid")
		return &Output{
			Error:    fmt.Sprintf("Unknown action: %s", action),
			Response: fmt.Sprintf("I'm sorry, I don't know how to perform the action '%s' for orders.", action),
		}, nil
	}

	if err := validateParams(t.schema, params); err != nil {
		t.record(ctx, action, "invalid")
		return &Output{
			Error:    err.Error(),
			Response: "I'm not sure what you want me to do with your orders.",
		}, nil
	}

	out, err := run(ctx, parsed)
	if err != nil {
		t.log.Error("orders tool action failed", zap.String("action", action), zap.Error(err))
		t.record(ctx, action, "error")
		return &Output{Error: err.Error(), Response: ordersErrorText(action, parsed.Get("order_id").String())}, nil
	}
	if out.Error != "" {
		t.record(ctx, action, "clarify")
	} else {
		t.record(ctx, action, "ok")
	}
	return out, nil
}

func (t *OrdersTool) recent(ctx context.Context, params gjson.Result) (*Output, error) {
	res, err := t.agent.Recent(ctx, params.Get("customer_id").String(), int(params.Get("limit").Int()))
	if err != nil {
		return nil, err
	}
	return &Output{Data: res.Data, Response: res.Response}, nil
}

func (t *OrdersTool) details(ctx context.Context, params gjson.Result) (*Output, error) {
	orderID := strings.TrimSpace(params.Get("order_id").String())
	if orderID == "" {
		return &Output{
			Error:    "No order ID provided",
			Response: "I need an order ID to look up the details. Which order are you asking about?",
		}, nil
	}
	res, err := t.agent.Details(ctx, params.Get("customer_id").String(), orderID)
	if err != nil {
		return nil, err
	}
	out := &Output{Response: res.Response}
	if res.Data != nil {
		out.Data = res.Data
	}
	return out, nil
}

func (t *OrdersTool) cancel(ctx context.Context, params gjson.Result) (*Output, error) {
	orderID := strings.TrimSpace(params.Get("order_id").String())
	if orderID == "" {
		return &Output{
			Error:    "No order ID provided",
			Response: "Which order would you like to cancel? Please provide the order ID.",
		}, nil
	}
	res, err := t.agent.Cancel(ctx, params.Get("customer_id").String(), orderID)
	if err != nil {
		return nil, err
	}
	out := &Output{Response: res.Response}
	if res.Data != nil {
		out.Data = res.Data
	}
	return out, nil
}

func (t *OrdersTool) record(ctx context.Context, action, outcome string) {
	t.metrics.RecordToolExecution(ctx, OrdersToolName, action, outcome)
}

func ordersErrorText(action, orderID string) string {
	orderID = ordersdomain.NormalizeOrderID(orderID)
	switch action {
	case ActionRecent:
		return "I'm sorry, I couldn't retrieve your orders at this time. Please try again later."
	case ActionCancel:
		return "I'm sorry, I couldn't process your cancellation request at this time. Please try again later."
	default:
		return fmt.Sprintf("I'm sorry, I couldn't retrieve the details for order %s at this time. Please try again later.", orderID)
	}
}
