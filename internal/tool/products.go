package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/smallbiznis/supportly/internal/agent"
	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
	"github.com/smallbiznis/supportly/internal/observability/metrics"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const ProductsToolName = "products_tool"

const (
	ActionSearch       = "search"
	ActionDetails      = "details"
	ActionAvailability = "availability"
	ActionCategory     = "category"
)

const productsSchema = `{
	"type": "object",
	"properties": {
		"action": {
			"type": "string",
			"enum": ["search", "details", "availability", "category"],
			"description": "The action to perform with the products tool."
		},
		"query": {
			"type": "string",
			"description": "For search action: Natural language query to search for products."
		},
		"product_id": {
			"type": "string",
			"description": "For details and availability actions: UUID of the product."
		},
		"size": {
			"type": ["string", "number"],
			"description": "For availability action: Size of the product."
		},
		"color": {
			"type": "string",
			"description": "For availability action: Color of the product."
		},
		"category_name": {
			"type": "string",
			"description": "For category action: Name of the category to get products from."
		}
	},
	"required": ["action"]
}`

const processingErrorText = "I'm sorry, I encountered an error while processing your request. Please try again later."

// ProductsAgent is the part of the products agent the tool dispatches to.
type ProductsAgent interface {
	Search(ctx context.Context, text string) (*agent.Result[agent.SearchData], error)
	Details(ctx context.Context, productID string) (*agent.Result[*catalogdomain.ProductDetails], error)
	Availability(ctx context.Context, productID, size, color string) (*agent.Result[agent.AvailabilityData], error)
	CategoryProducts(ctx context.Context, categoryName string) (*agent.Result[[]catalogdomain.CategoryProduct], error)
}

type actionFunc func(ctx context.Context, params gjson.Result) (*Output, error)

// ProductsTool exposes the products agent as a named tool.
type ProductsTool struct {
	agent   ProductsAgent
	schema  *jsonschema.Schema
	actions map[string]actionFunc
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewProductsTool(productsAgent ProductsAgent, m *metrics.Metrics, log *zap.Logger) (*ProductsTool, error) {
	if productsAgent == nil {
		return nil, errors.New("products agent is required")
	}
	schema, err := compileSchema(productsSchema)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	t := &ProductsTool{
		agent:   productsAgent,
		schema:  schema,
		metrics: m,
		log:     log.Named("tool.products"),
	}
	t.actions = map[string]actionFunc{
		ActionSearch:       t.search,
		ActionDetails:      t.details,
		ActionAvailability: t.availability,
		ActionCategory:     t.category,
	}
	return t, nil
}

func (t *ProductsTool) Description() Description {
	return Description{
		Name:        ProductsToolName,
		Description: "Use this tool to search for shoes and get product information from our database.",
		Parameters:  json.RawMessage(productsSchema),
	}
}

func (t *ProductsTool) Execute(ctx context.Context, params json.RawMessage) (*Output, error) {
	parsed := gjson.ParseBytes(params)
	action := strings.TrimSpace(parsed.Get("action").String())
	if action == "" {
		t.record(ctx, "", "clarify")
		return &Output{
			Error:    "Missing required parameter: action",
			Response: "I'm not sure what you want me to do with products.",
		}, nil
	}

	run, ok := t.actions[action]
	if !ok {
		t.record(ctx, "unknown", "invalid")
		return &Output{
			Error:    fmt.Sprintf("Unknown action: %s", action),
			Response: fmt.Sprintf("I'm sorry, I don't know how to perform the action '%s' for products.", action),
		}, nil
	}

	if err := validateParams(t.schema, params); err != nil {
		t.record(ctx, action, "invalid")
		return &Output{
			Error:    err.Error(),
			Response: "I'm not sure what you want me to do with products.",
		}, nil
	}

	out, err := run(ctx, parsed)
	if err != nil {
		t.log.Error("products tool action failed", zap.String("action", action), zap.Error(err))
		t.record(ctx, action, "error")
		return &Output{Error: err.Error(), Response: processingErrorText}, nil
	}
	if out.Error != "" {
		t.record(ctx, action, "clarify")
	} else {
		t.record(ctx, action, "ok")
	}
	return out, nil
}

func (t *ProductsTool) search(ctx context.Context, params gjson.Result) (*Output, error) {
	query := strings.TrimSpace(params.Get("query").String())
	if query == "" {
		return &Output{
			Error:    "No query provided",
			Response: "I need to know what kind of shoes you're looking for. Could you provide more details?",
		}, nil
	}
	res, err := t.agent.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return &Output{Data: res.Data, Response: res.Response}, nil
}

func (t *ProductsTool) details(ctx context.Context, params gjson.Result) (*Output, error) {
	productID := strings.TrimSpace(params.Get("product_id").String())
	if productID == "" {
		return &Output{
			Error:    "No product ID provided",
			Response: "I need a product ID to provide detailed information. Could you specify which product you're interested in?",
		}, nil
	}
	res, err := t.agent.Details(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &Output{Response: res.Response}
	if res.Data != nil {
		out.Data = res.Data
	}
	return out, nil
}

func (t *ProductsTool) availability(ctx context.Context, params gjson.Result) (*Output, error) {
	productID := strings.TrimSpace(params.Get("product_id").String())
	size := strings.TrimSpace(params.Get("size").String())
	color := strings.TrimSpace(params.Get("color").String())

	switch {
	case productID == "":
		return &Output{
			Error:    "No product ID provided",
			Response: "I need a product ID to check availability. Could you specify which product you're interested in?",
		}, nil
	case size == "":
		return &Output{
			Error:    "No size provided",
			Response: "I need to know which size you're looking for. Could you specify a size?",
		}, nil
	case color == "":
		return &Output{
			Error:    "No color provided",
			Response: "I need to know which color you're looking for. Could you specify a color?",
		}, nil
	}

	res, err := t.agent.Availability(ctx, productID, size, color)
	if err != nil {
		return nil, err
	}
	return &Output{Data: res.Data, Response: res.Response}, nil
}

func (t *ProductsTool) category(ctx context.Context, params gjson.Result) (*Output, error) {
	name := strings.TrimSpace(params.Get("category_name").String())
	if name == "" {
		return &Output{
			Error:    "No category name provided",
			Response: "I need to know which category you're interested in. We have categories like Running, Basketball, Casual, and more. Which would you like to explore?",
		}, nil
	}
	res, err := t.agent.CategoryProducts(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Output{Data: res.Data, Response: res.Response}, nil
}

func (t *ProductsTool) record(ctx context.Context, action, outcome string) {
	t.metrics.RecordToolExecution(ctx, ProductsToolName, action, outcome)
}
