package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/smallbiznis/supportly/internal/agent"
	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	err          error
	searched     string
	availability [3]string
}

func (f *fakeAgent) Search(ctx context.Context, text string) (*agent.Result[agent.SearchData], error) {
	if f.err != nil {
		return nil, f.err
	}
	f.searched = text
	return &agent.Result[agent.SearchData]{Response: "found: " + text}, nil
}

func (f *fakeAgent) Details(ctx context.Context, productID string) (*agent.Result[*catalogdomain.ProductDetails], error) {
	if f.err != nil {
		return nil, f.err
	}
	return &agent.Result[*catalogdomain.ProductDetails]{Response: "I'm sorry, I couldn't find that product. Product not found"}, nil
}

func (f *fakeAgent) Availability(ctx context.Context, productID, size, color string) (*agent.Result[agent.AvailabilityData], error) {
	if f.err != nil {
		return nil, f.err
	}
	f.availability = [3]string{productID, size, color}
	return &agent.Result[agent.AvailabilityData]{Data: agent.AvailabilityData{Available: true}, Response: "in stock"}, nil
}

func (f *fakeAgent) CategoryProducts(ctx context.Context, categoryName string) (*agent.Result[[]catalogdomain.CategoryProduct], error) {
	if f.err != nil {
		return nil, f.err
	}
	return &agent.Result[[]catalogdomain.CategoryProduct]{Data: []catalogdomain.CategoryProduct{}, Response: "category " + categoryName}, nil
}

func newTestTool(t *testing.T, fake *fakeAgent) *ProductsTool {
	t.Helper()
	products, err := NewProductsTool(fake, nil, nil)
	require.NoError(t, err)
	return products
}

func TestProductsToolClarifications(t *testing.T) {
	products := newTestTool(t, &fakeAgent{})

	cases := []struct {
		name     string
		params   string
		err      string
		response string
	}{
		{
			name:     "missing action",
			params:   `{}`,
			err:      "Missing required parameter: action",
			response: "I'm not sure what you want me to do with products.",
		},
		{
			name:     "unknown action",
			params:   `{"action":"refund"}`,
			err:      "Unknown action: refund",
			response: "I'm sorry, I don't know how to perform the action 'refund' for products.",
		},
		{
			name:     "search without query",
			params:   `{"action":"search","query":"  "}`,
			err:      "No query provided",
			response: "I need to know what kind of shoes you're looking for. Could you provide more details?",
		},
		{
			name:     "details without id",
			params:   `{"action":"details"}`,
			err:      "No product ID provided",
			response: "I need a product ID to provide detailed information. Could you specify which product you're interested in?",
		},
		{
			name:     "availability without size",
			params:   `{"action":"availability","product_id":"p-1","color":"red"}`,
			err:      "No size provided",
			response: "I need to know which size you're looking for. Could you specify a size?",
		},
		{
			name:     "availability without color",
			params:   `{"action":"availability","product_id":"p-1","size":"10"}`,
			err:      "No color provided",
			response: "I need to know which color you're looking for. Could you specify a color?",
		},
		{
			name:     "category without name",
			params:   `{"action":"category"}`,
			err:      "No category name provided",
			response: "I need to know which category you're interested in. We have categories like Running, Basketball, Casual, and more. Which would you like to explore?",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := products.Execute(context.Background(), json.RawMessage(tc.params))
			require.NoError(t, err)
			assert.Equal(t, tc.err, out.Error)
			assert.Equal(t, tc.response, out.Response)
		})
	}
}

func TestProductsToolValidatesParameterTypes(t *testing.T) {
	products := newTestTool(t, &fakeAgent{})

	out, err := products.Execute(context.Background(), json.RawMessage(`{"action":"search","query":42}`))
	require.NoError(t, err)
	assert.Contains(t, out.Error, ErrInvalidParameters.Error())
}

func TestProductsToolDispatch(t *testing.T) {
	fake := &fakeAgent{}
	products := newTestTool(t, fake)

	out, err := products.Execute(context.Background(), json.RawMessage(`{"action":"search","query":"red running shoes"}`))
	require.NoError(t, err)
	assert.Empty(t, out.Error)
	assert.Equal(t, "found: red running shoes", out.Response)
	assert.Equal(t, "red running shoes", fake.searched)

	out, err = products.Execute(context.Background(), json.RawMessage(`{"action":"availability","product_id":"p-1","size":10.5,"color":"Black"}`))
	require.NoError(t, err)
	assert.Empty(t, out.Error)
	assert.Equal(t, [3]string{"p-1", "10.5", "Black"}, fake.availability)

	out, err = products.Execute(context.Background(), json.RawMessage(`{"action":"details","product_id":"missing"}`))
	require.NoError(t, err)
	assert.Nil(t, out.Data)
	assert.Equal(t, "I'm sorry, I couldn't find that product. Product not found", out.Response)
}

func TestProductsToolAgentFailure(t *testing.T) {
	products := newTestTool(t, &fakeAgent{err: errors.New("connection refused")})

	out, err := products.Execute(context.Background(), json.RawMessage(`{"action":"category","category_name":"Running"}`))
	require.NoError(t, err)
	assert.Equal(t, "connection refused", out.Error)
	assert.Equal(t, processingErrorText, out.Response)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	products := newTestTool(t, &fakeAgent{})
	orders := newTestOrdersTool(t, &fakeOrdersAgent{})
	require.NoError(t, Register(registry, products, orders))

	echo := ExecutorFunc(func(ctx context.Context, params json.RawMessage) (*Output, error) {
		return &Output{Response: string(params)}, nil
	})
	require.NoError(t, registry.Register(Description{Name: "echo_tool", Parameters: json.RawMessage(`{"type":"object"}`)}, echo))

	assert.ErrorIs(t, Register(registry, products, orders), ErrDuplicateTool)
	assert.ErrorIs(t, registry.Register(Description{Name: " "}, echo), ErrInvalidTool)
	assert.ErrorIs(t, registry.Register(Description{Name: "broken", Parameters: json.RawMessage(`{`)}, echo), ErrInvalidTool)

	descriptions := registry.Describe()
	require.Len(t, descriptions, 3)
	assert.Equal(t, "echo_tool", descriptions[0].Name)
	assert.Equal(t, OrdersToolName, descriptions[1].Name)
	assert.Equal(t, ProductsToolName, descriptions[2].Name)

	_, err := registry.Execute(context.Background(), "returns_tool", nil)
	assert.ErrorIs(t, err, ErrToolNotFound)

	_, err = registry.Execute(context.Background(), ProductsToolName, json.RawMessage(`["search"]`))
	assert.ErrorIs(t, err, ErrInvalidParameters)

	out, err := registry.Execute(context.Background(), "echo_tool", nil)
	require.NoError(t, err)
	assert.Equal(t, `{}`, out.Response)
}
