package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

var (
	ErrToolNotFound      = errors.New("tool_not_found")
	ErrInvalidParameters = errors.New("invalid_parameters")
	ErrInvalidTool       = errors.New("invalid_tool")
	ErrDuplicateTool     = errors.New("duplicate_tool")
)

// Description is what an orchestrator sees of a tool. Parameters is a JSON
// schema object.
type Description struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// Output is the result of one tool call. Failures the user should see are
// reported through Error with a readable Response, not as Go errors.
type Output struct {
	Data     any    `json:"data,omitempty"`
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

type Executor interface {
	Execute(ctx context.Context, params json.RawMessage) (*Output, error)
}

type ExecutorFunc func(ctx context.Context, params json.RawMessage) (*Output, error)

func (f ExecutorFunc) Execute(ctx context.Context, params json.RawMessage) (*Output, error) {
	return f(ctx, params)
}

const inlineSchemaURL = "inline://schema"

func compileSchema(schema string) (*jsonschema.Schema, error) {
	if !gjson.Valid(schema) {
		return nil, fmt.Errorf("invalid JSON schema")
	}

	compiler := jsonschema.NewCompiler()
	compiler.LoadURL = func(url string) (io.ReadCloser, error) {
		if url == inlineSchemaURL {
			return io.NopCloser(bytes.NewReader([]byte(schema))), nil
		}
		return nil, fmt.Errorf("unsupported schema ref: %s", url)
	}
	if err := compiler.AddResource(inlineSchemaURL, bytes.NewReader([]byte(schema))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(inlineSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return compiled, nil
}

// validateParams checks raw parameters against a compiled schema.
func validateParams(schema *jsonschema.Schema, params json.RawMessage) error {
	var value any
	if err := json.Unmarshal(params, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	return nil
}
