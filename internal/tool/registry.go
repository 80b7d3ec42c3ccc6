package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

type registered struct {
	desc     Description
	executor Executor
}

// Registry holds the named tools an orchestrator can invoke.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registered
}

func NewRegistry() *Registry {
	return &Registry{tools: map[string]registered{}}
}

func (r *Registry) Register(desc Description, executor Executor) error {
	name := strings.TrimSpace(desc.Name)
	if name == "" || executor == nil {
		return ErrInvalidTool
	}
	if len(desc.Parameters) > 0 && !gjson.ValidBytes(desc.Parameters) {
		return fmt.Errorf("%w: parameters of %s are not valid JSON", ErrInvalidTool, name)
	}
	desc.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[name]; ok {
		return ErrDuplicateTool
	}
	r.tools[name] = registered{desc: desc, executor: executor}
	return nil
}

// Describe lists the registered tools ordered by name.
func (r *Registry) Describe() []Description {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Description, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Lookup(name string) (Description, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[strings.TrimSpace(name)]
	return t.desc, ok
}

func (r *Registry) Execute(ctx context.Context, name string, params json.RawMessage) (*Output, error) {
	r.mu.RLock()
	t, ok := r.tools[strings.TrimSpace(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrToolNotFound
	}

	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}
	if !gjson.ValidBytes(params) || !gjson.ParseBytes(params).IsObject() {
		return nil, ErrInvalidParameters
	}
	return t.executor.Execute(ctx, params)
}
