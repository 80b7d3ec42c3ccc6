package adapters

import (
	"strings"

	"github.com/smallbiznis/supportly/internal/llm/domain"
)

type Registry struct {
	factories map[string]domain.Factory
}

func NewRegistry(factories ...domain.Factory) *Registry {
	registry := &Registry{factories: map[string]domain.Factory{}}
	for _, factory := range factories {
		if factory == nil {
			continue
		}
		vendor := strings.ToLower(strings.TrimSpace(factory.Vendor()))
		if vendor == "" {
			continue
		}
		registry.factories[vendor] = factory
	}
	return registry
}

func (r *Registry) VendorExists(vendor string) bool {
	if r == nil {
		return false
	}
	vendor = strings.ToLower(strings.TrimSpace(vendor))
	_, ok := r.factories[vendor]
	return ok
}

func (r *Registry) New(cfg domain.Config) (domain.Client, error) {
	if r == nil {
		return nil, domain.ErrVendorNotFound
	}
	vendor := strings.ToLower(strings.TrimSpace(cfg.Vendor))
	factory, ok := r.factories[vendor]
	if !ok {
		return nil, domain.ErrVendorNotFound
	}
	return factory.New(cfg)
}
