package metrics

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the chat, tool, search and rate limit instruments.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	chatMessages     metric.Int64Counter
	toolExecutions   metric.Int64Counter
	searchResults    metric.Int64Histogram
	rateLimitAllowed metric.Int64Counter
	rateLimitDenied  metric.Int64Counter
}

var searchResultBuckets = []float64{0, 1, 2, 5, 10, 25, 50, 100}

func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "supportly"
	}
	meter := provider.Meter(name)

	var errs []error
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		errs = append(errs, err)
		return c
	}

	m := &Metrics{
		chatMessages:     counter("supportly_chat_messages_total", "Chat turns answered, by intent."),
		toolExecutions:   counter("supportly_tool_executions_total", "Tool invocations, by tool, action and outcome."),
		rateLimitAllowed: counter("supportly_rate_limit_allowed_total", "Chat requests admitted by the rate limiter."),
		rateLimitDenied:  counter("supportly_rate_limit_denied_total", "Chat requests rejected by the rate limiter."),
	}
	hist, err := meter.Int64Histogram("supportly_search_results",
		metric.WithDescription("Rows returned per catalog search."),
		metric.WithExplicitBucketBoundaries(searchResultBuckets...),
	)
	errs = append(errs, err)
	m.searchResults = hist

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) RecordChatMessage(ctx context.Context, intent string) {
	if m == nil {
		return
	}
	m.chatMessages.Add(ctx, 1, withLabels("intent", intent))
}

func (m *Metrics) RecordToolExecution(ctx context.Context, tool, action, outcome string) {
	if m == nil {
		return
	}
	m.toolExecutions.Add(ctx, 1, withLabels("tool", tool, "action", action, "outcome", outcome))
}

// RecordSearchResults observes how many rows a search returned. source is
// "agent" or "raw".
func (m *Metrics) RecordSearchResults(ctx context.Context, source string, count int) {
	if m == nil {
		return
	}
	m.searchResults.Record(ctx, int64(count), withLabels("source", source))
}

func (m *Metrics) RecordRateLimitAllowed(ctx context.Context, endpoint string) {
	if m == nil {
		return
	}
	m.rateLimitAllowed.Add(ctx, 1, withLabels("endpoint", endpoint))
}

func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint, reason string) {
	if m == nil {
		return
	}
	m.rateLimitDenied.Add(ctx, 1, withLabels("endpoint", endpoint, "reason", reason))
}

// withLabels turns alternating key/value pairs into a filtered attribute set.
func withLabels(kv ...string) metric.MeasurementOption {
	attrs := make([]attribute.KeyValue, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, attribute.String(kv[i], strings.TrimSpace(kv[i+1])))
	}
	return metric.WithAttributes(FilterAttributes(attrs...)...)
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"intent":      {},
	"tool":        {},
	"action":      {},
	"outcome":     {},
	"source":      {},
	"endpoint":    {},
	"status_code": {},
	"reason":      {},
}

// FilterAttributes keeps only the low-cardinality label keys. Identifiers
// such as conversation or product ids never become labels.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; ok {
			filtered = append(filtered, attr)
		}
	}
	return filtered
}
