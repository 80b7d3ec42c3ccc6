package metrics

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("intent", "products"),
		attribute.String("conversation_id", "456"),
		attribute.String("action", "search"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "intent" && attrs[1].Key != "intent" {
		t.Fatalf("expected intent to be retained")
	}
	if attrs[0].Key != "action" && attrs[1].Key != "action" {
		t.Fatalf("expected action to be retained")
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordChatMessage(context.Background(), "greeting")
	m.RecordToolExecution(context.Background(), "products_tool", "search", "ok")
	m.RecordSearchResults(context.Background(), "agent", 3)
	m.RecordRateLimitDenied(context.Background(), "/chat", "limited")
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{ServiceName: "supportly-test"}, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	m.RecordChatMessage(context.Background(), "products")
	m.RecordSearchResults(context.Background(), "raw", 0)
}

func TestChatCounterDropsUnknownLabels(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	m, err := New(Config{}, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	m.RecordChatMessage(context.Background(), " products ")
	m.RecordChatMessage(context.Background(), "products")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, rec := range sm.Metrics {
			if rec.Name != "supportly_chat_messages_total" {
				continue
			}
			sum, ok := rec.Data.(metricdata.Sum[int64])
			if !ok || len(sum.DataPoints) != 1 {
				t.Fatalf("expected one data point, got %#v", rec.Data)
			}
			point := sum.DataPoints[0]
			if point.Value != 2 {
				t.Fatalf("expected 2 chat turns, got %d", point.Value)
			}
			if v, _ := point.Attributes.Value("intent"); v.AsString() != "products" {
				t.Fatalf("expected trimmed intent label, got %q", v.AsString())
			}
			return
		}
	}
	t.Fatal("chat counter not exported")
}

func TestNewProviderDisabledIsNoop(t *testing.T) {
	provider, err := NewProvider(nil, Config{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := provider.(noop.MeterProvider); !ok {
		t.Fatalf("expected noop provider, got %T", provider)
	}
}

func TestNewExporterRejectsUnknownProtocol(t *testing.T) {
	if _, err := newExporter(context.Background(), Config{ExporterProtocol: "udp"}); err == nil {
		t.Fatal("expected error for udp protocol")
	}
}
