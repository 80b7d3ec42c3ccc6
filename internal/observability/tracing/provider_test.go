package tracing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsCustomerText(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/chat"),
		attribute.String("message", "where is my order"),
		attribute.String("api_key", "secret"),
	)
	assert.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
}

func TestSafeError(t *testing.T) {
	assert.Nil(t, SafeError(nil))
	assert.Nil(t, SafeError(errors.New("  ")))

	long := errors.New(strings.Repeat("x", 400))
	assert.Len(t, SafeError(long).Error(), maxErrorLength)
}

func TestNewProviderDisabled(t *testing.T) {
	tp, err := NewProvider(nil, Config{Enabled: false}, nil)
	assert.NoError(t, err)
	assert.NotNil(t, tp)
}

func TestNewProviderRejectsUnknownProtocol(t *testing.T) {
	_, err := NewProvider(nil, Config{Enabled: true, ExporterProtocol: "udp"}, nil)
	assert.Error(t, err)
}
