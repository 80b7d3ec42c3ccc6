package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := WithRequestID(context.Background(), " req-1 ")
	ctx = WithConversationID(ctx, "conv-1")
	ctx = WithClientIP(ctx, "")

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "conv-1", ConversationIDFromContext(ctx))
	assert.Equal(t, "", ClientIPFromContext(ctx))
	assert.Equal(t, "", RequestIDFromContext(nil))
}
