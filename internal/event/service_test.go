package event

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-admin/internal/model"
	"github.com/tuanvumaihuynh/product-admin/internal/storage/mq"
)

type fakeConsumer struct {
	handlers map[string]mq.HandlerFunc
	ran      bool
}

func (c *fakeConsumer) RegisterHandler(topic string, handler mq.HandlerFunc) error {
	if c.handlers == nil {
		c.handlers = map[string]mq.HandlerFunc{}
	}
	c.handlers[topic] = handler
	return nil
}

func (c *fakeConsumer) Run(context.Context) (mq.CleanupFunc, error) {
	c.ran = true
	return func() {}, nil
}

func TestServiceRun(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	consumer := &fakeConsumer{}

	cleanup, err := New(logger, consumer).Run(context.Background())
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, consumer.ran)
	require.Len(t, consumer.handlers, len(Topics))

	t.Run("Should log a decoded event", func(t *testing.T) {
		handler := consumer.handlers[TopicProductUpdated]
		err := handler(context.Background(), TopicProductUpdated,
			[]byte(`{"action":"update","product_id":"gid://shopify/Product/1","occurred_at":"2026-10-01T10:00:00Z"}`))
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "handling product action event")
		assert.Contains(t, buf.String(), "gid://shopify/Product/1")
	})

	t.Run("Should reject malformed payloads", func(t *testing.T) {
		handler := consumer.handlers[TopicProductCreated]
		assert.Error(t, handler(context.Background(), TopicProductCreated, []byte(`{`)))
	})
}

func TestTopicForAction(t *testing.T) {
	assert.Equal(t, TopicProductCreated, TopicForAction(model.ProductActionCreate))
	assert.Equal(t, TopicProductUpdated, TopicForAction(model.ProductActionUpdate))
	assert.Equal(t, TopicProductDeleted, TopicForAction(model.ProductActionDelete))
}
