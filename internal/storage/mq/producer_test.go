package mq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/tuanvumaihuynh/product-admin/pkg/ptr"
)

func TestBuildProduceRecord(t *testing.T) {
	t.Run("Should keep topic, payload, headers and key", func(t *testing.T) {
		rec := buildProduceRecord(ProduceMsg{
			Topic:        "product.updated",
			Headers:      map[string]string{"X-Correlation-ID": "corr-1"},
			Payload:      []byte(`{"action":"update"}`),
			PartitionKey: ptr.New("gid://shopify/Product/1"),
		})

		assert.Equal(t, "product.updated", rec.Topic)
		assert.Equal(t, []byte(`{"action":"update"}`), rec.Value)
		assert.Equal(t, []byte("gid://shopify/Product/1"), rec.Key)
		assert.Equal(t, []kgo.RecordHeader{{Key: "X-Correlation-ID", Value: []byte("corr-1")}}, rec.Headers)
	})

	t.Run("Should leave the key empty without partition key", func(t *testing.T) {
		rec := buildProduceRecord(ProduceMsg{Topic: "product.deleted"})

		assert.Nil(t, rec.Key)
		assert.Empty(t, rec.Headers)
	})
}

func TestRecordHeaders(t *testing.T) {
	rec := &kgo.Record{Headers: []kgo.RecordHeader{
		{Key: "traceparent", Value: []byte("00-abc-def-01")},
		{Key: "X-Correlation-ID", Value: []byte("corr-1")},
	}}

	assert.Equal(t, map[string]string{
		"traceparent":      "00-abc-def-01",
		"X-Correlation-ID": "corr-1",
	}, recordHeaders(rec))
}
