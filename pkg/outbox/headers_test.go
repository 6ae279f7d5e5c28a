package outbox_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/product-admin/pkg/correlationid"
	"github.com/tuanvumaihuynh/product-admin/pkg/outbox"
)

func TestHeadersRoundTrip(t *testing.T) {
	ctx := correlationid.NewContext(context.Background(), "corr-42")

	headers := outbox.BuildHeaders(ctx)
	assert.Equal(t, "corr-42", headers[correlationid.Header])

	got, ok := correlationid.FromContext(outbox.ExtractContextFromHeaders(context.Background(), headers))
	assert.True(t, ok)
	assert.Equal(t, "corr-42", got)
}

func TestExtractWithoutCorrelationID(t *testing.T) {
	ctx := outbox.ExtractContextFromHeaders(context.Background(), map[string]string{})

	_, ok := correlationid.FromContext(ctx)
	assert.False(t, ok)
}
