package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-admin/internal/config"
	"github.com/tuanvumaihuynh/product-admin/internal/log"
	"github.com/tuanvumaihuynh/product-admin/internal/shopify"
	"github.com/tuanvumaihuynh/product-admin/pkg/correlationid"
)

func TestNew(t *testing.T) {
	t.Run("Should enrich json records from context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf, config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo})

		ctx := correlationid.NewContext(context.Background(), "corr-1")
		ctx = shopify.NewContext(ctx, shopify.Session{Shop: "demo.myshopify.com", AccessToken: "secret"})
		logger.InfoContext(ctx, "products loaded", slog.Int("count", 3))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "products loaded", rec["msg"])
		assert.Equal(t, "corr-1", rec["correlation_id"])
		assert.Equal(t, "demo.myshopify.com", rec["shop"])
		assert.NotContains(t, buf.String(), "secret")
		_, hasTrace := rec["trace_id"]
		assert.False(t, hasTrace)
	})

	t.Run("Should respect the level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf, config.Log{Format: config.LogFormatText, Level: slog.LevelWarn})

		logger.Info("dropped")
		assert.Empty(t, buf.String())

		logger.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})
}
