package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apicontract "github.com/tuanvumaihuynh/product-admin/api-contract"
	"github.com/tuanvumaihuynh/product-admin/internal/http/metric"
	"github.com/tuanvumaihuynh/product-admin/internal/http/middleware"
	"github.com/tuanvumaihuynh/product-admin/internal/shopify"
	"github.com/tuanvumaihuynh/product-admin/pkg/correlationid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCorrelationID(t *testing.T) {
	var got string
	h := middleware.CorrelationID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = correlationid.FromContext(r.Context())
	}))

	t.Run("Should reuse the incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/app/products", nil)
		req.Header.Set(correlationid.Header, "abc-123")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", got)
		assert.Equal(t, "abc-123", rec.Header().Get(correlationid.Header))
	})

	t.Run("Should generate an id when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app/products", nil))

		assert.NotEmpty(t, got)
		assert.Equal(t, got, rec.Header().Get(correlationid.Header))
	})
}

func TestSession(t *testing.T) {
	configured := shopify.Session{Shop: "demo.myshopify.com", AccessToken: "shpat_1"}

	var got shopify.Session
	h := middleware.Session(configured)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = shopify.SessionFromContext(r.Context())
	}))

	t.Run("Should attach the configured session", func(t *testing.T) {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, configured, got)
	})

	t.Run("Should keep an existing session", func(t *testing.T) {
		existing := shopify.Session{Shop: "other.myshopify.com", AccessToken: "shpat_2"}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(shopify.NewContext(req.Context(), existing))

		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, existing, got)
	})
}

func TestRecoverer(t *testing.T) {
	h := middleware.Recoverer(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"internalServerError","message":"an unknown error occurred"}`, rec.Body.String())
}

func TestMetrics(t *testing.T) {
	m := metric.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(middleware.Metrics(m))
	r.Get("/app/products", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/app/products?modal=create", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/app/products", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InflightRequests))
}

func TestOpenAPIValidator(t *testing.T) {
	doc, err := openapi3.NewLoader().LoadFromData(apicontract.GetSpecBytes())
	require.NoError(t, err)

	var handled error
	mw, err := middleware.OpenAPIValidator(doc, func(w http.ResponseWriter, _ *http.Request, err error) {
		handled = err
		w.WriteHeader(http.StatusBadRequest)
	})
	require.NoError(t, err)

	var body []byte
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))

	post := func(payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/products/actions", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Should pass a valid request with its body intact", func(t *testing.T) {
		handled = nil
		rec := post(`{"name":"Board","status":"ACTIVE"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, handled)
		assert.JSONEq(t, `{"name":"Board","status":"ACTIVE"}`, string(bytes.TrimSpace(body)))
	})

	t.Run("Should reject an unknown status", func(t *testing.T) {
		rec := post(`{"name":"Board","status":"LIVE"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Error(t, handled)
	})

	t.Run("Should reject unknown fields", func(t *testing.T) {
		rec := post(`{"title":"Board"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Should ignore routes outside the contract", func(t *testing.T) {
		handled = nil
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app/products", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, handled)
	})
}

func TestTrace(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	r := chi.NewRouter()
	r.Use(middleware.Trace(tp.Tracer("test")))
	r.Get("/app/products", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	r.Get(middleware.MetricsPath, func(http.ResponseWriter, *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/app/products", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, middleware.MetricsPath, nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /app/products", spans[0].Name())
	assert.Equal(t, "Error", spans[0].Status().Code.String())
}
