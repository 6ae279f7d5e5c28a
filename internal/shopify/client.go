// Package shopify talks to the storefront platform's Admin GraphQL API.
package shopify

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/tuanvumaihuynh/product-admin/internal/config"
)

var tracer = otel.Tracer("internal/shopify")

//go:embed operations/*.graphql
var operationsFS embed.FS

// Operation names a GraphQL document under operations/.
type Operation string

const (
	OperationListProducts  Operation = "list_products"
	OperationProductCreate Operation = "product_create"
	OperationProductUpdate Operation = "product_update"
	OperationProductDelete Operation = "product_delete"
)

// Document returns the GraphQL source of the operation.
func (o Operation) Document() (string, error) {
	b, err := operationsFS.ReadFile("operations/" + string(o) + ".graphql")
	if err != nil {
		return "", fmt.Errorf("read operation %s: %w", o, err)
	}
	return string(b), nil
}

const (
	accessTokenHeader = "X-Shopify-Access-Token"
	maxResponseBytes  = 8 << 20
)

// Client executes GraphQL operations against the Admin API.
type Client interface {
	Execute(ctx context.Context, op Operation, variables map[string]any) (json.RawMessage, error)
}

var _ Client = (*HTTPClient)(nil)

type HTTPClient struct {
	cfg        config.Shopify
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPClient creates an Admin API client. Outbound requests are traced and
// rate limited according to cfg.
func NewHTTPClient(cfg config.Shopify) *HTTPClient {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	return &HTTPClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Execute runs op with the session found in ctx and returns the raw data
// payload. Top-level GraphQL errors are returned as ErrGraphQL.
func (c *HTTPClient) Execute(ctx context.Context, op Operation, variables map[string]any) (json.RawMessage, error) {
	sess, ok := SessionFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	query, err := op.Document()
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "shopify.Execute",
		trace.WithAttributes(
			attribute.String("graphql.operation", string(op)),
			attribute.String("shopify.shop", sess.Shop),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	data, err := c.execute(ctx, sess, query, variables)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "admin api request failed")
		return nil, err
	}

	return data, nil
}

func (c *HTTPClient) execute(ctx context.Context, sess Session, query string, variables map[string]any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, ErrThrottled.WrapParent(err)
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(sess), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(accessTokenHeader, sess.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout.WrapParent(err)
		}
		return nil, ErrUnavailable.WrapParent(err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, err
	}

	var res graphQLResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&res); err != nil {
		return nil, ErrUnavailable.WrapParent(fmt.Errorf("decode graphql response: %w", err))
	}

	if len(res.Errors) > 0 {
		errs := make([]error, 0, len(res.Errors))
		for _, e := range res.Errors {
			errs = append(errs, e)
		}
		return nil, ErrGraphQL.WrapParent(errors.Join(errs...))
	}

	return res.Data, nil
}

func (c *HTTPClient) endpoint(sess Session) string {
	if c.cfg.AdminURL != "" {
		return c.cfg.AdminURL
	}
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", sess.Shop, c.cfg.APIVersion)
}

func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrThrottled
	default:
		return ErrUnavailable.WrapParent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}
