package shopify

import "github.com/tuanvumaihuynh/product-admin/pkg/zerror"

var (
	ErrNoSession    = zerror.NewUnauthorized("SHOPIFY_SESSION_MISSING", "no authenticated shop session")
	ErrUnauthorized = zerror.NewUnauthorized("SHOPIFY_UNAUTHORIZED", "admin api rejected the session")
	ErrForbidden    = zerror.NewForbidden("SHOPIFY_FORBIDDEN", "admin api access denied")
	ErrThrottled    = zerror.NewServiceUnavailable("SHOPIFY_THROTTLED", "admin api rate limit exceeded")
	ErrTimeout      = zerror.NewTimeout("SHOPIFY_TIMEOUT", "admin api request timed out")
	ErrUnavailable  = zerror.NewBadGateway("SHOPIFY_UNAVAILABLE", "admin api request failed")
	ErrGraphQL      = zerror.NewBadGateway("SHOPIFY_GRAPHQL_ERROR", "admin api returned errors")
)

// GraphQLError represents a single error returned in a GraphQL response.
type GraphQLError struct {
	Message string `json:"message"`
}

func (e GraphQLError) Error() string {
	return e.Message
}
