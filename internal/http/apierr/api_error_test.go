package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-admin/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-admin/internal/shopify"
	"github.com/tuanvumaihuynh/product-admin/pkg/validator"
)

func TestNew(t *testing.T) {
	t.Run("Should map admin api errors", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{shopify.ErrNoSession, http.StatusUnauthorized, "SHOPIFY_SESSION_MISSING"},
			{shopify.ErrForbidden, http.StatusForbidden, "SHOPIFY_FORBIDDEN"},
			{shopify.ErrThrottled, http.StatusServiceUnavailable, "SHOPIFY_THROTTLED"},
			{shopify.ErrTimeout, http.StatusGatewayTimeout, "SHOPIFY_TIMEOUT"},
			{fmt.Errorf("list: %w", shopify.ErrGraphQL.WrapParent(errors.New("bad field"))), http.StatusBadGateway, "SHOPIFY_GRAPHQL_ERROR"},
		}
		for _, tc := range cases {
			res := apierr.New(tc.err)
			assert.Equal(t, tc.status, res.StatusCode, tc.code)
			assert.Equal(t, tc.code, res.Code)
		}
	})

	t.Run("Should map request validation errors", func(t *testing.T) {
		err := &openapi3filter.RequestError{Reason: "doesn't match schema", Err: errors.New("bad status")}

		res := apierr.New(fmt.Errorf("validate: %w", err))
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "validationError", res.Code)
	})

	t.Run("Should map struct validation errors with details", func(t *testing.T) {
		v, err := validator.NewDefaultValidator()
		require.NoError(t, err)

		verr := v.Validate(struct {
			Name string `validate:"notblank"`
		}{})

		res := apierr.New(verr)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		require.NotNil(t, res.Details)
		assert.Equal(t, []apierr.FieldError{{Field: "Name", Message: "field is required"}}, *res.Details)
	})

	t.Run("Should hide unknown errors", func(t *testing.T) {
		assert.Equal(t, apierr.InternalServerErr, apierr.New(errors.New("boom")))
	})
}
