package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-admin/internal/model"
	"github.com/tuanvumaihuynh/product-admin/internal/repository"
	"github.com/tuanvumaihuynh/product-admin/internal/shopify"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Execute(ctx context.Context, op shopify.Operation, variables map[string]any) (json.RawMessage, error) {
	args := m.Called(ctx, op, variables)
	raw, _ := args.Get(0).(string)
	if raw == "" {
		return nil, args.Error(1)
	}
	return json.RawMessage(raw), args.Error(1)
}

func TestProductRepositoryListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return edges in api order", func(t *testing.T) {
		client := &mockClient{}
		client.On("Execute", ctx, shopify.OperationListProducts, map[string]any(nil)).Return(`{"products":{"edges":[
			{"node":{"id":"gid://shopify/Product/2","title":"Board","handle":"board","status":"ACTIVE","description":"Fast"}},
			{"node":{"id":"gid://shopify/Product/1","title":"Wax","handle":"wax","status":"DRAFT","description":""}}
		]}}`, nil)

		edges, err := repository.NewProductRepository(client).ListProducts(ctx)
		require.NoError(t, err)

		require.Len(t, edges, 2)
		assert.Equal(t, model.Product{
			ID:          "gid://shopify/Product/2",
			Title:       "Board",
			Handle:      "board",
			Status:      model.ProductStatusActive,
			Description: "Fast",
		}, edges[0].Node)
		assert.Equal(t, "gid://shopify/Product/1", edges[1].Node.ID)
		client.AssertExpectations(t)
	})

	t.Run("Should return an empty list for no products", func(t *testing.T) {
		client := &mockClient{}
		client.On("Execute", ctx, shopify.OperationListProducts, map[string]any(nil)).Return(`{"products":{"edges":null}}`, nil)

		edges, err := repository.NewProductRepository(client).ListProducts(ctx)
		require.NoError(t, err)
		assert.NotNil(t, edges)
		assert.Empty(t, edges)
	})

	t.Run("Should propagate transport errors", func(t *testing.T) {
		client := &mockClient{}
		client.On("Execute", ctx, shopify.OperationListProducts, map[string]any(nil)).Return("", shopify.ErrUnauthorized)

		_, err := repository.NewProductRepository(client).ListProducts(ctx)
		assert.ErrorIs(t, err, shopify.ErrUnauthorized)
	})
}

func TestProductRepositoryMutations(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create with the typed fields", func(t *testing.T) {
		client := &mockClient{}
		client.On("Execute", ctx, shopify.OperationProductCreate, map[string]any{
			"input": map[string]any{
				"title":           "Board",
				"descriptionHtml": "<p>Fast</p>",
				"status":          "DRAFT",
			},
		}).Return(`{"productCreate":{"product":{"id":"gid://shopify/Product/9","title":"Board","handle":"board","status":"DRAFT","description":"Fast"},"userErrors":[]}}`, nil)

		res, err := repository.NewProductRepository(client).CreateProduct(ctx, repository.ProductInput{
			Title:           "Board",
			DescriptionHTML: "<p>Fast</p>",
			Status:          model.ProductStatusDraft,
		})
		require.NoError(t, err)

		assert.Equal(t, model.ProductActionCreate, res.Action)
		assert.True(t, res.Succeeded())
		require.NotNil(t, res.Product)
		assert.Equal(t, "gid://shopify/Product/9", res.Product.ID)
		assert.Contains(t, string(res.Data), "productCreate")
		client.AssertExpectations(t)
	})

	t.Run("Should update preserving the id", func(t *testing.T) {
		client := &mockClient{}
		client.On("Execute", ctx, shopify.OperationProductUpdate, map[string]any{
			"input": map[string]any{
				"id":              "gid://shopify/Product/9",
				"title":           "Board v2",
				"descriptionHtml": "",
				"status":          "ACTIVE",
			},
		}).Return(`{"productUpdate":{"product":null,"userErrors":[{"field":["title"],"message":"Title is too long"}]}}`, nil)

		res, err := repository.NewProductRepository(client).UpdateProduct(ctx, repository.ProductInput{
			ID:     "gid://shopify/Product/9",
			Title:  "Board v2",
			Status: model.ProductStatusActive,
		})
		require.NoError(t, err)

		assert.Equal(t, model.ProductActionUpdate, res.Action)
		assert.False(t, res.Succeeded())
		assert.Equal(t, []model.UserError{{Field: []string{"title"}, Message: "Title is too long"}}, res.UserErrors)
		assert.Nil(t, res.Product)
		client.AssertExpectations(t)
	})

	t.Run("Should delete by id", func(t *testing.T) {
		client := &mockClient{}
		client.On("Execute", ctx, shopify.OperationProductDelete, map[string]any{
			"input": map[string]any{"id": "gid://shopify/Product/9"},
		}).Return(`{"productDelete":{"deletedProductId":"gid://shopify/Product/9","userErrors":[]}}`, nil)

		res, err := repository.NewProductRepository(client).DeleteProduct(ctx, "gid://shopify/Product/9")
		require.NoError(t, err)

		assert.Equal(t, model.ProductActionDelete, res.Action)
		assert.Equal(t, "gid://shopify/Product/9", res.DeletedProductID)
		client.AssertExpectations(t)
	})

	t.Run("Should propagate mutation errors", func(t *testing.T) {
		boom := errors.New("boom")
		client := &mockClient{}
		client.On("Execute", ctx, shopify.OperationProductDelete, mock.Anything).Return("", boom)

		_, err := repository.NewProductRepository(client).DeleteProduct(ctx, "gid://shopify/Product/9")
		assert.ErrorIs(t, err, boom)
	})
}
