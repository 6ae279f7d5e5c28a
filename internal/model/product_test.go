package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/product-admin/internal/model"
)

func TestProductStatus(t *testing.T) {
	for _, s := range model.ProductStatuses {
		assert.NoError(t, s.Validate(), s)
	}
	assert.Error(t, model.ProductStatus("PUBLISHED").Validate())
	assert.Error(t, model.ProductStatus("").Validate())
	assert.Equal(t, "Archived", model.ProductStatusArchived.Label())
}

func TestFindProduct(t *testing.T) {
	edges := []model.ProductEdge{
		{Node: model.Product{ID: "gid://shopify/Product/2", Title: "Board"}},
		{Node: model.Product{ID: "gid://shopify/Product/1", Title: "Wax"}},
	}

	p, ok := model.FindProduct(edges, "gid://shopify/Product/1")
	assert.True(t, ok)
	assert.Equal(t, "Wax", p.Title)

	_, ok = model.FindProduct(edges, "gid://shopify/Product/3")
	assert.False(t, ok)
}
