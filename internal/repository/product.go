package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tuanvumaihuynh/product-admin/internal/model"
	"github.com/tuanvumaihuynh/product-admin/internal/shopify"
)

type ProductInput struct {
	ID              string
	Title           string
	DescriptionHTML string
	Status          model.ProductStatus
}

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]model.ProductEdge, error)
	CreateProduct(ctx context.Context, input ProductInput) (model.MutationResult, error)
	UpdateProduct(ctx context.Context, input ProductInput) (model.MutationResult, error)
	DeleteProduct(ctx context.Context, id string) (model.MutationResult, error)
}

type productRepository struct {
	client shopify.Client
}

func NewProductRepository(client shopify.Client) ProductRepository {
	return &productRepository{
		client: client,
	}
}

func (r productRepository) ListProducts(ctx context.Context) ([]model.ProductEdge, error) {
	data, err := r.client.Execute(ctx, shopify.OperationListProducts, nil)
	if err != nil {
		return nil, fmt.Errorf("execute list products: %w", err)
	}

	var res struct {
		Products struct {
			Edges []model.ProductEdge `json:"edges"`
		} `json:"products"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("unmarshal products: %w", err)
	}

	if res.Products.Edges == nil {
		return []model.ProductEdge{}, nil
	}

	return res.Products.Edges, nil
}

func (r productRepository) CreateProduct(ctx context.Context, input ProductInput) (model.MutationResult, error) {
	res, err := r.mutate(ctx, shopify.OperationProductCreate, "productCreate", productInputVariables(input, false))
	if err != nil {
		return model.MutationResult{}, fmt.Errorf("product create: %w", err)
	}

	res.Action = model.ProductActionCreate
	return res, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, input ProductInput) (model.MutationResult, error) {
	res, err := r.mutate(ctx, shopify.OperationProductUpdate, "productUpdate", productInputVariables(input, true))
	if err != nil {
		return model.MutationResult{}, fmt.Errorf("product update: %w", err)
	}

	res.Action = model.ProductActionUpdate
	return res, nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id string) (model.MutationResult, error) {
	vars := map[string]any{
		"input": map[string]any{"id": id},
	}
	res, err := r.mutate(ctx, shopify.OperationProductDelete, "productDelete", vars)
	if err != nil {
		return model.MutationResult{}, fmt.Errorf("product delete: %w", err)
	}

	res.Action = model.ProductActionDelete
	return res, nil
}

type mutationPayload struct {
	Product          *model.Product    `json:"product"`
	DeletedProductID string            `json:"deletedProductId"`
	UserErrors       []model.UserError `json:"userErrors"`
}

func (r productRepository) mutate(ctx context.Context, op shopify.Operation, field string, vars map[string]any) (model.MutationResult, error) {
	data, err := r.client.Execute(ctx, op, vars)
	if err != nil {
		return model.MutationResult{}, fmt.Errorf("execute %s: %w", op, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return model.MutationResult{}, fmt.Errorf("unmarshal %s data: %w", op, err)
	}

	var payload mutationPayload
	if raw, ok := fields[field]; ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return model.MutationResult{}, fmt.Errorf("unmarshal %s payload: %w", field, err)
		}
	}

	userErrors := payload.UserErrors
	if userErrors == nil {
		userErrors = []model.UserError{}
	}

	return model.MutationResult{
		Data:             data,
		UserErrors:       userErrors,
		Product:          payload.Product,
		DeletedProductID: payload.DeletedProductID,
	}, nil
}

// productInputVariables builds the ProductInput variables. Title and
// description are sent as typed, status only when chosen.
func productInputVariables(input ProductInput, withID bool) map[string]any {
	in := map[string]any{
		"title":           input.Title,
		"descriptionHtml": input.DescriptionHTML,
	}
	if withID {
		in["id"] = input.ID
	}
	if input.Status != "" {
		in["status"] = string(input.Status)
	}

	return map[string]any{"input": in}
}
