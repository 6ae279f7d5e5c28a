package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ProductStatus is the publication status of a storefront product.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// ProductStatuses lists the statuses in the order the form offers them.
var ProductStatuses = []ProductStatus{
	ProductStatusActive,
	ProductStatusDraft,
	ProductStatusArchived,
}

func (s ProductStatus) Validate() error {
	switch s {
	case ProductStatusActive, ProductStatusDraft, ProductStatusArchived:
		return nil
	default:
		return fmt.Errorf("unknown product status: %q", string(s))
	}
}

// Label returns the human readable form of the status.
func (s ProductStatus) Label() string {
	switch s {
	case ProductStatusActive:
		return "Active"
	case ProductStatusDraft:
		return "Draft"
	case ProductStatusArchived:
		return "Archived"
	default:
		return string(s)
	}
}

// Product is a read-only copy of a product owned by the remote platform.
type Product struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Handle      string        `json:"handle"`
	Status      ProductStatus `json:"status"`
	Description string        `json:"description"`
}

// ProductEdge wraps a product the way the Admin API paginates lists.
type ProductEdge struct {
	Node Product `json:"node"`
}

// FindProduct returns the product with the given id from edges.
func FindProduct(edges []ProductEdge, id string) (Product, bool) {
	for _, edge := range edges {
		if edge.Node.ID == id {
			return edge.Node, true
		}
	}
	return Product{}, false
}

// ProductAction is the kind of mutation issued for a form submission.
type ProductAction string

const (
	ProductActionCreate ProductAction = "create"
	ProductActionUpdate ProductAction = "update"
	ProductActionDelete ProductAction = "delete"
)

// UserError is a field level error reported by a mutation.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// ProductActionEvent records a mutation the admin performed successfully.
type ProductActionEvent struct {
	Action     ProductAction `json:"action"`
	ProductID  string        `json:"product_id"`
	Title      string        `json:"title,omitempty"`
	Status     ProductStatus `json:"status,omitempty"`
	Shop       string        `json:"shop,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// MutationResult is the raw outcome of a product mutation.
type MutationResult struct {
	Action           ProductAction   `json:"action"`
	Data             json.RawMessage `json:"data"`
	UserErrors       []UserError     `json:"userErrors"`
	Product          *Product        `json:"-"`
	DeletedProductID string          `json:"-"`
}

// Succeeded reports whether the mutation returned no user errors.
func (r MutationResult) Succeeded() bool {
	return len(r.UserErrors) == 0
}
