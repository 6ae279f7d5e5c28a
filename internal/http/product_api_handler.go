package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/product-admin/internal/apperr"
	"github.com/tuanvumaihuynh/product-admin/internal/model"
	"github.com/tuanvumaihuynh/product-admin/internal/service"
)

type productActionRequest struct {
	ID              string              `json:"id"`
	DeleteID        string              `json:"idDelete"`
	Name            string              `json:"name"`
	DescriptionHTML string              `json:"descriptionHtml"`
	Status          model.ProductStatus `json:"status"`
}

type productAPIHandler struct {
	productSvc service.ProductService
}

func newProductAPIHandler(productSvc service.ProductService) *productAPIHandler {
	return &productAPIHandler{
		productSvc: productSvc,
	}
}

func (h *productAPIHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	edges, err := h.productSvc.LoadProducts(r.Context())
	if err != nil {
		return fmt.Errorf("product service load products: %w", err)
	}

	if edges == nil {
		edges = []model.ProductEdge{}
	}

	return writeJSON(w, http.StatusOK, edges)
}

// SubmitProductAction runs the action and returns the raw mutation result,
// user errors included.
func (h *productAPIHandler) SubmitProductAction(w http.ResponseWriter, r *http.Request) error {
	var req productActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperr.MalformedBodyErr.WrapParent(err)
	}

	res, err := h.productSvc.Act(r.Context(), service.ActionParams{
		ID:              req.ID,
		DeleteID:        req.DeleteID,
		Name:            req.Name,
		DescriptionHTML: req.DescriptionHTML,
		Status:          req.Status,
	})
	if err != nil {
		return fmt.Errorf("product service act: %w", err)
	}

	if res.UserErrors == nil {
		res.UserErrors = []model.UserError{}
	}

	return writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	return nil
}
