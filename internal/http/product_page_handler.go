package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tuanvumaihuynh/product-admin/internal/apperr"
	"github.com/tuanvumaihuynh/product-admin/internal/http/page"
	"github.com/tuanvumaihuynh/product-admin/internal/model"
	"github.com/tuanvumaihuynh/product-admin/internal/service"
	"github.com/tuanvumaihuynh/product-admin/internal/view"
	"github.com/tuanvumaihuynh/product-admin/pkg/validator"
)

const (
	modalCreate = "create"
	modalEdit   = "edit"
)

// productForm is the body posted by the modal and the delete buttons.
type productForm struct {
	ID              string
	DeleteID        string
	Name            string
	DescriptionHTML string
	Status          model.ProductStatus `validate:"omitempty,enum"`
}

type productPageHandler struct {
	productSvc service.ProductService
	renderer   *page.Renderer
	validator  validator.Validator
}

func newProductPageHandler(
	productSvc service.ProductService,
	renderer *page.Renderer,
	validator validator.Validator,
) *productPageHandler {
	return &productPageHandler{
		productSvc: productSvc,
		renderer:   renderer,
		validator:  validator,
	}
}

// Show renders the product table. The modal query parameter opens the
// modal empty (create) or seeded from a listed row (edit).
func (h *productPageHandler) Show(w http.ResponseWriter, r *http.Request) error {
	edges, err := h.productSvc.LoadProducts(r.Context())
	if err != nil {
		return fmt.Errorf("product service load products: %w", err)
	}

	var modal view.Modal
	query := r.URL.Query()
	switch query.Get("modal") {
	case modalEdit:
		if p, ok := model.FindProduct(edges, query.Get("id")); ok {
			modal = modal.Open(&p)
			break
		}
		modal = modal.Open(nil)
	case modalCreate:
		modal = modal.Open(nil)
	}

	return h.renderer.Products(w, http.StatusOK, page.ProductsData{
		Edges:  edges,
		Modal:  modal,
		Action: productsPagePath,
	})
}

// Submit runs the posted action and redirects back to the product table.
// A create or update without a name re-renders the open modal with the
// warning and never reaches the Admin API.
func (h *productPageHandler) Submit(w http.ResponseWriter, r *http.Request) error {
	form, err := h.decodeForm(r)
	if err != nil {
		return err
	}

	params := service.ActionParams{DeleteID: form.DeleteID}
	if service.ResolveAction(params) != model.ProductActionDelete {
		modal, sub, ok := draftModal(form).Submit()
		if !ok {
			return h.renderer.Products(w, http.StatusUnprocessableEntity, page.ProductsData{
				Modal:  modal,
				Action: productsPagePath,
			})
		}

		params = service.ActionParams{
			ID:              sub.ID,
			Name:            sub.Name,
			DescriptionHTML: sub.DescriptionHTML,
			Status:          sub.Status,
		}
	}

	if _, err := h.productSvc.Act(r.Context(), params); err != nil {
		return fmt.Errorf("product service act: %w", err)
	}

	http.Redirect(w, r, productsPagePath, http.StatusSeeOther)
	return nil
}

func (h *productPageHandler) decodeForm(r *http.Request) (productForm, error) {
	if err := r.ParseForm(); err != nil {
		return productForm{}, apperr.MalformedBodyErr.WrapParent(err)
	}

	form := productForm{
		ID:              strings.TrimSpace(r.PostForm.Get("id")),
		DeleteID:        strings.TrimSpace(r.PostForm.Get("idDelete")),
		Name:            r.PostForm.Get("name"),
		DescriptionHTML: r.PostForm.Get("descriptionHtml"),
		Status:          model.ProductStatus(r.PostForm.Get("status")),
	}
	if err := h.validator.Validate(form); err != nil {
		return productForm{}, apperr.ValidationErr.WrapParent(err)
	}

	return form, nil
}

// draftModal rebuilds the open modal the form was posted from.
func draftModal(form productForm) view.Modal {
	var selection *model.Product
	if form.ID != "" {
		selection = &model.Product{ID: form.ID}
	}

	modal := view.Modal{}.Open(selection).
		Edit(view.FieldName, form.Name).
		Edit(view.FieldDescription, form.DescriptionHTML)
	if form.Status != "" {
		modal = modal.Edit(view.FieldStatus, string(form.Status))
	}

	return modal
}
