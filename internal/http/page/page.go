// Package page renders the server-side product admin screens.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/tuanvumaihuynh/product-admin/internal/model"
	"github.com/tuanvumaihuynh/product-admin/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	productsTemplate = "products"
	errorTemplate    = "error"
)

// ProductsData is rendered by the products page. A nil Edges hides the table.
type ProductsData struct {
	Edges []model.ProductEdge
	Modal view.Modal
	// Action is the form target of the modal and the delete buttons.
	Action string
}

type ErrorData struct {
	StatusCode int
	Code       string
	Message    string
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"statuses": func() []model.ProductStatus { return model.ProductStatuses },
		"statusText": func(code int) string {
			return http.StatusText(code)
		},
	}

	tmpl, err := template.New("_root").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Products(w http.ResponseWriter, status int, data ProductsData) error {
	return r.render(w, status, productsTemplate, data)
}

func (r *Renderer) Error(w http.ResponseWriter, data ErrorData) error {
	return r.render(w, data.StatusCode, errorTemplate, data)
}

// render executes into a buffer so a failing template never leaves a
// half-written page behind.
func (r *Renderer) render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write template %s: %w", name, err)
	}

	return nil
}
