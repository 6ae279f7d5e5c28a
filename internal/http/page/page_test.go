package page_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-admin/internal/http/page"
	"github.com/tuanvumaihuynh/product-admin/internal/model"
	"github.com/tuanvumaihuynh/product-admin/internal/view"
)

func TestRendererProducts(t *testing.T) {
	r, err := page.NewRenderer()
	require.NoError(t, err)

	edges := []model.ProductEdge{
		{Node: model.Product{ID: "gid://shopify/Product/2", Title: "Wax <hot>", Handle: "wax", Status: model.ProductStatusActive}},
		{Node: model.Product{ID: "gid://shopify/Product/1", Title: "Board", Handle: "board", Status: model.ProductStatusArchived}},
	}

	t.Run("Should render rows in order with escaped titles", func(t *testing.T) {
		rec := httptest.NewRecorder()

		err := r.Products(rec, http.StatusOK, page.ProductsData{Edges: edges, Action: "/app/products"})
		require.NoError(t, err)

		body := rec.Body.String()
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, body, "Wax &lt;hot&gt;")
		assert.Less(t, strings.Index(body, "Wax"), strings.Index(body, "Board"))
		assert.Contains(t, body, `name="idDelete" value="gid://shopify/Product/1"`)
		assert.NotContains(t, body, `role="dialog"`)
	})

	t.Run("Should render the open modal with warning and seeded fields", func(t *testing.T) {
		m, _, ok := view.Modal{}.Open(&edges[1].Node).Edit(view.FieldName, " ").Submit()
		require.False(t, ok)
		rec := httptest.NewRecorder()

		err := r.Products(rec, http.StatusUnprocessableEntity, page.ProductsData{Modal: m, Action: "/app/products"})
		require.NoError(t, err)

		body := rec.Body.String()
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, body, view.NameRequiredWarning)
		assert.Contains(t, body, `name="id" value="gid://shopify/Product/1"`)
		assert.Contains(t, body, `<option value="ARCHIVED" selected>`)
		assert.NotContains(t, body, "<table>")
	})

	t.Run("Should show the empty state without products", func(t *testing.T) {
		rec := httptest.NewRecorder()

		require.NoError(t, r.Products(rec, http.StatusOK, page.ProductsData{Action: "/app/products"}))
		assert.Contains(t, rec.Body.String(), "No products yet.")
	})
}

func TestRendererError(t *testing.T) {
	r, err := page.NewRenderer()
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	err = r.Error(rec, page.ErrorData{StatusCode: http.StatusBadGateway, Code: "SHOPIFY_UNAVAILABLE", Message: "admin api request failed"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bad Gateway")
	assert.Contains(t, rec.Body.String(), "admin api request failed")
}
