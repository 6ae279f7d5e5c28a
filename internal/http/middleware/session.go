package middleware

import (
	"net/http"

	"github.com/tuanvumaihuynh/product-admin/internal/shopify"
)

// Session attaches the shop session to requests that do not carry one yet.
// Session token exchange belongs to the embedding shell; this app runs with
// the offline token it was configured with.
func Session(sess shopify.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := shopify.SessionFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(shopify.NewContext(r.Context(), sess)))
		})
	}
}
