// Package product serves the catalog: categories, products and product images.
package product

import "shop_backoffice/internal/handlers"

type Handler struct {
	handlers.Deps
}

func New(deps handlers.Deps) *Handler {
	return &Handler{Deps: deps}
}
