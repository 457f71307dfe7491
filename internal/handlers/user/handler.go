// Package user serves customer accounts and their orders (carts).
package user

import "shop_backoffice/internal/handlers"

type Handler struct {
	handlers.Deps
}

func New(deps handlers.Deps) *Handler {
	return &Handler{Deps: deps}
}
