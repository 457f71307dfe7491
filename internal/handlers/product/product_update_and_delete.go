package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/cache"
	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/utils"
)

func (h *Handler) PutProductInfo(c *gin.Context) {
	p, ok := bindProduct(c)
	if !ok {
		return
	}
	if p.ID == "" {
		handlers.BadRequest(c, "id is required")
		return
	}
	c.Set(utils.CtxAuditResourceID, p.ID)

	ctx := c.Request.Context()
	old, err := h.Store.GetProduct(ctx, p.ID)
	if err != nil {
		handlers.RespondError(c, err, "update product")
		return
	}

	if !h.requireCategory(c, p.CategoryID) {
		return
	}

	updated, err := h.Store.UpdateProduct(ctx, p)
	if err != nil {
		handlers.RespondError(c, err, "update product")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyProducts,
		cache.KeyCategoryProducts(old.CategoryID), cache.KeyCategoryProducts(updated.CategoryID))
	h.Search.IndexProduct(updated)

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProductInfo(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	p, err := h.Store.GetProduct(ctx, id)
	if err != nil {
		handlers.RespondError(c, err, "delete product")
		return
	}
	if err := h.Store.DeleteProduct(ctx, id); err != nil {
		handlers.RespondError(c, err, "delete product")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyProducts, cache.KeyCategoryProducts(p.CategoryID))
	h.Search.DeleteProduct(id)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
