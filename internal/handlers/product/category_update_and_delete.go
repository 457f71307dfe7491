package product

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/cache"
	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repository"
	"shop_backoffice/internal/utils"
)

func (h *Handler) PutCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		handlers.BadRequest(c, "invalid category body: "+err.Error())
		return
	}
	if cat.ID == "" {
		handlers.BadRequest(c, "id is required")
		return
	}
	c.Set(utils.CtxAuditResourceID, cat.ID)

	cat.Normalize()
	if err := cat.Validate(); err != nil {
		handlers.RespondError(c, err, "validate category")
		return
	}

	ctx := c.Request.Context()
	updated, err := h.Store.UpdateCategory(ctx, cat)
	if err != nil {
		handlers.RespondError(c, err, "update category")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyCategories)
	h.Search.IndexCategory(updated)

	c.JSON(http.StatusOK, updated)
}

// DeleteCategory refuses while products still reference the category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	err := h.Store.DeleteCategory(ctx, id)
	if errors.Is(err, repository.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete category: products still use it"})
		return
	}
	if err != nil {
		handlers.RespondError(c, err, "delete category")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyCategories, cache.KeyCategoryProducts(id))
	h.Search.DeleteCategory(id)

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
