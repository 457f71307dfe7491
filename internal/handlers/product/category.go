package product

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/cache"
	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/utils"
)

func (h *Handler) listCategories(ctx context.Context) ([]models.Category, error) {
	return cache.Remember(ctx, h.Cache, cache.KeyCategories, h.Store.ListCategories)
}

// GetCategories lists every category.
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.listCategories(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategoryByID(c *gin.Context) {
	category, err := h.Store.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err, "get category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// SearchCategory matches categoryName through Elasticsearch, or by substring
// over the stored list when search is unavailable. A blank name lists everything.
func (h *Handler) SearchCategory(c *gin.Context) {
	ctx := c.Request.Context()
	name := strings.TrimSpace(c.Query("categoryName"))

	if name != "" {
		found, err := h.Search.SearchCategories(ctx, name)
		if err == nil {
			c.JSON(http.StatusOK, found)
			return
		}
		handlers.LogSearchFallback("category", err)
	}

	categories, err := h.listCategories(ctx)
	if err != nil {
		handlers.RespondError(c, err, "search categories")
		return
	}
	matches := make([]models.Category, 0, len(categories))
	for _, cat := range categories {
		if handlers.ContainsFold(cat.CategoryName, name) {
			matches = append(matches, cat)
		}
	}
	c.JSON(http.StatusOK, matches)
}

func (h *Handler) PostCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		handlers.BadRequest(c, "invalid category body: "+err.Error())
		return
	}
	cat.Normalize()
	if err := cat.Validate(); err != nil {
		handlers.RespondError(c, err, "validate category")
		return
	}

	ctx := c.Request.Context()
	created, err := h.Store.CreateCategory(ctx, cat)
	if err != nil {
		handlers.RespondError(c, err, "create category")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyCategories)
	h.Search.IndexCategory(created)

	c.Set(utils.CtxAuditResourceID, created.ID)
	c.JSON(http.StatusCreated, created)
}
