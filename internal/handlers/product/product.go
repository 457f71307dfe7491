package product

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/cache"
	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repository"
	"shop_backoffice/internal/utils"
)

func (h *Handler) listProducts(ctx context.Context) ([]models.ProductInfo, error) {
	return cache.Remember(ctx, h.Cache, cache.KeyProducts, h.Store.ListProducts)
}

func (h *Handler) listCategoryProducts(ctx context.Context, categoryID string) ([]models.ProductInfo, error) {
	return cache.Remember(ctx, h.Cache, cache.KeyCategoryProducts(categoryID),
		func(ctx context.Context) ([]models.ProductInfo, error) {
			return h.Store.ListProductsByCategory(ctx, categoryID)
		})
}

// GetProductInfos lists products, optionally only those of ?categoryId=.
func (h *Handler) GetProductInfos(c *gin.Context) {
	var (
		products []models.ProductInfo
		err      error
	)
	if categoryID := c.Query("categoryId"); categoryID != "" {
		products, err = h.listCategoryProducts(c.Request.Context(), categoryID)
	} else {
		products, err = h.listProducts(c.Request.Context())
	}
	if err != nil {
		handlers.RespondError(c, err, "list products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProductDetailsByID(c *gin.Context) {
	p, err := h.Store.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err, "get product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) GetProductsByCategoryID(c *gin.Context) {
	products, err := h.listCategoryProducts(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		handlers.RespondError(c, err, "list category products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// SearchProductInfo matches ?name= against name, description and id.
func (h *Handler) SearchProductInfo(c *gin.Context) {
	ctx := c.Request.Context()
	query := strings.TrimSpace(c.Query("name"))

	if query != "" {
		found, err := h.Search.SearchProducts(ctx, query)
		if err == nil {
			c.JSON(http.StatusOK, found)
			return
		}
		handlers.LogSearchFallback("product", err)
	}

	products, err := h.listProducts(ctx)
	if err != nil {
		handlers.RespondError(c, err, "search products")
		return
	}
	matches := make([]models.ProductInfo, 0, len(products))
	for _, p := range products {
		if handlers.ContainsFold(p.Name, query) || handlers.ContainsFold(p.ID, query) {
			matches = append(matches, p)
		}
	}
	c.JSON(http.StatusOK, matches)
}

// bindProduct decodes, normalizes and validates a product body.
// It writes the error response itself and reports whether to continue.
func bindProduct(c *gin.Context) (models.ProductInfo, bool) {
	var p models.ProductInfo
	if err := c.ShouldBindJSON(&p); err != nil {
		handlers.BadRequest(c, "invalid product body: "+err.Error())
		return p, false
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		handlers.RespondError(c, err, "validate product")
		return p, false
	}
	return p, true
}

// requireCategory answers 400 when the product points at an unknown category.
func (h *Handler) requireCategory(c *gin.Context, categoryID string) bool {
	_, err := h.Store.GetCategory(c.Request.Context(), categoryID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": []string{"Category not found"}})
	default:
		handlers.RespondError(c, err, "check product category")
	}
	return false
}

func (h *Handler) PostProductInfo(c *gin.Context) {
	p, ok := bindProduct(c)
	if !ok || !h.requireCategory(c, p.CategoryID) {
		return
	}

	ctx := c.Request.Context()
	created, err := h.Store.CreateProduct(ctx, p)
	if err != nil {
		handlers.RespondError(c, err, "create product")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyProducts, cache.KeyCategoryProducts(created.CategoryID))
	h.Search.IndexProduct(created)

	c.Set(utils.CtxAuditResourceID, created.ID)
	c.JSON(http.StatusCreated, created)
}
