package product

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repository"
)

func setupRouter(t *testing.T) (*gin.Engine, *repository.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemory()
	h := New(handlers.Deps{Store: store})

	r := gin.New()
	r.GET("/Category/GetCategories", h.GetCategories)
	r.GET("/Category/GetCategoryById/:id", h.GetCategoryByID)
	r.GET("/Category/SearchCategory", h.SearchCategory)
	r.POST("/Category/PostCategory", h.PostCategory)
	r.PUT("/Category/PutCategory", h.PutCategory)
	r.DELETE("/Category/DeleteCategory/:id", h.DeleteCategory)
	r.GET("/ProductInfo/GetProductInfos", h.GetProductInfos)
	r.GET("/ProductInfo/GetProductDetailsById/:id", h.GetProductDetailsByID)
	r.GET("/ProductInfo/GetProductsByCategoryId/:categoryId", h.GetProductsByCategoryID)
	r.GET("/ProductInfo/SearchProductInfo", h.SearchProductInfo)
	r.POST("/ProductInfo/PostProductInfo", h.PostProductInfo)
	r.PUT("/ProductInfo/PutProductInfo", h.PutProductInfo)
	r.DELETE("/ProductInfo/DeleteProductInfo/:id", h.DeleteProductInfo)
	r.POST("/ProductInfo/UploadImage", h.UploadImage)
	return r, store
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func validProduct(categoryID string) models.ProductInfo {
	return models.ProductInfo{
		Name:          "Galaxy S24",
		Price:         1500000,
		Description:   "Phone",
		Quantity:      3,
		CategoryID:    categoryID,
		ProductImages: []models.ProductImage{{ImageURL: "http://img/1.png"}},
	}
}

func TestPostCategoryValidates(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/Category/PostCategory", models.Category{CategoryName: "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "validation failed", body.Error)
	assert.Contains(t, body.Details, "Category name is required")

	w = doJSON(r, http.MethodPost, "/Category/PostCategory", models.Category{CategoryName: " Phones ", Description: "d", Image: "i"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Category](t, w)
	assert.Equal(t, "Phones", created.CategoryName)
	assert.NotEmpty(t, created.ID)
}

func TestDeleteCategoryInUse(t *testing.T) {
	r, store := setupRouter(t)
	ctx := context.Background()
	cat, err := store.CreateCategory(ctx, models.Category{CategoryName: "Phones", Description: "d", Image: "i"})
	require.NoError(t, err)
	p, err := store.CreateProduct(ctx, validProduct(cat.ID))
	require.NoError(t, err)

	w := doJSON(r, http.MethodDelete, "/Category/DeleteCategory/"+cat.ID, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Cannot delete category: products still use it", decode[errorBody](t, w).Error)

	w = doJSON(r, http.MethodDelete, "/ProductInfo/DeleteProductInfo/"+p.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/Category/DeleteCategory/"+cat.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/Category/GetCategoryById/"+cat.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutCategoryNeedsID(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPut, "/Category/PutCategory", models.Category{CategoryName: "x", Description: "d", Image: "i"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/Category/PutCategory", models.Category{ID: "missing", CategoryName: "x", Description: "d", Image: "i"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchCategoryFallsBackToStore(t *testing.T) {
	r, store := setupRouter(t)
	for _, name := range []string{"Phones", "Laptops", "Headphones"} {
		_, err := store.CreateCategory(context.Background(), models.Category{CategoryName: name})
		require.NoError(t, err)
	}

	w := doJSON(r, http.MethodGet, "/Category/SearchCategory?categoryName=PHONE", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Category](t, w), 2)

	w = doJSON(r, http.MethodGet, "/Category/SearchCategory", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Category](t, w), 3)
}

func TestPostProductRules(t *testing.T) {
	r, store := setupRouter(t)
	cat, err := store.CreateCategory(context.Background(), models.Category{CategoryName: "Phones"})
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/ProductInfo/PostProductInfo", models.ProductInfo{Quantity: -1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{
		"Product name is required",
		"Price must be greater than 0",
		"Description is required",
		"Quantity cannot be negative",
		"Category is required",
		"At least one product image is required",
	}, decode[errorBody](t, w).Details)

	w = doJSON(r, http.MethodPost, "/ProductInfo/PostProductInfo", validProduct("missing"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Category not found"}, decode[errorBody](t, w).Details)

	w = doJSON(r, http.MethodPost, "/ProductInfo/PostProductInfo", validProduct(cat.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.ProductInfo](t, w)

	w = doJSON(r, http.MethodGet, "/ProductInfo/GetProductsByCategoryId/"+cat.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.ProductInfo](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	w = doJSON(r, http.MethodGet, "/ProductInfo/GetProductInfos?categoryId=other", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.ProductInfo](t, w))
}

func TestPutProductMovesCategory(t *testing.T) {
	r, store := setupRouter(t)
	ctx := context.Background()
	phones, _ := store.CreateCategory(ctx, models.Category{CategoryName: "Phones"})
	tablets, _ := store.CreateCategory(ctx, models.Category{CategoryName: "Tablets"})
	p, err := store.CreateProduct(ctx, validProduct(phones.ID))
	require.NoError(t, err)

	p.CategoryID = tablets.ID
	p.Price = 2000000
	w := doJSON(r, http.MethodPut, "/ProductInfo/PutProductInfo", p)
	require.Equal(t, http.StatusOK, w.Code)

	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, tablets.ID, got.CategoryID)
	assert.Equal(t, 2000000.0, got.Price)

	p.ID = "missing"
	w = doJSON(r, http.MethodPut, "/ProductInfo/PutProductInfo", p)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchProductMatchesNameOrID(t *testing.T) {
	r, store := setupRouter(t)
	ctx := context.Background()
	cat, _ := store.CreateCategory(ctx, models.Category{CategoryName: "Phones"})

	a := validProduct(cat.ID)
	a.ID = "abc-123"
	a.Name = "Pixel"
	_, err := store.CreateProduct(ctx, a)
	require.NoError(t, err)
	b := validProduct(cat.ID)
	b.Name = "iPhone"
	_, err = store.CreateProduct(ctx, b)
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/ProductInfo/SearchProductInfo?name=abc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[[]models.ProductInfo](t, w)
	require.Len(t, found, 1)
	assert.Equal(t, "Pixel", found[0].Name)

	w = doJSON(r, http.MethodGet, "/ProductInfo/SearchProductInfo?name=phone", nil)
	assert.Len(t, decode[[]models.ProductInfo](t, w), 1)
}

func TestUploadImage(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/ProductInfo/UploadImage", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "a.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/ProductInfo/UploadImage", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "image upload is not configured", decode[errorBody](t, rec).Error)
}
