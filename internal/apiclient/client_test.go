package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backoffice/internal/apiclient"
	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repository"
	"shop_backoffice/internal/routes"
)

const testSecret = "test-service-secret"

func newAPI(t *testing.T) (*apiclient.Client, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemory()
	r := gin.New()
	routes.RegisterRoutes(r, handlers.Deps{Store: store}, routes.Options{ServiceJWTSecret: testSecret})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := apiclient.New(srv.URL+"/",
		apiclient.WithHTTPClient(srv.Client()),
		apiclient.WithServiceToken(testSecret),
	)
	return client, srv
}

func laptops() models.Category {
	return models.Category{CategoryName: "Laptops", Description: "Notebooks", Image: "https://img/laptops.png"}
}

func product(categoryID, name string) models.ProductInfo {
	return models.ProductInfo{
		Name:          name,
		Price:         1500000,
		Description:   "test product",
		Quantity:      3,
		CategoryID:    categoryID,
		ProductImages: []models.ProductImage{{ImageURL: "https://img/p.png"}},
	}
}

func TestEndpointsUseBaseURL(t *testing.T) {
	eps := apiclient.Endpoints("http://api.local")
	assert.Equal(t, "http://api.local/CartInfo/UpdateStatusCartInfo", eps[apiclient.UpdateCartStatus])
	assert.Equal(t, "http://api.local/ProductInfo/GetProductsByCategoryId", eps[apiclient.GetProductsByCat])

	c := apiclient.New("http://api.local/")
	assert.Equal(t, "http://api.local/Category/DeleteCategory/a%2Fb", c.URL(apiclient.DeleteCategory, "a/b"))
}

func TestCategoryLifecycle(t *testing.T) {
	client, _ := newAPI(t)
	ctx := context.Background()

	created, err := client.CreateCategory(ctx, laptops())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	created.Description = "Ultrabooks"
	updated, err := client.UpdateCategory(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Ultrabooks", updated.Description)

	found, err := client.SearchCategories(ctx, "lap")
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, err = client.CreateProduct(ctx, product(created.ID, "X1"))
	require.NoError(t, err)

	err = client.DeleteCategory(ctx, created.ID)
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Cannot delete category: products still use it", apiErr.Message)
}

func TestValidationErrorCarriesDetails(t *testing.T) {
	client, _ := newAPI(t)

	_, err := client.CreateCategory(context.Background(), models.Category{CategoryName: "Only a name"})

	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "validation failed", apiErr.Message)
	assert.Equal(t, []string{"Description is required", "Category image is required"}, apiErr.Details)
}

func TestProductsByCategoryAndSearch(t *testing.T) {
	client, _ := newAPI(t)
	ctx := context.Background()

	cat, err := client.CreateCategory(ctx, laptops())
	require.NoError(t, err)
	p, err := client.CreateProduct(ctx, product(cat.ID, "ThinkPad"))
	require.NoError(t, err)
	_, err = client.CreateProduct(ctx, product(cat.ID, "MacBook"))
	require.NoError(t, err)

	byCat, err := client.GetProductsByCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Len(t, byCat, 2)

	found, err := client.SearchProducts(ctx, "think")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, p.ID, found[0].ID)

	require.NoError(t, client.DeleteProduct(ctx, p.ID))
	_, err = client.GetProduct(ctx, p.ID)
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestUsersNeverExposePasswords(t *testing.T) {
	client, _ := newAPI(t)
	ctx := context.Background()

	u, err := client.CreateUser(ctx, models.UserInfo{
		UserName: "nguyenvana", UserPassword: "secret123", UserFullName: "Nguyen Van A",
		UserAddress: "12 Le Loi", UserPhone: "0901234567",
	})
	require.NoError(t, err)
	assert.Empty(t, u.UserPassword)

	u.UserFullName = "Nguyen Van B"
	u.UserPassword = ""
	updated, err := client.UpdateUser(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, "Nguyen Van B", updated.UserFullName)

	all, err := client.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].UserPassword)
}

func TestOrderStatusConfirm(t *testing.T) {
	client, _ := newAPI(t)
	ctx := context.Background()

	cart, err := client.CreateCart(ctx, models.CartInfo{
		UserName:    "nguyenvana",
		CartDetails: []models.CartDetailInfo{{ProductName: "X1", Price: 100, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusNewOrder, cart.Status)
	assert.Equal(t, 200.0, cart.TotalPrice)

	updated, err := client.UpdateCartStatus(ctx, cart.ID, models.StatusDelivery)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivery, updated.Status)

	summary, err := client.GetCartSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.CartSummary{Delivery: 1}, summary)

	_, err = client.UpdateCartStatus(ctx, cart.ID, models.StatusNewOrder)
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	require.NoError(t, client.DeleteCart(ctx, cart.ID))
	carts, err := client.GetTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, carts)
}

func TestMutationsWithoutTokenAreRejected(t *testing.T) {
	_, srv := newAPI(t)
	anonymous := apiclient.New(srv.URL, apiclient.WithHTTPClient(srv.Client()))

	_, err := anonymous.CreateCategory(context.Background(), laptops())

	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = anonymous.GetCategories(context.Background())
	assert.NoError(t, err)
}

func TestUploadImageWithoutStorage(t *testing.T) {
	client, _ := newAPI(t)

	_, err := client.UploadImage(context.Background(), "p.png", "image/png", strings.NewReader("png-bytes"))

	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "image upload is not configured", apiErr.Message)
}

func TestNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL).GetCategories(context.Background())

	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Message)
}
