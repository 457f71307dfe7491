package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repository"
	"shop_backoffice/internal/utils"
)

func setupRouter(t *testing.T) (*gin.Engine, *repository.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemory()
	h := New(handlers.Deps{Store: store})

	r := gin.New()
	r.GET("/UserInfo/GetUserInfos", h.GetUserInfos)
	r.GET("/UserInfo/GetUserInfoById/:id", h.GetUserInfoByID)
	r.GET("/UserInfo/SearchUserInfo", h.SearchUserInfo)
	r.POST("/UserInfo/PostUserInfo", h.PostUserInfo)
	r.PUT("/UserInfo/PutUserInfo", h.PutUserInfo)
	r.DELETE("/UserInfo/DeleteUserInfo/:id", h.DeleteUserInfo)
	r.GET("/CartInfo/GetCartInfos", h.GetCartInfos)
	r.GET("/CartInfo/GetAllTransactions", h.GetAllTransactions)
	r.GET("/CartInfo/GetCartInfoById/:id", h.GetCartInfoByID)
	r.GET("/CartInfo/GetCartSummary", h.GetCartSummary)
	r.POST("/CartInfo/PostCartInfo", h.PostCartInfo)
	r.PUT("/CartInfo/UpdateStatusCartInfo", h.UpdateStatusCartInfo)
	r.DELETE("/CartInfo/DeleteCartInfo/:id", h.DeleteCartInfo)
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

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func newUser(name string) models.UserInfo {
	return models.UserInfo{
		UserName:     name,
		UserPassword: "secret123",
		UserFullName: "Alice Doe",
		UserAddress:  "1 Main St",
		UserPhone:    "0900000000",
		UserEmail:    name + "@example.com",
	}
}

func TestPostUserHashesAndHidesPassword(t *testing.T) {
	r, store := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/UserInfo/PostUserInfo", newUser("alice"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "userPassword")
	created := decode[models.UserInfo](t, w)

	stored, err := store.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, utils.IsArgon2Hash(stored.UserPassword))
	ok, err := utils.VerifyPassword("secret123", stored.UserPassword)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, path := range []string{"/UserInfo/GetUserInfos", "/UserInfo/GetUserInfoById/" + created.ID, "/UserInfo/SearchUserInfo?userName=ali"} {
		w = doJSON(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.NotContains(t, w.Body.String(), "argon2", path)
	}
}

func TestPostUserRejectsDuplicatesAndInvalid(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/UserInfo/PostUserInfo", newUser("alice"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/UserInfo/PostUserInfo", newUser("ALICE"))
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists")

	bad := newUser("bob")
	bad.UserPassword = ""
	bad.UserEmail = "nope"
	w = doJSON(r, http.MethodPost, "/UserInfo/PostUserInfo", bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	details := decode[struct {
		Details []string `json:"details"`
	}](t, w).Details
	assert.ElementsMatch(t, []string{"Password is required", "Email address is invalid"}, details)
}

func TestPutUserBlankPasswordKeepsHash(t *testing.T) {
	r, store := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/UserInfo/PostUserInfo", newUser("alice"))
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.UserInfo](t, w)
	before, _ := store.GetUser(context.Background(), created.ID)

	edit := newUser("alice")
	edit.ID = created.ID
	edit.UserPassword = ""
	edit.UserFullName = "Alice Smith"
	w = doJSON(r, http.MethodPut, "/UserInfo/PutUserInfo", edit)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice Smith", decode[models.UserInfo](t, w).UserFullName)

	after, _ := store.GetUser(context.Background(), created.ID)
	assert.Equal(t, before.UserPassword, after.UserPassword)

	w = doJSON(r, http.MethodDelete, "/UserInfo/DeleteUserInfo/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodDelete, "/UserInfo/DeleteUserInfo/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func newCart() models.CartInfo {
	return models.CartInfo{
		UserName: "alice",
		CartDetails: []models.CartDetailInfo{
			{ProductName: "Pixel", Price: 10000, Quantity: 2},
			{ProductName: "Case", Price: 5000, Quantity: 1},
		},
	}
}

func TestPostCartDefaults(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/CartInfo/PostCartInfo", newCart())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.CartInfo](t, w)

	assert.Equal(t, models.StatusNewOrder, created.Status)
	assert.Equal(t, 25000.0, created.TotalPrice)
	_, err := created.OrderedAt()
	assert.NoError(t, err)

	bad := newCart()
	bad.Status = "Lost"
	w = doJSON(r, http.MethodPost, "/CartInfo/PostCartInfo", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/CartInfo/PostCartInfo", models.CartInfo{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusOnlyMovesForward(t *testing.T) {
	r, store := setupRouter(t)
	cart, err := store.CreateCart(context.Background(), models.CartInfo{UserName: "alice", Status: models.StatusNewOrder})
	require.NoError(t, err)

	update := func(status string) *httptest.ResponseRecorder {
		return doJSON(r, http.MethodPut, "/CartInfo/UpdateStatusCartInfo", models.StatusUpdate{ID: cart.ID, Status: status})
	}

	w := update(models.StatusDelivery)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusDelivery, decode[models.CartInfo](t, w).Status)

	assert.Equal(t, http.StatusOK, update(models.StatusDelivery).Code)
	assert.Equal(t, http.StatusBadRequest, update(models.StatusNewOrder).Code)
	assert.Equal(t, http.StatusBadRequest, update("Shipped").Code)
	assert.Equal(t, http.StatusOK, update(models.StatusCompleted).Code)

	w = doJSON(r, http.MethodPut, "/CartInfo/UpdateStatusCartInfo", models.StatusUpdate{ID: "missing", Status: models.StatusDelivery})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionsAndSummary(t *testing.T) {
	r, store := setupRouter(t)
	ctx := context.Background()
	for _, c := range []models.CartInfo{
		{UserName: "a", Status: models.StatusNewOrder, DateOrder: "01/02/2024 10:00"},
		{UserName: "b", Status: models.StatusDelivery, DateOrder: "05/02/2024 10:00"},
		{UserName: "c", Status: models.StatusCompleted, DateOrder: "garbage"},
		{UserName: "d", Status: models.StatusNewOrder, DateOrder: "03/02/2024 10:00"},
	} {
		_, err := store.CreateCart(ctx, c)
		require.NoError(t, err)
	}

	w := doJSON(r, http.MethodGet, "/CartInfo/GetAllTransactions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	carts := decode[[]models.CartInfo](t, w)
	require.Len(t, carts, 4)
	assert.Equal(t, []string{"b", "d", "a", "c"}, []string{carts[0].UserName, carts[1].UserName, carts[2].UserName, carts[3].UserName})

	w = doJSON(r, http.MethodGet, "/CartInfo/GetCartSummary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[models.CartSummary](t, w)
	assert.Equal(t, 2, summary.NewOrders)
	assert.Equal(t, 1, summary.Delivery)
	assert.Equal(t, 1, summary.Completed)
}
