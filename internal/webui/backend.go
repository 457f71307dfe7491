package webui

import (
	"context"
	"io"

	"shop_backoffice/internal/apiclient"
	"shop_backoffice/internal/models"
)

// Backend is the part of the REST API the console pages call.
type Backend interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (models.Category, error)
	SearchCategories(ctx context.Context, name string) ([]models.Category, error)
	CreateCategory(ctx context.Context, c models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, c models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	GetProducts(ctx context.Context) ([]models.ProductInfo, error)
	GetProduct(ctx context.Context, id string) (models.ProductInfo, error)
	GetProductsByCategory(ctx context.Context, categoryID string) ([]models.ProductInfo, error)
	CreateProduct(ctx context.Context, p models.ProductInfo) (models.ProductInfo, error)
	UpdateProduct(ctx context.Context, p models.ProductInfo) (models.ProductInfo, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (apiclient.UploadedImage, error)

	GetUsers(ctx context.Context) ([]models.UserInfo, error)
	GetUser(ctx context.Context, id string) (models.UserInfo, error)
	SearchUsers(ctx context.Context, userName string) ([]models.UserInfo, error)
	CreateUser(ctx context.Context, u models.UserInfo) (models.UserInfo, error)
	UpdateUser(ctx context.Context, u models.UserInfo) (models.UserInfo, error)
	DeleteUser(ctx context.Context, id string) error

	GetTransactions(ctx context.Context) ([]models.CartInfo, error)
	GetCart(ctx context.Context, id string) (models.CartInfo, error)
	UpdateCartStatus(ctx context.Context, id, status string) (models.CartInfo, error)
	DeleteCart(ctx context.Context, id string) error
}

var _ Backend = (*apiclient.Client)(nil)
