// Package repository persists the back-office entities. The scylla
// implementation is used in production; the memory one backs local runs and tests.
package repository

import (
	"context"
	"errors"

	"shop_backoffice/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write would break a relationship or uniqueness rule.
	ErrConflict = errors.New("conflict")
)

type Categories interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (models.Category, error)
	CreateCategory(ctx context.Context, c models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, c models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type Products interface {
	ListProducts(ctx context.Context) ([]models.ProductInfo, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]models.ProductInfo, error)
	GetProduct(ctx context.Context, id string) (models.ProductInfo, error)
	CreateProduct(ctx context.Context, p models.ProductInfo) (models.ProductInfo, error)
	UpdateProduct(ctx context.Context, p models.ProductInfo) (models.ProductInfo, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Users stores accounts. UserPassword on stored records holds the hash.
type Users interface {
	ListUsers(ctx context.Context) ([]models.UserInfo, error)
	GetUser(ctx context.Context, id string) (models.UserInfo, error)
	GetUserByName(ctx context.Context, userName string) (models.UserInfo, error)
	CreateUser(ctx context.Context, u models.UserInfo) (models.UserInfo, error)
	UpdateUser(ctx context.Context, u models.UserInfo) (models.UserInfo, error)
	DeleteUser(ctx context.Context, id string) error
}

type Carts interface {
	ListCarts(ctx context.Context) ([]models.CartInfo, error)
	GetCart(ctx context.Context, id string) (models.CartInfo, error)
	CreateCart(ctx context.Context, c models.CartInfo) (models.CartInfo, error)
	UpdateCartStatus(ctx context.Context, id, status string) (models.CartInfo, error)
	DeleteCart(ctx context.Context, id string) error
}

type AuditLogs interface {
	RecordAudit(ctx context.Context, entry models.AuditLog) error
	ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
}

// Store groups every repository the API needs.
type Store interface {
	Categories
	Products
	Users
	Carts
	AuditLogs
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Scylla)(nil)
)
