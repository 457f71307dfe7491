package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backoffice/internal/models"
)

func seededMemory(t *testing.T) (*Memory, models.Category) {
	t.Helper()
	m := NewMemory()
	cat, err := m.CreateCategory(context.Background(), models.Category{CategoryName: "Phones", Description: "d", Image: "i"})
	require.NoError(t, err)
	return m, cat
}

func TestMemoryCategoryDeleteBlockedByProducts(t *testing.T) {
	m, cat := seededMemory(t)
	ctx := context.Background()

	p, err := m.CreateProduct(ctx, models.ProductInfo{Name: "P1", CategoryID: cat.ID, Price: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, m.DeleteCategory(ctx, cat.ID), ErrConflict)

	require.NoError(t, m.DeleteProduct(ctx, p.ID))
	require.NoError(t, m.DeleteCategory(ctx, cat.ID))

	_, err = m.GetCategory(ctx, cat.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProductNeedsExistingCategory(t *testing.T) {
	m, cat := seededMemory(t)
	ctx := context.Background()

	_, err := m.CreateProduct(ctx, models.ProductInfo{Name: "P", CategoryID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := m.CreateProduct(ctx, models.ProductInfo{Name: "P", CategoryID: cat.ID})
	require.NoError(t, err)

	p.CategoryID = "missing"
	_, err = m.UpdateProduct(ctx, p)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryListsKeepInsertionOrder(t *testing.T) {
	m, cat := seededMemory(t)
	ctx := context.Background()

	for _, name := range []string{"c", "a", "b"} {
		_, err := m.CreateProduct(ctx, models.ProductInfo{Name: name, CategoryID: cat.ID})
		require.NoError(t, err)
	}

	all, err := m.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].Name, all[1].Name, all[2].Name})

	byCat, err := m.ListProductsByCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Len(t, byCat, 3)

	empty, err := m.ListProductsByCategory(ctx, "other")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryUpdateKeepsCreatedAt(t *testing.T) {
	m := NewMemory()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return created }

	cat, err := m.CreateCategory(context.Background(), models.Category{CategoryName: "A"})
	require.NoError(t, err)

	m.now = func() time.Time { return created.Add(time.Hour) }
	cat.CategoryName = "B"
	updated, err := m.UpdateCategory(context.Background(), cat)
	require.NoError(t, err)

	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), updated.UpdatedAt)
}

func TestMemoryUserNamesAreUnique(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	alice, err := m.CreateUser(ctx, models.UserInfo{UserName: "alice", UserPassword: "hash"})
	require.NoError(t, err)

	_, err = m.CreateUser(ctx, models.UserInfo{UserName: "ALICE"})
	assert.ErrorIs(t, err, ErrConflict)

	bob, err := m.CreateUser(ctx, models.UserInfo{UserName: "bob"})
	require.NoError(t, err)

	bob.UserName = "Alice"
	_, err = m.UpdateUser(ctx, bob)
	assert.ErrorIs(t, err, ErrConflict)

	found, err := m.GetUserByName(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)
}

func TestMemoryBlankPasswordKeepsHash(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	u, err := m.CreateUser(ctx, models.UserInfo{UserName: "alice", UserPassword: "hash"})
	require.NoError(t, err)

	u.UserPassword = ""
	u.UserFullName = "Alice Doe"
	updated, err := m.UpdateUser(ctx, u)
	require.NoError(t, err)

	assert.Equal(t, "hash", updated.UserPassword)
	assert.Equal(t, "Alice Doe", updated.UserFullName)
}

func TestMemoryCartStatus(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	c, err := m.CreateCart(ctx, models.CartInfo{UserName: "alice", Status: models.StatusNewOrder})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)

	updated, err := m.UpdateCartStatus(ctx, c.ID, models.StatusDelivery)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivery, updated.Status)

	_, err = m.UpdateCartStatus(ctx, "missing", models.StatusDelivery)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.CreateCart(ctx, models.CartInfo{ID: c.ID})
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, m.DeleteCart(ctx, c.ID))
	assert.ErrorIs(t, m.DeleteCart(ctx, c.ID), ErrNotFound)
}

func TestMemoryAuditNewestFirst(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	entries := []models.AuditLog{
		{Action: "create", Resource: "product", Timestamp: base},
		{Action: "delete", Resource: "product", Timestamp: base.Add(2 * time.Minute)},
		{Action: "create", Resource: "user", Timestamp: base.Add(time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, m.RecordAudit(ctx, e))
	}

	all, err := m.ListAudit(ctx, models.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "delete", all[0].Action)
	assert.Equal(t, "user", all[1].Resource)

	products, err := m.ListAudit(ctx, models.AuditFilter{Resource: "product", Limit: 1})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "delete", products[0].Action)

	creates, err := m.ListAudit(ctx, models.AuditFilter{Action: "create"})
	require.NoError(t, err)
	assert.Len(t, creates, 2)
}
