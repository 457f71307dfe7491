package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shop_backoffice/internal/models"
)

// Memory keeps everything in process. Listing order is insertion order.
type Memory struct {
	mu sync.RWMutex

	categories  map[string]models.Category
	categoryIDs []string
	products    map[string]models.ProductInfo
	productIDs  []string
	users       map[string]models.UserInfo
	userIDs     []string
	carts       map[string]models.CartInfo
	cartIDs     []string
	audit       []models.AuditLog
	now         func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		categories: make(map[string]models.Category),
		products:   make(map[string]models.ProductInfo),
		users:      make(map[string]models.UserInfo),
		carts:      make(map[string]models.CartInfo),
		now:        time.Now,
	}
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// --- categories ---

func (m *Memory) ListCategories(_ context.Context) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Category, 0, len(m.categoryIDs))
	for _, id := range m.categoryIDs {
		out = append(out, m.categories[id])
	}
	return out, nil
}

func (m *Memory) GetCategory(_ context.Context, id string) (models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.categories[id]
	if !ok {
		return models.Category{}, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (m *Memory) CreateCategory(_ context.Context, c models.Category) (models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = newID(c.ID)
	if _, exists := m.categories[c.ID]; exists {
		return models.Category{}, fmt.Errorf("category %s: %w", c.ID, ErrConflict)
	}
	now := m.now()
	c.CreatedAt, c.UpdatedAt = now, now
	m.categories[c.ID] = c
	m.categoryIDs = append(m.categoryIDs, c.ID)
	return c, nil
}

func (m *Memory) UpdateCategory(_ context.Context, c models.Category) (models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.categories[c.ID]
	if !ok {
		return models.Category{}, fmt.Errorf("category %s: %w", c.ID, ErrNotFound)
	}
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = m.now()
	m.categories[c.ID] = c
	return c, nil
}

func (m *Memory) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	for _, p := range m.products {
		if p.CategoryID == id {
			return fmt.Errorf("category %s still has products: %w", id, ErrConflict)
		}
	}
	delete(m.categories, id)
	m.categoryIDs = removeID(m.categoryIDs, id)
	return nil
}

// --- products ---

func (m *Memory) ListProducts(_ context.Context) ([]models.ProductInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.ProductInfo, 0, len(m.productIDs))
	for _, id := range m.productIDs {
		out = append(out, m.products[id])
	}
	return out, nil
}

func (m *Memory) ListProductsByCategory(ctx context.Context, categoryID string) ([]models.ProductInfo, error) {
	all, _ := m.ListProducts(ctx)
	out := make([]models.ProductInfo, 0)
	for _, p := range all {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) GetProduct(_ context.Context, id string) (models.ProductInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return models.ProductInfo{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (m *Memory) CreateProduct(_ context.Context, p models.ProductInfo) (models.ProductInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[p.CategoryID]; !ok {
		return models.ProductInfo{}, fmt.Errorf("category %s: %w", p.CategoryID, ErrNotFound)
	}
	p.ID = newID(p.ID)
	if _, exists := m.products[p.ID]; exists {
		return models.ProductInfo{}, fmt.Errorf("product %s: %w", p.ID, ErrConflict)
	}
	now := m.now()
	p.CreatedAt, p.UpdatedAt = now, now
	m.products[p.ID] = p
	m.productIDs = append(m.productIDs, p.ID)
	return p, nil
}

func (m *Memory) UpdateProduct(_ context.Context, p models.ProductInfo) (models.ProductInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.products[p.ID]
	if !ok {
		return models.ProductInfo{}, fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
	}
	if _, ok := m.categories[p.CategoryID]; !ok {
		return models.ProductInfo{}, fmt.Errorf("category %s: %w", p.CategoryID, ErrNotFound)
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = m.now()
	m.products[p.ID] = p
	return p, nil
}

func (m *Memory) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	delete(m.products, id)
	m.productIDs = removeID(m.productIDs, id)
	return nil
}

// --- users ---

func (m *Memory) ListUsers(_ context.Context) ([]models.UserInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.UserInfo, 0, len(m.userIDs))
	for _, id := range m.userIDs {
		out = append(out, m.users[id])
	}
	return out, nil
}

func (m *Memory) GetUser(_ context.Context, id string) (models.UserInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return models.UserInfo{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, nil
}

func (m *Memory) GetUserByName(_ context.Context, userName string) (models.UserInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.UserName, userName) {
			return u, nil
		}
	}
	return models.UserInfo{}, fmt.Errorf("user %q: %w", userName, ErrNotFound)
}

func (m *Memory) userNameTaken(userName, exceptID string) bool {
	for id, u := range m.users {
		if id != exceptID && strings.EqualFold(u.UserName, userName) {
			return true
		}
	}
	return false
}

func (m *Memory) CreateUser(_ context.Context, u models.UserInfo) (models.UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.ID = newID(u.ID)
	if _, ok := m.users[u.ID]; ok {
		return models.UserInfo{}, fmt.Errorf("user %s: %w", u.ID, ErrConflict)
	}
	if m.userNameTaken(u.UserName, "") {
		return models.UserInfo{}, fmt.Errorf("username %q: %w", u.UserName, ErrConflict)
	}
	u.CreatedAt = m.now()
	m.users[u.ID] = u
	m.userIDs = append(m.userIDs, u.ID)
	return u, nil
}

func (m *Memory) UpdateUser(_ context.Context, u models.UserInfo) (models.UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.users[u.ID]
	if !ok {
		return models.UserInfo{}, fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
	}
	if m.userNameTaken(u.UserName, u.ID) {
		return models.UserInfo{}, fmt.Errorf("username %q: %w", u.UserName, ErrConflict)
	}
	if u.UserPassword == "" {
		u.UserPassword = old.UserPassword
	}
	u.CreatedAt = old.CreatedAt
	m.users[u.ID] = u
	return u, nil
}

func (m *Memory) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	delete(m.users, id)
	m.userIDs = removeID(m.userIDs, id)
	return nil
}

// --- carts ---

func (m *Memory) ListCarts(_ context.Context) ([]models.CartInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.CartInfo, 0, len(m.cartIDs))
	for _, id := range m.cartIDs {
		out = append(out, m.carts[id])
	}
	return out, nil
}

func (m *Memory) GetCart(_ context.Context, id string) (models.CartInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.carts[id]
	if !ok {
		return models.CartInfo{}, fmt.Errorf("cart %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (m *Memory) CreateCart(_ context.Context, c models.CartInfo) (models.CartInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = newID(c.ID)
	if _, exists := m.carts[c.ID]; exists {
		return models.CartInfo{}, fmt.Errorf("cart %s: %w", c.ID, ErrConflict)
	}
	m.carts[c.ID] = c
	m.cartIDs = append(m.cartIDs, c.ID)
	return c, nil
}

func (m *Memory) UpdateCartStatus(_ context.Context, id, status string) (models.CartInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[id]
	if !ok {
		return models.CartInfo{}, fmt.Errorf("cart %s: %w", id, ErrNotFound)
	}
	c.Status = status
	m.carts[id] = c
	return c, nil
}

func (m *Memory) DeleteCart(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.carts[id]; !ok {
		return fmt.Errorf("cart %s: %w", id, ErrNotFound)
	}
	delete(m.carts, id)
	m.cartIDs = removeID(m.cartIDs, id)
	return nil
}

// --- audit ---

func (m *Memory) RecordAudit(_ context.Context, entry models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = newID(entry.ID)
	if entry.Timestamp.IsZero() {
		entry.Timestamp = m.now()
	}
	m.audit = append(m.audit, entry)
	return nil
}

// ListAudit returns matching entries newest first.
func (m *Memory) ListAudit(_ context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.AuditLog, 0)
	for _, e := range m.audit {
		if filter.Resource != "" && e.Resource != filter.Resource {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
