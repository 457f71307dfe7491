package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"

	"shop_backoffice/internal/models"
)

const categoryColumns = `category_id, category_name, description, image, created_at, updated_at`

const productColumns = `product_id, name, price, description, quantity, category_id, image_urls,
	cpu_type, ram_type, rom_type, screen_size, battery_capacity, details_type, connect_type,
	created_at, updated_at`

const (
	cqlInsertCategory = `INSERT INTO categories (` + categoryColumns + `) VALUES (?, ?, ?, ?, ?, ?) IF NOT EXISTS`
	cqlInsertProduct  = `INSERT INTO products (` + productColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) IF NOT EXISTS`
	cqlWriteProduct   = `INSERT INTO products (` + productColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

type categoryRow struct {
	id gocql.UUID
	c  models.Category
}

func (r *categoryRow) dest() []interface{} {
	return []interface{}{&r.id, &r.c.CategoryName, &r.c.Description, &r.c.Image, &r.c.CreatedAt, &r.c.UpdatedAt}
}

func (r *categoryRow) category() models.Category {
	c := r.c
	c.ID = r.id.String()
	return c
}

type productRow struct {
	id, categoryID gocql.UUID
	imageURLs      []string
	p              models.ProductInfo
}

func (r *productRow) dest() []interface{} {
	return []interface{}{
		&r.id, &r.p.Name, &r.p.Price, &r.p.Description, &r.p.Quantity, &r.categoryID, &r.imageURLs,
		&r.p.CpuType, &r.p.RamType, &r.p.RomType, &r.p.ScreenSize, &r.p.BatteryCapacity,
		&r.p.DetailsType, &r.p.ConnectType, &r.p.CreatedAt, &r.p.UpdatedAt,
	}
}

func (r *productRow) product() models.ProductInfo {
	p := r.p
	p.ID = r.id.String()
	p.CategoryID = r.categoryID.String()
	p.ProductImages = models.ImagesFromURLs(r.imageURLs)
	return p
}

// --- categories ---

func (s *Scylla) ListCategories(ctx context.Context) ([]models.Category, error) {
	iter := s.catalog.Query(`SELECT ` + categoryColumns + ` FROM categories`).WithContext(ctx).Iter()

	categories := make([]models.Category, 0)
	var row categoryRow
	for iter.Scan(row.dest()...) {
		categories = append(categories, row.category())
		row = categoryRow{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *Scylla) GetCategory(ctx context.Context, id string) (models.Category, error) {
	uid, err := parseID("category", id)
	if err != nil {
		return models.Category{}, err
	}
	var row categoryRow
	if err := s.catalog.Query(`SELECT `+categoryColumns+` FROM categories WHERE category_id = ?`, uid).
		WithContext(ctx).Scan(row.dest()...); err != nil {
		return models.Category{}, wrapRead(err, "category", id)
	}
	return row.category(), nil
}

func (s *Scylla) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	uid := newRowID(c.ID)
	now := time.Now()
	c.ID, c.CreatedAt, c.UpdatedAt = uid.String(), now, now

	q := s.catalog.Query(cqlInsertCategory,
		uid, c.CategoryName, c.Description, c.Image, c.CreatedAt, c.UpdatedAt).WithContext(ctx)
	if err := insertIfAbsent(q, "category", c.ID); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (s *Scylla) UpdateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	old, err := s.GetCategory(ctx, c.ID)
	if err != nil {
		return models.Category{}, err
	}
	uid, _ := gocql.ParseUUID(old.ID)
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = time.Now()

	if err := s.catalog.Query(`UPDATE categories SET category_name = ?, description = ?, image = ?, updated_at = ? WHERE category_id = ?`,
		c.CategoryName, c.Description, c.Image, c.UpdatedAt, uid).WithContext(ctx).Exec(); err != nil {
		return models.Category{}, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

func (s *Scylla) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	uid, _ := gocql.ParseUUID(id)

	var productID gocql.UUID
	err := s.catalog.Query(`SELECT product_id FROM products_by_category WHERE category_id = ? LIMIT 1`, uid).
		WithContext(ctx).Scan(&productID)
	switch {
	case err == nil:
		return fmt.Errorf("category %s still has products: %w", id, ErrConflict)
	case err != gocql.ErrNotFound:
		return fmt.Errorf("check category products: %w", err)
	}

	if err := s.catalog.Query(`DELETE FROM categories WHERE category_id = ?`, uid).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// --- products ---

func (s *Scylla) ListProducts(ctx context.Context) ([]models.ProductInfo, error) {
	iter := s.catalog.Query(`SELECT ` + productColumns + ` FROM products`).WithContext(ctx).Iter()
	return scanProducts(iter)
}

func scanProducts(iter *gocql.Iter) ([]models.ProductInfo, error) {
	products := make([]models.ProductInfo, 0)
	var row productRow
	for iter.Scan(row.dest()...) {
		products = append(products, row.product())
		row = productRow{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Scylla) ListProductsByCategory(ctx context.Context, categoryID string) ([]models.ProductInfo, error) {
	cid, err := gocql.ParseUUID(categoryID)
	if err != nil {
		return []models.ProductInfo{}, nil
	}

	iter := s.catalog.Query(`SELECT product_id FROM products_by_category WHERE category_id = ?`, cid).WithContext(ctx).Iter()
	var ids []gocql.UUID
	var pid gocql.UUID
	for iter.Scan(&pid) {
		ids = append(ids, pid)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("list products of category %s: %w", categoryID, err)
	}
	if len(ids) == 0 {
		return []models.ProductInfo{}, nil
	}

	return scanProducts(s.catalog.Query(`SELECT `+productColumns+` FROM products WHERE product_id IN ?`, ids).
		WithContext(ctx).Iter())
}

func (s *Scylla) GetProduct(ctx context.Context, id string) (models.ProductInfo, error) {
	uid, err := parseID("product", id)
	if err != nil {
		return models.ProductInfo{}, err
	}
	var row productRow
	if err := s.catalog.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, uid).
		WithContext(ctx).Scan(row.dest()...); err != nil {
		return models.ProductInfo{}, wrapRead(err, "product", id)
	}
	return row.product(), nil
}

func (s *Scylla) productQuery(ctx context.Context, stmt string, uid, cid gocql.UUID, p models.ProductInfo) *gocql.Query {
	return s.catalog.Query(stmt,
		uid, p.Name, p.Price, p.Description, p.Quantity, cid, p.ImageURLs(),
		p.CpuType, p.RamType, p.RomType, p.ScreenSize, p.BatteryCapacity, p.DetailsType, p.ConnectType,
		p.CreatedAt, p.UpdatedAt).WithContext(ctx)
}

func (s *Scylla) CreateProduct(ctx context.Context, p models.ProductInfo) (models.ProductInfo, error) {
	if _, err := s.GetCategory(ctx, p.CategoryID); err != nil {
		return models.ProductInfo{}, err
	}
	cid, _ := gocql.ParseUUID(p.CategoryID)
	uid := newRowID(p.ID)
	now := time.Now()
	p.ID, p.CreatedAt, p.UpdatedAt = uid.String(), now, now

	if err := insertIfAbsent(s.productQuery(ctx, cqlInsertProduct, uid, cid, p), "product", p.ID); err != nil {
		return models.ProductInfo{}, err
	}
	if err := s.catalog.Query(`INSERT INTO products_by_category (category_id, product_id) VALUES (?, ?)`, cid, uid).
		WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ products_by_category index failed for %s: %v", p.ID, err)
	}
	return p, nil
}

func (s *Scylla) UpdateProduct(ctx context.Context, p models.ProductInfo) (models.ProductInfo, error) {
	old, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		return models.ProductInfo{}, err
	}
	if _, err := s.GetCategory(ctx, p.CategoryID); err != nil {
		return models.ProductInfo{}, err
	}
	uid, _ := gocql.ParseUUID(old.ID)
	cid, _ := gocql.ParseUUID(p.CategoryID)
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = time.Now()

	if err := s.productQuery(ctx, cqlWriteProduct, uid, cid, p).Exec(); err != nil {
		return models.ProductInfo{}, fmt.Errorf("update product: %w", err)
	}

	if old.CategoryID != p.CategoryID {
		oldCid, _ := gocql.ParseUUID(old.CategoryID)
		batch := s.catalog.NewBatch(gocql.LoggedBatch).WithContext(ctx)
		batch.Query(`DELETE FROM products_by_category WHERE category_id = ? AND product_id = ?`, oldCid, uid)
		batch.Query(`INSERT INTO products_by_category (category_id, product_id) VALUES (?, ?)`, cid, uid)
		if err := s.catalog.ExecuteBatch(batch); err != nil {
			log.Printf("⚠️ products_by_category move failed for %s: %v", p.ID, err)
		}
	}
	return p, nil
}

func (s *Scylla) DeleteProduct(ctx context.Context, id string) error {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	uid, _ := gocql.ParseUUID(p.ID)
	cid, _ := gocql.ParseUUID(p.CategoryID)

	batch := s.catalog.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(`DELETE FROM products WHERE product_id = ?`, uid)
	batch.Query(`DELETE FROM products_by_category WHERE category_id = ? AND product_id = ?`, cid, uid)
	if err := s.catalog.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
