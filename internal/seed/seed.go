// Package seed loads YAML fixtures into a store so a fresh API has data to show.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repository"
	"shop_backoffice/internal/utils"
)

// Fixtures mirrors the seed file. User passwords are plain text and hashed on load.
type Fixtures struct {
	Categories []models.Category    `yaml:"categories"`
	Products   []models.ProductInfo `yaml:"products"`
	Users      []models.UserInfo    `yaml:"users"`
	Carts      []models.CartInfo    `yaml:"carts"`
}

// Counts reports how many records Apply inserted per kind.
type Counts struct {
	Categories, Products, Users, Carts int
}

func Load(path string) (Fixtures, error) {
	var f Fixtures
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read seed file: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return f, nil
}

// Apply inserts fixtures in dependency order. Records that already exist are
// skipped, so running it twice is harmless.
func Apply(ctx context.Context, store repository.Store, f Fixtures) (Counts, error) {
	var n Counts

	for _, c := range f.Categories {
		c.Normalize()
		if err := c.Validate(); err != nil {
			return n, fmt.Errorf("category %q: %w", c.CategoryName, err)
		}
		ok, err := skipExisting(store.CreateCategory(ctx, c))
		if err != nil {
			return n, fmt.Errorf("category %q: %w", c.CategoryName, err)
		}
		if ok {
			n.Categories++
		}
	}

	for _, p := range f.Products {
		p.Normalize()
		if err := p.Validate(); err != nil {
			return n, fmt.Errorf("product %q: %w", p.Name, err)
		}
		ok, err := skipExisting(store.CreateProduct(ctx, p))
		if err != nil {
			return n, fmt.Errorf("product %q: %w", p.Name, err)
		}
		if ok {
			n.Products++
		}
	}

	for _, u := range f.Users {
		u.Normalize()
		if err := u.Validate(); err != nil {
			return n, fmt.Errorf("user %q: %w", u.UserName, err)
		}
		hash, err := utils.HashPassword(u.UserPassword)
		if err != nil {
			return n, err
		}
		u.UserPassword = hash
		ok, err := skipExisting(store.CreateUser(ctx, u))
		if err != nil {
			return n, fmt.Errorf("user %q: %w", u.UserName, err)
		}
		if ok {
			n.Users++
		}
	}

	for _, c := range f.Carts {
		if err := c.Validate(); err != nil {
			return n, fmt.Errorf("cart %q: %w", c.ID, err)
		}
		if c.Status == "" {
			c.Status = models.StatusNewOrder
		}
		if c.TotalPrice == 0 {
			c.TotalPrice = c.ComputeTotal()
		}
		ok, err := skipExisting(store.CreateCart(ctx, c))
		if err != nil {
			return n, fmt.Errorf("cart %q: %w", c.ID, err)
		}
		if ok {
			n.Carts++
		}
	}

	return n, nil
}

// LoadFile runs Load then Apply and logs the result.
func LoadFile(ctx context.Context, store repository.Store, path string) error {
	f, err := Load(path)
	if err != nil {
		return err
	}
	n, err := Apply(ctx, store, f)
	if err != nil {
		return err
	}
	log.Printf("🌱 Seeded %d categories, %d products, %d users, %d carts from %s",
		n.Categories, n.Products, n.Users, n.Carts, path)
	return nil
}

func skipExisting[T any](_ T, err error) (bool, error) {
	if errors.Is(err, repository.ErrConflict) {
		return false, nil
	}
	return err == nil, err
}
