package webui

import (
	"context"
	"io"
	"strings"

	"shop_backoffice/internal/apiclient"
	"shop_backoffice/internal/models"
)

// fakeBackend keeps the API's data in slices and records mutations.
type fakeBackend struct {
	categories []models.Category
	products   []models.ProductInfo
	users      []models.UserInfo
	carts      []models.CartInfo

	created  []any
	uploads  int
	failNext error
}

func notFound() error {
	return &apiclient.Error{StatusCode: 404, Message: "not found"}
}

func (f *fakeBackend) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeBackend) GetCategories(context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), f.categories...), nil
}

func (f *fakeBackend) GetCategory(_ context.Context, id string) (models.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, notFound()
}

func (f *fakeBackend) SearchCategories(_ context.Context, name string) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		if strings.Contains(strings.ToLower(c.CategoryName), strings.ToLower(name)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateCategory(_ context.Context, c models.Category) (models.Category, error) {
	if err := f.takeFailure(); err != nil {
		return models.Category{}, err
	}
	f.created = append(f.created, c)
	f.categories = append(f.categories, c)
	return c, nil
}

func (f *fakeBackend) UpdateCategory(_ context.Context, c models.Category) (models.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == c.ID {
			f.categories[i] = c
			return c, nil
		}
	}
	return models.Category{}, notFound()
}

func (f *fakeBackend) DeleteCategory(_ context.Context, id string) error {
	if err := f.takeFailure(); err != nil {
		return err
	}
	for i, c := range f.categories {
		if c.ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return notFound()
}

func (f *fakeBackend) GetProducts(context.Context) ([]models.ProductInfo, error) {
	return append([]models.ProductInfo(nil), f.products...), nil
}

func (f *fakeBackend) GetProduct(_ context.Context, id string) (models.ProductInfo, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.ProductInfo{}, notFound()
}

func (f *fakeBackend) GetProductsByCategory(_ context.Context, categoryID string) ([]models.ProductInfo, error) {
	var out []models.ProductInfo
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateProduct(_ context.Context, p models.ProductInfo) (models.ProductInfo, error) {
	if err := f.takeFailure(); err != nil {
		return models.ProductInfo{}, err
	}
	f.created = append(f.created, p)
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeBackend) UpdateProduct(_ context.Context, p models.ProductInfo) (models.ProductInfo, error) {
	for i := range f.products {
		if f.products[i].ID == p.ID {
			f.products[i] = p
			return p, nil
		}
	}
	return models.ProductInfo{}, notFound()
}

func (f *fakeBackend) DeleteProduct(_ context.Context, id string) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return notFound()
}

func (f *fakeBackend) UploadImage(_ context.Context, filename, _ string, r io.Reader) (apiclient.UploadedImage, error) {
	f.uploads++
	if _, err := io.Copy(io.Discard, r); err != nil {
		return apiclient.UploadedImage{}, err
	}
	return apiclient.UploadedImage{ImageURL: "https://img.test/" + filename, Object: "products/" + filename}, nil
}

func (f *fakeBackend) GetUsers(context.Context) ([]models.UserInfo, error) {
	return append([]models.UserInfo(nil), f.users...), nil
}

func (f *fakeBackend) GetUser(_ context.Context, id string) (models.UserInfo, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.UserInfo{}, notFound()
}

func (f *fakeBackend) SearchUsers(_ context.Context, userName string) ([]models.UserInfo, error) {
	var out []models.UserInfo
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.UserName), strings.ToLower(userName)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateUser(_ context.Context, u models.UserInfo) (models.UserInfo, error) {
	f.created = append(f.created, u)
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeBackend) UpdateUser(_ context.Context, u models.UserInfo) (models.UserInfo, error) {
	for i := range f.users {
		if f.users[i].ID == u.ID {
			f.users[i] = u
			return u, nil
		}
	}
	return models.UserInfo{}, notFound()
}

func (f *fakeBackend) DeleteUser(_ context.Context, id string) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return notFound()
}

func (f *fakeBackend) GetTransactions(context.Context) ([]models.CartInfo, error) {
	return append([]models.CartInfo(nil), f.carts...), nil
}

func (f *fakeBackend) GetCart(_ context.Context, id string) (models.CartInfo, error) {
	for _, c := range f.carts {
		if c.ID == id {
			return c, nil
		}
	}
	return models.CartInfo{}, notFound()
}

func (f *fakeBackend) UpdateCartStatus(_ context.Context, id, status string) (models.CartInfo, error) {
	for i := range f.carts {
		if f.carts[i].ID == id {
			if err := models.CheckTransition(f.carts[i].Status, status); err != nil {
				return models.CartInfo{}, &apiclient.Error{StatusCode: 400, Message: err.Error()}
			}
			f.carts[i].Status = status
			return f.carts[i], nil
		}
	}
	return models.CartInfo{}, notFound()
}

func (f *fakeBackend) DeleteCart(_ context.Context, id string) error {
	for i, c := range f.carts {
		if c.ID == id {
			f.carts = append(f.carts[:i], f.carts[i+1:]...)
			return nil
		}
	}
	return notFound()
}
