package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"shop_backoffice/internal/models"
)

// --- categories ---

func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.getJSON(ctx, c.URL(GetCategories), &out)
	return out, err
}

func (c *Client) GetCategory(ctx context.Context, id string) (models.Category, error) {
	var out models.Category
	err := c.getJSON(ctx, c.URL(GetCategoryByID, id), &out)
	return out, err
}

func (c *Client) SearchCategories(ctx context.Context, name string) ([]models.Category, error) {
	var out []models.Category
	err := c.getJSON(ctx, c.URL(SearchCategory)+"?categoryName="+url.QueryEscape(name), &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	var out models.Category
	err := c.sendJSON(ctx, http.MethodPost, c.URL(PostCategory), cat, &out)
	return out, err
}

func (c *Client) UpdateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	var out models.Category
	err := c.sendJSON(ctx, http.MethodPut, c.URL(PutCategory), cat, &out)
	return out, err
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, c.URL(DeleteCategory, id))
}

// --- products ---

func (c *Client) GetProducts(ctx context.Context) ([]models.ProductInfo, error) {
	var out []models.ProductInfo
	err := c.getJSON(ctx, c.URL(GetProductInfo), &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (models.ProductInfo, error) {
	var out models.ProductInfo
	err := c.getJSON(ctx, c.URL(GetProductByID, id), &out)
	return out, err
}

func (c *Client) GetProductsByCategory(ctx context.Context, categoryID string) ([]models.ProductInfo, error) {
	var out []models.ProductInfo
	err := c.getJSON(ctx, c.URL(GetProductsByCat, categoryID), &out)
	return out, err
}

func (c *Client) SearchProducts(ctx context.Context, name string) ([]models.ProductInfo, error) {
	var out []models.ProductInfo
	err := c.getJSON(ctx, c.URL(SearchProduct)+"?name="+url.QueryEscape(name), &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, p models.ProductInfo) (models.ProductInfo, error) {
	var out models.ProductInfo
	err := c.sendJSON(ctx, http.MethodPost, c.URL(PostProduct), p, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, p models.ProductInfo) (models.ProductInfo, error) {
	var out models.ProductInfo
	err := c.sendJSON(ctx, http.MethodPut, c.URL(PutProduct), p, &out)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, c.URL(DeleteProduct, id))
}

// UploadedImage is the API's answer to an image upload.
type UploadedImage struct {
	ImageURL  string `json:"imageUrl"`
	Object    string `json:"object"`
	SignedURL string `json:"signedUrl,omitempty"`
}

// UploadImage sends one product picture as multipart field "file".
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (UploadedImage, error) {
	var out UploadedImage
	body, ct, err := multipartFile("file", filename, contentType, r)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, http.MethodPost, c.URL(UploadImage), body, ct, &out)
	return out, err
}
