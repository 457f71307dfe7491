package apiclient

import (
	"context"
	"net/http"

	"shop_backoffice/internal/models"
)

func (c *Client) GetCarts(ctx context.Context) ([]models.CartInfo, error) {
	var out []models.CartInfo
	err := c.getJSON(ctx, c.URL(GetCartInfo), &out)
	return out, err
}

// GetTransactions returns every order, newest first.
func (c *Client) GetTransactions(ctx context.Context) ([]models.CartInfo, error) {
	var out []models.CartInfo
	err := c.getJSON(ctx, c.URL(GetTransactions), &out)
	return out, err
}

func (c *Client) GetCart(ctx context.Context, id string) (models.CartInfo, error) {
	var out models.CartInfo
	err := c.getJSON(ctx, c.URL(GetCartByID, id), &out)
	return out, err
}

func (c *Client) GetCartSummary(ctx context.Context) (models.CartSummary, error) {
	var out models.CartSummary
	err := c.getJSON(ctx, c.URL(GetCartSummary), &out)
	return out, err
}

func (c *Client) CreateCart(ctx context.Context, cart models.CartInfo) (models.CartInfo, error) {
	var out models.CartInfo
	err := c.sendJSON(ctx, http.MethodPost, c.URL(PostCart), cart, &out)
	return out, err
}

func (c *Client) UpdateCartStatus(ctx context.Context, id, status string) (models.CartInfo, error) {
	var out models.CartInfo
	err := c.sendJSON(ctx, http.MethodPut, c.URL(UpdateCartStatus), models.StatusUpdate{ID: id, Status: status}, &out)
	return out, err
}

func (c *Client) DeleteCart(ctx context.Context, id string) error {
	return c.delete(ctx, c.URL(DeleteCart, id))
}
