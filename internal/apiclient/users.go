package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"shop_backoffice/internal/models"
)

func (c *Client) GetUsers(ctx context.Context) ([]models.UserInfo, error) {
	var out []models.UserInfo
	err := c.getJSON(ctx, c.URL(GetUserInfo), &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id string) (models.UserInfo, error) {
	var out models.UserInfo
	err := c.getJSON(ctx, c.URL(GetUserByID, id), &out)
	return out, err
}

func (c *Client) SearchUsers(ctx context.Context, userName string) ([]models.UserInfo, error) {
	var out []models.UserInfo
	err := c.getJSON(ctx, c.URL(SearchUser)+"?userName="+url.QueryEscape(userName), &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, u models.UserInfo) (models.UserInfo, error) {
	var out models.UserInfo
	err := c.sendJSON(ctx, http.MethodPost, c.URL(PostUser), u, &out)
	return out, err
}

// UpdateUser leaves the stored password unchanged when UserPassword is blank.
func (c *Client) UpdateUser(ctx context.Context, u models.UserInfo) (models.UserInfo, error) {
	var out models.UserInfo
	err := c.sendJSON(ctx, http.MethodPut, c.URL(PutUser), u, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, c.URL(DeleteUser, id))
}
