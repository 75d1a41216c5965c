package storefront

import (
	"context"
	"fmt"
	"net/http"
)

// Catalog management inputs for the operator surface.

type CategoryInput struct {
	Name      string `json:"name"`
	Emoji     string `json:"emoji,omitempty"`
	SortOrder int32  `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji,omitempty"`
	SortOrder int32  `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

type ProductInput struct {
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	OldPrice    float64 `json:"old_price,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	SortOrder   int32   `json:"sort_order"`
	IsActive    bool    `json:"is_active"`
}

type RegionInput struct {
	Name          string  `json:"name"`
	DeliveryPrice float64 `json:"delivery_price"`
	IsActive      bool    `json:"is_active"`
}

// Admin CRUD calls. These use the client's held token, which for operator
// sessions is the admin credential from AdminLogin.

func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	var resp Category
	if err := c.request(ctx, http.MethodPost, "/admin/categories", true, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*Category, error) {
	var resp Category
	path := fmt.Sprintf("/admin/categories/%d", id)
	if err := c.request(ctx, http.MethodPut, path, true, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", id), true, nil, nil)
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var resp Product
	if err := c.request(ctx, http.MethodPost, "/admin/products", true, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	var resp Product
	path := fmt.Sprintf("/admin/products/%d", id)
	if err := c.request(ctx, http.MethodPut, path, true, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/admin/products/%d", id), true, nil, nil)
}

func (c *Client) CreateRegion(ctx context.Context, input RegionInput) (*Region, error) {
	var resp Region
	if err := c.request(ctx, http.MethodPost, "/admin/regions", true, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateRegion(ctx context.Context, id int64, input RegionInput) (*Region, error) {
	var resp Region
	path := fmt.Sprintf("/admin/regions/%d", id)
	if err := c.request(ctx, http.MethodPut, path, true, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteRegion(ctx context.Context, id int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/admin/regions/%d", id), true, nil, nil)
}

func (c *Client) AdminListOrders(ctx context.Context) ([]Order, error) {
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := c.request(ctx, http.MethodGet, "/admin/orders", true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *Client) AdminSetOrderStatus(ctx context.Context, orderID int64, status string) (*Order, error) {
	var resp Order
	path := fmt.Sprintf("/admin/orders/%d/status", orderID)
	payload := map[string]string{"status": status}
	if err := c.request(ctx, http.MethodPut, path, true, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
