package clients

import (
	"context"
	"fmt"

	"delivery_tracker/internal/config"
)

// Product mirrors the inventory service's product payload, trimmed to
// what order validation needs.
type Product struct {
	ID        uint    `json:"ID"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	UnitPrice float64 `json:"unit_price"`
	Status    string  `json:"status"`
}

// ProductsClient talks to the inventory service's product directory.
type ProductsClient struct {
	base
}

func NewProductsClient() *ProductsClient {
	return &ProductsClient{newBase("products", config.Env("INVENTORY_URL", "http://localhost:8082"))}
}

func NewProductsClientAt(baseURL string) *ProductsClient {
	return &ProductsClient{newBase("products", baseURL)}
}

func (c *ProductsClient) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var out struct {
		Product Product `json:"product"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}
