package clients

import (
	"context"
	"fmt"

	"delivery_tracker/internal/config"
)

// Warehouse mirrors the inventory service payload, trimmed to what the
// orders workflow needs: the address carries the city id.
type Warehouse struct {
	ID      uint   `json:"ID"`
	Name    string `json:"name"`
	State   string `json:"state"`
	Address struct {
		Street string `json:"street"`
		CityID uint   `json:"city_id"`
	} `json:"address"`
}

// StockRow mirrors one warehouse_products row.
type StockRow struct {
	WarehouseID   uint `json:"warehouse_id"`
	ProductID     uint `json:"product_id"`
	StockQuantity int  `json:"stock_quantity"`
}

// WarehousesClient talks to the inventory service's warehouse directory.
type WarehousesClient struct {
	base
}

func NewWarehousesClient() *WarehousesClient {
	return &WarehousesClient{newBase("warehouses", config.Env("INVENTORY_URL", "http://localhost:8082"))}
}

func NewWarehousesClientAt(baseURL string) *WarehousesClient {
	return &WarehousesClient{newBase("warehouses", baseURL)}
}

func (c *WarehousesClient) GetWarehouse(ctx context.Context, id uint) (*Warehouse, error) {
	var out struct {
		Warehouse Warehouse `json:"warehouse"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/warehouses/%d", id), &out); err != nil {
		return nil, err
	}
	return &out.Warehouse, nil
}

// GetStock fetches the stock row for a product in a warehouse.
func (c *WarehousesClient) GetStock(ctx context.Context, warehouseID, productID uint) (*StockRow, error) {
	var out struct {
		Stock StockRow `json:"stock"`
	}
	path := fmt.Sprintf("/warehouses/%d/stock/%d", warehouseID, productID)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out.Stock, nil
}

// ConsumeStock asks the inventory service to atomically decrement stock
// for the order's line items.
func (c *WarehousesClient) ConsumeStock(ctx context.Context, warehouseID, productID uint, amount int) error {
	path := fmt.Sprintf("/warehouses/%d/stock/%d/consume", warehouseID, productID)
	return c.postJSON(ctx, path, map[string]int{"amount": amount}, nil)
}
