package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"delivery_tracker/internal/apperr"
	"delivery_tracker/internal/config"
	"delivery_tracker/internal/models"
)

type CreateProductInput struct {
	Name        string `json:"name" binding:"required"`
	SKU         string `json:"sku" binding:"required"`
	Barcode     string `json:"barcode"`
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id" binding:"required"`

	UnitPrice    float64 `json:"unit_price"`
	ReorderLevel int     `json:"reorder_level"`
	VolumeM3     float64 `json:"volume_m3"`
	Weight       float64 `json:"weight"`
	Dimensions   string  `json:"dimensions"`
	Fragile      bool    `json:"fragile"`
	Refrigerated bool    `json:"refrigerated"`

	LastRestockDate *time.Time `json:"last_restock_date"`
	ExpiryDate      *time.Time `json:"expiry_date"`

	// Optional initial stock and supplier link.
	SupplierID   uint `json:"supplier_id"`
	WarehouseID  uint `json:"warehouse_id"`
	InitialStock int  `json:"initial_stock"`
}

// CreateProduct writes the product together with its optional supplier
// link, initial stock row and IN movement in a single transaction.
func CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if _, err := GetCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if in.SupplierID != 0 {
		if _, err := GetSupplier(ctx, in.SupplierID); err != nil {
			return nil, err
		}
	}

	product := models.Product{
		Name:            in.Name,
		SKU:             in.SKU,
		Barcode:         in.Barcode,
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		UnitPrice:       in.UnitPrice,
		ReorderLevel:    in.ReorderLevel,
		VolumeM3:        in.VolumeM3,
		Weight:          in.Weight,
		Dimensions:      in.Dimensions,
		Fragile:         in.Fragile,
		Refrigerated:    in.Refrigerated,
		Status:          "ACTIVE",
		LastRestockDate: in.LastRestockDate,
		ExpiryDate:      in.ExpiryDate,
	}

	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}

		if in.SupplierID != 0 {
			link := models.SupplierProduct{SupplierID: in.SupplierID, ProductID: product.ID}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "supplier_id"}, {Name: "product_id"}},
				DoNothing: true,
			}).Create(&link).Error; err != nil {
				return err
			}
		}

		if in.WarehouseID != 0 && in.InitialStock > 0 {
			volume := in.VolumeM3 * float64(in.InitialStock)
			if err := consumeCapacity(tx, in.WarehouseID, volume); err != nil {
				return err
			}
			row := models.WarehouseProduct{
				WarehouseID:   in.WarehouseID,
				ProductID:     product.ID,
				StockQuantity: in.InitialStock,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			movement := models.InventoryMovement{
				WarehouseID: in.WarehouseID,
				ProductID:   product.ID,
				Quantity:    in.InitialStock,
				Type:        models.MovementIn,
				Reference:   "initial stock",
				OccurredAt:  time.Now(),
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("product with sku %q already exists", in.SKU)
		}
		return nil, err
	}
	return &product, nil
}

// FindOrCreateProductBySKU returns the existing product for the SKU or
// creates it. The bulk importer relies on this for idempotent re-runs.
func FindOrCreateProductBySKU(ctx context.Context, in CreateProductInput) (*models.Product, bool, error) {
	var existing models.Product
	err := config.DB.WithContext(ctx).Where("sku = ?", in.SKU).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	product, err := CreateProduct(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return product, true, nil
}

func GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := config.DB.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product %d not found", id)
		}
		return nil, err
	}
	return &product, nil
}

func ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := config.DB.WithContext(ctx).Preload("Category").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

type UpdateProductInput struct {
	Name         *string  `json:"name"`
	Barcode      *string  `json:"barcode"`
	Description  *string  `json:"description"`
	UnitPrice    *float64 `json:"unit_price"`
	ReorderLevel *int     `json:"reorder_level"`
	Status       *string  `json:"status"`
}

// UpdateProduct changes mutable fields; the SKU is identity and cannot move.
func UpdateProduct(ctx context.Context, id uint, in UpdateProductInput) (*models.Product, error) {
	product, err := GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	if in.ReorderLevel != nil {
		product.ReorderLevel = *in.ReorderLevel
	}
	if in.Status != nil {
		product.Status = *in.Status
	}

	if err := config.DB.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct fails with Conflict while stock rows reference the product.
func DeleteProduct(ctx context.Context, id uint) error {
	var stockCount int64
	if err := config.DB.WithContext(ctx).Model(&models.WarehouseProduct{}).
		Where("product_id = ?", id).Count(&stockCount).Error; err != nil {
		return err
	}
	if stockCount > 0 {
		return apperr.Conflict("product %d is stocked in %d warehouses", id, stockCount)
	}
	res := config.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product %d not found", id)
	}
	return nil
}
