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

// AddStock merges incoming quantity into the (warehouse, product) stock
// row, creating it when absent. The merge is a single ON CONFLICT
// upsert, so concurrent imports and order flows cannot lose updates.
// Warehouse used capacity moves in the same transaction, guarded by the
// capacity limit.
func AddStock(ctx context.Context, warehouseID, productID uint, quantity int, reference string) (*models.WarehouseProduct, error) {
	if quantity <= 0 {
		return nil, apperr.Validation("stock quantity must be positive")
	}

	var product models.Product
	if err := config.DB.WithContext(ctx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product %d not found", productID)
		}
		return nil, err
	}

	var row models.WarehouseProduct
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		volume := product.VolumeM3 * float64(quantity)
		if err := consumeCapacity(tx, warehouseID, volume); err != nil {
			return err
		}

		row = models.WarehouseProduct{
			WarehouseID:   warehouseID,
			ProductID:     productID,
			StockQuantity: quantity,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "warehouse_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"stock_quantity": gorm.Expr("warehouse_products.stock_quantity + EXCLUDED.stock_quantity"),
				"updated_at":     time.Now(),
			}),
		}).Create(&row).Error; err != nil {
			return err
		}

		movement := models.InventoryMovement{
			WarehouseID: warehouseID,
			ProductID:   productID,
			Quantity:    quantity,
			Type:        models.MovementIn,
			Reference:   reference,
			OccurredAt:  time.Now(),
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return nil, err
	}

	// Re-read: the upsert leaves the merged quantity only in the database.
	if err := config.DB.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ConsumeStock atomically decrements stock for an order line. The
// conditional UPDATE only fires while enough stock remains; zero rows
// affected means insufficient stock, reported as Conflict.
func ConsumeStock(ctx context.Context, warehouseID, productID uint, amount int, reference string) error {
	if amount <= 0 {
		return apperr.Validation("amount must be positive")
	}

	return config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.WarehouseProduct{}).
			Where("warehouse_id = ? AND product_id = ? AND stock_quantity >= ?", warehouseID, productID, amount).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Distinguish "no stock row" from "not enough".
			var exists int64
			if err := tx.Model(&models.WarehouseProduct{}).
				Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
				Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return apperr.NotFound("no stock for product %d in warehouse %d", productID, warehouseID)
			}
			return apperr.Conflict("insufficient stock for product %d in warehouse %d", productID, warehouseID)
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return err
		}
		if err := releaseCapacity(tx, warehouseID, product.VolumeM3*float64(amount)); err != nil {
			return err
		}

		movement := models.InventoryMovement{
			WarehouseID: warehouseID,
			ProductID:   productID,
			Quantity:    amount,
			Type:        models.MovementOut,
			Reference:   reference,
			OccurredAt:  time.Now(),
		}
		return tx.Create(&movement).Error
	})
}

func GetStock(ctx context.Context, warehouseID, productID uint) (*models.WarehouseProduct, error) {
	var row models.WarehouseProduct
	if err := config.DB.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		Preload("Product").
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no stock for product %d in warehouse %d", productID, warehouseID)
		}
		return nil, err
	}
	return &row, nil
}

func ListStock(ctx context.Context, warehouseID uint) ([]models.WarehouseProduct, error) {
	var rows []models.WarehouseProduct
	if err := config.DB.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Preload("Product").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// consumeCapacity bumps used_capacity_m3 with a conditional UPDATE that
// respects the warehouse limit. Zero rows affected is either a missing
// warehouse or a full one.
func consumeCapacity(tx *gorm.DB, warehouseID uint, volume float64) error {
	res := tx.Model(&models.Warehouse{}).
		Where("id = ? AND used_capacity_m3 + ? <= capacity_m3", warehouseID, volume).
		UpdateColumn("used_capacity_m3", gorm.Expr("used_capacity_m3 + ?", volume))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := tx.Model(&models.Warehouse{}).Where("id = ?", warehouseID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return apperr.NotFound("warehouse %d not found", warehouseID)
		}
		return apperr.Conflict("warehouse %d capacity exceeded", warehouseID)
	}
	return nil
}

func releaseCapacity(tx *gorm.DB, warehouseID uint, volume float64) error {
	return tx.Model(&models.Warehouse{}).
		Where("id = ?", warehouseID).
		UpdateColumn("used_capacity_m3", gorm.Expr("GREATEST(used_capacity_m3 - ?, 0)", volume)).Error
}

func ListMovements(ctx context.Context, warehouseID uint) ([]models.InventoryMovement, error) {
	var moves []models.InventoryMovement
	q := config.DB.WithContext(ctx).Order("occurred_at desc")
	if warehouseID != 0 {
		q = q.Where("warehouse_id = ?", warehouseID)
	}
	if err := q.Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}
