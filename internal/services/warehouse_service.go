package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"delivery_tracker/internal/apperr"
	"delivery_tracker/internal/clients"
	"delivery_tracker/internal/config"
	"delivery_tracker/internal/models"
)

// WarehouseService owns warehouse lifecycle. It needs the users
// directory to resolve or register the warehouse manager.
type WarehouseService struct {
	users *clients.UsersClient
}

func NewWarehouseService(users *clients.UsersClient) *WarehouseService {
	return &WarehouseService{users: users}
}

type CreateWarehouseInput struct {
	Name         string  `json:"name" binding:"required"`
	DepartmentID uint    `json:"department_id" binding:"required"`
	CityID       uint    `json:"city_id" binding:"required"`
	Street       string  `json:"street" binding:"required"`
	PostalCode   string  `json:"postal_code"`
	CapacityM3   float64 `json:"capacity_m3"`
	// Either an existing manager id or the details to register one.
	ManagerID    uint   `json:"manager_id"`
	ManagerName  string `json:"manager_name"`
	ManagerEmail string `json:"manager_email"`
	ManagerPhone string `json:"manager_phone"`
}

// Create verifies the referenced department and city already exist (no
// auto-create), resolves the manager through the users service, then
// writes address and warehouse in one transaction.
func (s *WarehouseService) Create(ctx context.Context, in CreateWarehouseInput) (*models.Warehouse, error) {
	city, err := GetCity(ctx, in.CityID)
	if err != nil {
		return nil, err
	}
	if city.DepartmentID != in.DepartmentID {
		return nil, apperr.Validation("city %d does not belong to department %d", in.CityID, in.DepartmentID)
	}

	manager, err := s.users.FindOrCreateUser(ctx, in.ManagerID, clients.CreateUserInput{
		Name:   in.ManagerName,
		Email:  in.ManagerEmail,
		Phone:  in.ManagerPhone,
		Role:   "manager",
		CityID: in.CityID,
	})
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Validation("manager %d does not exist in the users service", in.ManagerID)
		}
		return nil, err
	}

	warehouse := models.Warehouse{
		Name:       in.Name,
		ManagerID:  manager.ID,
		CapacityM3: in.CapacityM3,
		State:      "ACTIVE",
		Address: models.Address{
			Street:     in.Street,
			PostalCode: in.PostalCode,
			CityID:     in.CityID,
		},
	}
	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&warehouse).Error
	})
	if err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("warehouse %q already exists", in.Name)
		}
		return nil, err
	}

	return s.Get(ctx, warehouse.ID)
}

func (s *WarehouseService) Get(ctx context.Context, id uint) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	if err := config.DB.WithContext(ctx).
		Preload("Address").
		Preload("Address.City").
		Preload("Address.City.Department").
		First(&warehouse, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("warehouse %d not found", id)
		}
		return nil, err
	}
	return &warehouse, nil
}

func (s *WarehouseService) List(ctx context.Context) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	if err := config.DB.WithContext(ctx).
		Preload("Address").
		Preload("Address.City").
		Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

type UpdateWarehouseInput struct {
	Name       *string  `json:"name"`
	State      *string  `json:"state"`
	CapacityM3 *float64 `json:"capacity_m3"`
}

// Update changes mutable fields only; identity (address, manager) stays.
func (s *WarehouseService) Update(ctx context.Context, id uint, in UpdateWarehouseInput) (*models.Warehouse, error) {
	warehouse, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.State != nil {
		warehouse.State = *in.State
	}
	if in.CapacityM3 != nil {
		if *in.CapacityM3 < warehouse.UsedCapacityM3 {
			return nil, apperr.Validation("capacity below current usage of %.2f m3", warehouse.UsedCapacityM3)
		}
		warehouse.CapacityM3 = *in.CapacityM3
	}

	if err := config.DB.WithContext(ctx).Save(warehouse).Error; err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("warehouse %q already exists", warehouse.Name)
		}
		return nil, err
	}
	return warehouse, nil
}

// Delete is blocked while stock or movement rows reference the
// warehouse; otherwise the warehouse and its address go together.
func (s *WarehouseService) Delete(ctx context.Context, id uint) error {
	warehouse, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	return config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stockCount int64
		if err := tx.Model(&models.WarehouseProduct{}).
			Where("warehouse_id = ?", id).Count(&stockCount).Error; err != nil {
			return err
		}
		if stockCount > 0 {
			return apperr.Conflict("warehouse %d has %d stock rows", id, stockCount)
		}

		var movementCount int64
		if err := tx.Model(&models.InventoryMovement{}).
			Where("warehouse_id = ?", id).Count(&movementCount).Error; err != nil {
			return err
		}
		if movementCount > 0 {
			return apperr.Conflict("warehouse %d has %d movement records", id, movementCount)
		}

		if err := tx.Delete(&models.Warehouse{}, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Address{}, warehouse.AddressID).Error
	})
}
