package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"delivery_tracker/internal/apperr"
	"delivery_tracker/internal/config"
	"delivery_tracker/internal/models"
)

// Reference entities (departments, cities, categories, suppliers) share
// findOrCreate semantics on their natural keys so bulk imports stay
// idempotent: a second import returns the existing row.

func FindOrCreateDepartment(ctx context.Context, name string) (*models.Department, error) {
	if name == "" {
		return nil, apperr.Validation("department name is required")
	}
	var dept models.Department
	err := config.DB.WithContext(ctx).
		Where(models.Department{Name: name}).
		FirstOrCreate(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func GetDepartment(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := config.DB.WithContext(ctx).Preload("Cities").First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("department %d not found", id)
		}
		return nil, err
	}
	return &dept, nil
}

func ListDepartments(ctx context.Context) ([]models.Department, error) {
	var depts []models.Department
	if err := config.DB.WithContext(ctx).Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

// DeleteDepartment fails with Conflict while cities still reference it.
func DeleteDepartment(ctx context.Context, id uint) error {
	var cityCount int64
	if err := config.DB.WithContext(ctx).Model(&models.City{}).
		Where("department_id = ?", id).Count(&cityCount).Error; err != nil {
		return err
	}
	if cityCount > 0 {
		return apperr.Conflict("department %d has %d dependent cities", id, cityCount)
	}
	res := config.DB.WithContext(ctx).Delete(&models.Department{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("department %d not found", id)
	}
	return nil
}

func FindOrCreateCity(ctx context.Context, name string, departmentID uint) (*models.City, error) {
	if name == "" {
		return nil, apperr.Validation("city name is required")
	}
	// The department must already exist; cities are never auto-rooted.
	if _, err := GetDepartment(ctx, departmentID); err != nil {
		return nil, err
	}
	var city models.City
	err := config.DB.WithContext(ctx).
		Where(models.City{Name: name, DepartmentID: departmentID}).
		FirstOrCreate(&city).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func GetCity(ctx context.Context, id uint) (*models.City, error) {
	var city models.City
	if err := config.DB.WithContext(ctx).Preload("Department").First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("city %d not found", id)
		}
		return nil, err
	}
	return &city, nil
}

// DeleteCity fails with Conflict while addresses still reference it.
func DeleteCity(ctx context.Context, id uint) error {
	var addressCount int64
	if err := config.DB.WithContext(ctx).Model(&models.Address{}).
		Where("city_id = ?", id).Count(&addressCount).Error; err != nil {
		return err
	}
	if addressCount > 0 {
		return apperr.Conflict("city %d has %d dependent addresses", id, addressCount)
	}
	res := config.DB.WithContext(ctx).Delete(&models.City{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("city %d not found", id)
	}
	return nil
}

func ListCities(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	if err := config.DB.WithContext(ctx).Preload("Department").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

func FindOrCreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperr.Validation("category name is required")
	}
	var cat models.Category
	err := config.DB.WithContext(ctx).
		Where(models.Category{Name: name}).
		FirstOrCreate(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := config.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category %d not found", id)
		}
		return nil, err
	}
	return &cat, nil
}

func ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := config.DB.WithContext(ctx).Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// DeleteCategory fails with Conflict while products still reference it.
func DeleteCategory(ctx context.Context, id uint) error {
	var productCount int64
	if err := config.DB.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount > 0 {
		return apperr.Conflict("category %d has %d dependent products", id, productCount)
	}
	res := config.DB.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("category %d not found", id)
	}
	return nil
}

func FindOrCreateSupplier(ctx context.Context, name, email, phone string) (*models.Supplier, error) {
	if name == "" {
		return nil, apperr.Validation("supplier name is required")
	}
	var sup models.Supplier
	err := config.DB.WithContext(ctx).
		Where(models.Supplier{Name: name}).
		Attrs(models.Supplier{Email: email, Phone: phone}).
		FirstOrCreate(&sup).Error
	if err != nil {
		return nil, err
	}
	return &sup, nil
}

func GetSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	var sup models.Supplier
	if err := config.DB.WithContext(ctx).First(&sup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("supplier %d not found", id)
		}
		return nil, err
	}
	return &sup, nil
}

func ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var sups []models.Supplier
	if err := config.DB.WithContext(ctx).Find(&sups).Error; err != nil {
		return nil, err
	}
	return sups, nil
}

// DeleteSupplier fails with Conflict while supplier-product links remain.
func DeleteSupplier(ctx context.Context, id uint) error {
	var linkCount int64
	if err := config.DB.WithContext(ctx).Model(&models.SupplierProduct{}).
		Where("supplier_id = ?", id).Count(&linkCount).Error; err != nil {
		return err
	}
	if linkCount > 0 {
		return apperr.Conflict("supplier %d has %d linked products", id, linkCount)
	}
	res := config.DB.WithContext(ctx).Delete(&models.Supplier{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("supplier %d not found", id)
	}
	return nil
}
