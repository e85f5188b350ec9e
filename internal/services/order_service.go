package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"delivery_tracker/internal/apperr"
	"delivery_tracker/internal/clients"
	"delivery_tracker/internal/config"
	"delivery_tracker/internal/geo"
	"delivery_tracker/internal/models"
	"delivery_tracker/internal/notify"
)

// maxCoordinateFanout bounds the concurrent latest-coordinate lookups
// during auto assignment.
const maxCoordinateFanout = 8

// OrderService runs the order-creation workflow: stock validation,
// courier assignment and the transactional write of the order and its
// line items.
type OrderService struct {
	users       *clients.UsersClient
	warehouses  *clients.WarehousesClient
	products    *clients.ProductsClient
	coordinates *clients.CoordinatesClient
	mailer      notify.Mailer
}

func NewOrderService(users *clients.UsersClient, warehouses *clients.WarehousesClient, products *clients.ProductsClient, coordinates *clients.CoordinatesClient, mailer notify.Mailer) *OrderService {
	return &OrderService{
		users:       users,
		warehouses:  warehouses,
		products:    products,
		coordinates: coordinates,
		mailer:      mailer,
	}
}

type OrderLine struct {
	ProductID uint `json:"product_id" binding:"required"`
	Amount    int  `json:"amount" binding:"required"`
}

type CreateOrderInput struct {
	CustomerName    string      `json:"customer_name" binding:"required"`
	CustomerEmail   string      `json:"customer_email" binding:"required,email"`
	DeliveryAddress string      `json:"delivery_address" binding:"required"`
	Latitude        float64     `json:"latitude" binding:"required"`
	Longitude       float64     `json:"longitude" binding:"required"`
	WarehouseID     uint        `json:"warehouse_id" binding:"required"`
	AutoAssign      bool        `json:"auto_assign"`
	Products        []OrderLine `json:"products" binding:"required"`
}

// Create places an order. With auto_assign the nearest available
// courier in the warehouse's city is selected deterministically;
// otherwise the order stays PENDING with the unassigned sentinel.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	target := geo.Point{Latitude: in.Latitude, Longitude: in.Longitude}
	if !target.Valid() {
		return nil, apperr.Validation("delivery latitude/longitude out of range")
	}
	if len(in.Products) == 0 {
		return nil, apperr.Validation("order needs at least one product")
	}
	for _, line := range in.Products {
		if line.Amount <= 0 {
			return nil, apperr.Validation("amount for product %d must be positive", line.ProductID)
		}
	}

	// 1) Stock validation: every line must be coverable right now.
	if err := s.validateStock(ctx, in.WarehouseID, in.Products); err != nil {
		return nil, err
	}

	// 2) The warehouse's city scopes the courier search.
	warehouse, err := s.warehouses.GetWarehouse(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		DeliveryAddress: in.DeliveryAddress,
		WarehouseID:     in.WarehouseID,
	}

	// 3) Assignment branch.
	if in.AutoAssign {
		courier, err := s.nearestCourier(ctx, warehouse.Address.CityID, target)
		if err != nil {
			return nil, err
		}
		coord, err := s.coordinates.Create(ctx, clients.CreateCoordinateInput{
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
			CityID:    warehouse.Address.CityID,
			Street:    in.DeliveryAddress,
			UserID:    courier.CourierID,
		})
		if err != nil {
			return nil, err
		}
		order.Status = models.OrderStatusAssigned
		order.CourierID = courier.CourierID
		order.CourierName = courier.Name
		order.CourierEmail = courier.Email
		order.CoordinateID = coord.ID
	} else {
		coord, err := s.coordinates.Create(ctx, clients.CreateCoordinateInput{
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
			CityID:    warehouse.Address.CityID,
			Street:    in.DeliveryAddress,
		})
		if err != nil {
			return nil, err
		}
		order.Status = models.OrderStatusPending
		order.CourierID = models.UnassignedCourierID
		order.CoordinateID = coord.ID
	}

	// 4) Order and line items commit together; no partial orders.
	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, line := range in.Products {
			op := models.OrderProduct{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Amount:    line.Amount,
			}
			if err := tx.Create(&op).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5) Reserve the stock. A failure here is logged, not fatal: the
	// order exists and the discrepancy shows up in the movement log.
	s.consumeStock(ctx, order.ID, in.WarehouseID, in.Products)

	// 6) Exactly one confirmation per order.
	if err := s.mailer.SendOrderConfirmation(in.CustomerEmail, in.CustomerName, order.ID, order.Status); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Warn("Failed to send order confirmation email.")
	}

	return s.Get(ctx, order.ID)
}

// validateStock checks each line against the inventory service: the
// product must exist and be orderable, and the warehouse must cover
// the requested amount.
func (s *OrderService) validateStock(ctx context.Context, warehouseID uint, lines []OrderLine) error {
	for _, line := range lines {
		product, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return apperr.Validation("product %d does not exist", line.ProductID)
			}
			return err
		}
		if product.Status != "" && product.Status != "ACTIVE" {
			return apperr.Validation("product %d is %s and cannot be ordered", line.ProductID, product.Status)
		}

		stock, err := s.warehouses.GetStock(ctx, warehouseID, line.ProductID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return apperr.Validation("product %d is not stocked in warehouse %d", line.ProductID, warehouseID)
			}
			return err
		}
		if stock.StockQuantity < line.Amount {
			return apperr.Validation("insufficient stock for product %d: have %d, want %d",
				line.ProductID, stock.StockQuantity, line.Amount)
		}
	}
	return nil
}

// nearestCourier fans out the per-courier latest-coordinate lookups
// with bounded parallelism, then aggregates deterministically: results
// land in a slice indexed by courier, so completion order never
// influences the selection.
func (s *OrderService) nearestCourier(ctx context.Context, cityID uint, target geo.Point) (*geo.Candidate, error) {
	couriers, err := s.users.CouriersByCity(ctx, cityID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, geo.ErrNoCourierAvailable
		}
		return nil, err
	}
	if len(couriers) == 0 {
		return nil, geo.ErrNoCourierAvailable
	}

	candidates := make([]geo.Candidate, len(couriers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxCoordinateFanout)
	for i, courier := range couriers {
		g.Go(func() error {
			coord, err := s.coordinates.LatestByUser(gctx, courier.ID)
			if err != nil {
				// Missing or failed readings exclude the courier, they
				// do not fail the order.
				logrus.WithError(err).WithField("courier_id", courier.ID).
					Warn("Courier excluded from assignment: no usable coordinate.")
				return nil
			}
			candidates[i] = geo.Candidate{
				CourierID: courier.ID,
				Name:      courier.Name,
				Email:     courier.Email,
				Position:  geo.Point{Latitude: coord.Latitude, Longitude: coord.Longitude},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nearest, err := geo.SelectNearest(target, candidates)
	if err != nil {
		return nil, err
	}
	return &nearest, nil
}

func (s *OrderService) consumeStock(ctx context.Context, orderID, warehouseID uint, lines []OrderLine) {
	for _, line := range lines {
		if err := s.warehouses.ConsumeStock(ctx, warehouseID, line.ProductID, line.Amount); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"order_id":   orderID,
				"product_id": line.ProductID,
			}).Warn("Failed to reserve stock for order line.")
		}
	}
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := config.DB.WithContext(ctx).Preload("Products").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order %d not found", id)
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) List(ctx context.Context, status string) ([]models.Order, error) {
	var orders []models.Order
	q := config.DB.WithContext(ctx).Preload("Products").Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// AssignCourier completes a PENDING order manually. The transition is
// a conditional UPDATE keyed on the current status, so two concurrent
// assignments cannot both win; the loser sees zero rows affected.
func (s *OrderService) AssignCourier(ctx context.Context, orderID, courierID uint) (*models.Order, error) {
	courier, err := s.users.GetUser(ctx, courierID)
	if err != nil {
		return nil, err
	}

	res := config.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":        models.OrderStatusAssigned,
			"courier_id":    courier.ID,
			"courier_name":  courier.Name,
			"courier_email": courier.Email,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the order is gone or it already left PENDING.
		order, err := s.Get(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return nil, apperr.Conflict("order %d is already %s", orderID, order.Status)
	}
	return s.Get(ctx, orderID)
}

// Delete removes the order and its line items in one transaction.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderProduct{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}
