package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"delivery_tracker/internal/apperr"
	"delivery_tracker/internal/config"
	"delivery_tracker/internal/geo"
	"delivery_tracker/internal/models"
)

// CoordinateInput is the create/update payload for a coordinate.
type CoordinateInput struct {
	Latitude   float64 `json:"latitude" binding:"required"`
	Longitude  float64 `json:"longitude" binding:"required"`
	CityID     uint    `json:"city_id"`
	Street     string  `json:"street"`
	PostalCode string  `json:"postal_code"`
	// UserID tags the coordinate to a courier when set.
	UserID uint `json:"user_id"`
}

func (in CoordinateInput) point() geo.Point {
	return geo.Point{Latitude: in.Latitude, Longitude: in.Longitude}
}

// CreateCoordinate inserts a coordinate, or returns the existing row
// when the (latitude, longitude) pair is already taken. First write
// wins; the check and the insert are one statement, so concurrent
// creates cannot duplicate the pair. The bool reports whether a new
// row was created.
func CreateCoordinate(ctx context.Context, in CoordinateInput) (*models.Coordinate, bool, error) {
	if !in.point().Valid() {
		return nil, false, apperr.Validation("latitude/longitude out of range")
	}

	coord := models.Coordinate{
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		CityID:     in.CityID,
		Street:     in.Street,
		PostalCode: in.PostalCode,
	}
	res := config.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "latitude"}, {Name: "longitude"}},
			DoNothing: true,
		}).
		Create(&coord)
	if res.Error != nil {
		return nil, false, res.Error
	}

	created := res.RowsAffected > 0
	if !created {
		// Lost the race or the pair existed already: fetch the winner.
		if err := config.DB.WithContext(ctx).
			Where("latitude = ? AND longitude = ?", in.Latitude, in.Longitude).
			First(&coord).Error; err != nil {
			return nil, false, err
		}
	}

	if in.UserID != 0 {
		if err := LinkCoordinateUser(ctx, in.UserID, coord.ID); err != nil {
			return nil, false, err
		}
	}
	return &coord, created, nil
}

// LinkCoordinateUser records that a courier reported a coordinate. At
// most one link per (user, coordinate) pair; re-reporting a known pair
// refreshes the link's timestamp so the latest-coordinate lookup keeps
// tracking what the courier reported last, not what they reported first.
func LinkCoordinateUser(ctx context.Context, userID, coordinateID uint) error {
	link := models.CoordinateUser{UserID: userID, CoordinateID: coordinateID}
	return config.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "coordinate_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"updated_at": time.Now(),
			}),
		}).
		Create(&link).Error
}

func GetCoordinate(ctx context.Context, id uint) (*models.Coordinate, error) {
	var coord models.Coordinate
	if err := config.DB.WithContext(ctx).First(&coord, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("coordinate %d not found", id)
		}
		return nil, err
	}
	return &coord, nil
}

func ListCoordinates(ctx context.Context) ([]models.Coordinate, error) {
	var coords []models.Coordinate
	if err := config.DB.WithContext(ctx).Find(&coords).Error; err != nil {
		return nil, err
	}
	return coords, nil
}

// UpdateCoordinate replaces a coordinate's fields. Moving the point to
// a pair another row owns is a Conflict; the unique index decides, not
// a pre-check.
func UpdateCoordinate(ctx context.Context, id uint, in CoordinateInput) (*models.Coordinate, error) {
	if !in.point().Valid() {
		return nil, apperr.Validation("latitude/longitude out of range")
	}

	coord, err := GetCoordinate(ctx, id)
	if err != nil {
		return nil, err
	}

	coord.Latitude = in.Latitude
	coord.Longitude = in.Longitude
	coord.CityID = in.CityID
	coord.Street = in.Street
	coord.PostalCode = in.PostalCode

	if err := config.DB.WithContext(ctx).Save(coord).Error; err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("coordinate (%v, %v) already exists", in.Latitude, in.Longitude)
		}
		return nil, err
	}
	return coord, nil
}

// DeleteCoordinate removes a coordinate and, via the FK constraint,
// its courier links.
func DeleteCoordinate(ctx context.Context, id uint) error {
	res := config.DB.WithContext(ctx).Delete(&models.Coordinate{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("coordinate %d not found", id)
	}
	return nil
}

// LatestCoordinateByUser returns a courier's most recently reported
// coordinate. Freshness is the link's updated_at, which moves both on
// first report and on re-reports of a known pair.
func LatestCoordinateByUser(ctx context.Context, userID uint) (*models.Coordinate, error) {
	var link models.CoordinateUser
	if err := config.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Preload("Coordinate").
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no coordinate reported for user %d", userID)
		}
		return nil, err
	}
	return &link.Coordinate, nil
}
