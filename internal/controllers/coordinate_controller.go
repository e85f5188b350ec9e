package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delivery_tracker/internal/geo"
	"delivery_tracker/internal/services"
)

// locationHub is shared by the REST handlers (publish side) and the
// WebSocket endpoint (subscribe side).
var locationHub = NewLocationHub()

// CreateCoordinate creates a coordinate or returns the existing row for
// the same (latitude, longitude) pair. 201 on a fresh row, 200 when the
// pair already existed.
func CreateCoordinate(c *gin.Context) {
	var input services.CoordinateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coord, created, err := services.CreateCoordinate(c.Request.Context(), input)
	if err != nil {
		respondErr(c, err)
		return
	}

	if input.UserID != 0 {
		locationHub.PublishLocation(input.UserID, coord.ID, coord.Latitude, coord.Longitude)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"coordinate": coord})
}

func GetCoordinate(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	coord, err := services.GetCoordinate(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coordinate": coord})
}

func ListCoordinates(c *gin.Context) {
	coords, err := services.ListCoordinates(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": coords})
}

// ListCoordinatesGeoJSON renders all coordinates as a GeoJSON
// FeatureCollection for the dashboard map.
func ListCoordinatesGeoJSON(c *gin.Context) {
	coords, err := services.ListCoordinates(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, geo.FeatureCollection(coords))
}

func UpdateCoordinate(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var input services.CoordinateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coord, err := services.UpdateCoordinate(c.Request.Context(), id, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coordinate": coord})
}

func DeleteCoordinate(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteCoordinate(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReportPosition lets a courier report a position: insert-or-fetch the
// coordinate, link it to the courier and broadcast to subscribers.
func ReportPosition(c *gin.Context) {
	userID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var input services.CoordinateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.UserID = userID

	coord, created, err := services.CreateCoordinate(c.Request.Context(), input)
	if err != nil {
		respondErr(c, err)
		return
	}

	locationHub.PublishLocation(userID, coord.ID, coord.Latitude, coord.Longitude)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"coordinate": coord})
}

// LatestCoordinateByUser returns a courier's most recent position.
func LatestCoordinateByUser(c *gin.Context) {
	userID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	coord, err := services.LatestCoordinateByUser(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coordinate": coord})
}
