package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delivery_tracker/internal/services"
)

// WarehouseController wraps the warehouse service; it carries the
// users-directory dependency needed for manager resolution.
type WarehouseController struct {
	svc *services.WarehouseService
}

func NewWarehouseController(svc *services.WarehouseService) *WarehouseController {
	return &WarehouseController{svc: svc}
}

func (wc *WarehouseController) Create(c *gin.Context) {
	var input services.CreateWarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	warehouse, err := wc.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"warehouse": warehouse})
}

func (wc *WarehouseController) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	warehouse, err := wc.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warehouse": warehouse})
}

func (wc *WarehouseController) List(c *gin.Context) {
	warehouses, err := wc.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": warehouses})
}

func (wc *WarehouseController) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var input services.UpdateWarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	warehouse, err := wc.svc.Update(c.Request.Context(), id, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warehouse": warehouse})
}

func (wc *WarehouseController) Delete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := wc.svc.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
