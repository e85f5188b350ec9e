package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delivery_tracker/internal/services"
)

// OrderController wraps the order service with its sibling-service
// dependencies (users, warehouses, coordinates) and the mailer.
type OrderController struct {
	svc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

func (oc *OrderController) Create(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := oc.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (oc *OrderController) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	order, err := oc.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// List supports ?status=PENDING|ASSIGNED filtering.
func (oc *OrderController) List(c *gin.Context) {
	orders, err := oc.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

type assignCourierInput struct {
	CourierID uint `json:"courier_id" binding:"required"`
}

// AssignCourier completes a PENDING order with a manually chosen courier.
func (oc *OrderController) AssignCourier(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var input assignCourierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := oc.svc.AssignCourier(c.Request.Context(), id, input.CourierID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (oc *OrderController) Delete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := oc.svc.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
