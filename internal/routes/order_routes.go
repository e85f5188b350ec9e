package routes

import (
	"delivery_tracker/internal/controllers"
	"delivery_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(r *gin.Engine, oc *controllers.OrderController) {
	orders := r.Group("/orders")
	{
		orders.POST("/", oc.Create)
		orders.GET("/", oc.List)
		orders.GET("/:id", oc.Get)
		orders.PATCH("/:id/courier", middleware.RequireAuth(), oc.AssignCourier)
		orders.DELETE("/:id", middleware.RequireAuthWithRole("admin"), oc.Delete)
	}
}
