package routes

import (
	"delivery_tracker/internal/controllers"
	"delivery_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func WarehouseRoutes(r *gin.Engine, wc *controllers.WarehouseController) {
	warehouses := r.Group("/warehouses")
	{
		warehouses.POST("/", middleware.RequireAuth(), wc.Create)
		warehouses.GET("/", wc.List)
		warehouses.GET("/:id", wc.Get)
		warehouses.PUT("/:id", middleware.RequireAuth(), wc.Update)
		warehouses.DELETE("/:id", middleware.RequireAuthWithRole("admin"), wc.Delete)

		// Stock lives under its warehouse.
		warehouses.GET("/:id/stock", controllers.ListStock)
		warehouses.GET("/:id/stock/:productId", controllers.GetStock)
		warehouses.POST("/:id/stock/:productId", middleware.RequireAuth(), controllers.AddStock)
		warehouses.POST("/:id/stock/:productId/consume", controllers.ConsumeStock)
	}
}
