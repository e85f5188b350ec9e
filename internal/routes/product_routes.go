package routes

import (
	"delivery_tracker/internal/controllers"
	"delivery_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ProductRoutes(r *gin.Engine) {
	products := r.Group("/products")
	{
		products.POST("/", middleware.RequireAuth(), controllers.CreateProduct)
		products.GET("/", controllers.ListProducts)
		products.GET("/:id", controllers.GetProduct)
		products.PUT("/:id", middleware.RequireAuth(), controllers.UpdateProduct)
		products.DELETE("/:id", middleware.RequireAuthWithRole("admin"), controllers.DeleteProduct)
	}

	inventory := r.Group("/inventory")
	{
		inventory.GET("/movements", controllers.ListMovements)
		inventory.POST("/import", middleware.RequireAuth(), controllers.ImportProducts)
	}
}
