package routes

import (
	"delivery_tracker/internal/controllers"
	"delivery_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func CatalogRoutes(r *gin.Engine) {
	departments := r.Group("/departments")
	{
		departments.POST("/", middleware.RequireAuth(), controllers.CreateDepartment)
		departments.GET("/", controllers.ListDepartments)
		departments.GET("/:id", controllers.GetDepartment)
		departments.DELETE("/:id", middleware.RequireAuthWithRole("admin"), controllers.DeleteDepartment)
	}

	cities := r.Group("/cities")
	{
		cities.POST("/", middleware.RequireAuth(), controllers.CreateCity)
		cities.GET("/", controllers.ListCities)
		cities.GET("/:id", controllers.GetCity)
		cities.DELETE("/:id", middleware.RequireAuthWithRole("admin"), controllers.DeleteCity)
	}

	categories := r.Group("/categories")
	{
		categories.POST("/", middleware.RequireAuth(), controllers.CreateCategory)
		categories.GET("/", controllers.ListCategories)
		categories.DELETE("/:id", middleware.RequireAuthWithRole("admin"), controllers.DeleteCategory)
	}

	suppliers := r.Group("/suppliers")
	{
		suppliers.POST("/", middleware.RequireAuth(), controllers.CreateSupplier)
		suppliers.GET("/", controllers.ListSuppliers)
		suppliers.GET("/:id", controllers.GetSupplier)
		suppliers.DELETE("/:id", middleware.RequireAuthWithRole("admin"), controllers.DeleteSupplier)
	}
}
