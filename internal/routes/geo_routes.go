package routes

import (
	"delivery_tracker/internal/controllers"

	"github.com/gin-gonic/gin"
)

func CoordinateRoutes(r *gin.Engine) {
	coords := r.Group("/coordinates")
	{
		coords.POST("/", controllers.CreateCoordinate)
		coords.GET("/", controllers.ListCoordinates)
		coords.GET("/geojson", controllers.ListCoordinatesGeoJSON)
		coords.GET("/:id", controllers.GetCoordinate)
		coords.PUT("/:id", controllers.UpdateCoordinate)
		coords.DELETE("/:id", controllers.DeleteCoordinate)
	}

	users := r.Group("/users")
	{
		users.POST("/:id/coordinates", controllers.ReportPosition)
		users.GET("/:id/coordinates/latest", controllers.LatestCoordinateByUser)
	}
}
