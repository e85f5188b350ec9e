package routes

import (
	"delivery_tracker/internal/controllers"

	"github.com/gin-gonic/gin"
)

func WebSocketRoutes(r *gin.Engine) {
	wsRoutes := r.Group("/ws")
	{
		// Subscribers join the channel named after the courier id.
		wsRoutes.GET("/location/:courierId", controllers.HandleLocationWebSocket)
	}
}
