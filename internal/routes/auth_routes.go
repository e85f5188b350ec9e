package routes

import (
	"delivery_tracker/internal/controllers"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", controllers.SignupOperator)
		auth.POST("/login", controllers.LoginOperator)
	}
}
