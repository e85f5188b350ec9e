package main

import (
	"log"
	"net/http"

	"delivery_tracker/internal/clients"
	"delivery_tracker/internal/config"
	"delivery_tracker/internal/controllers"
	"delivery_tracker/internal/logger"
	"delivery_tracker/internal/middleware"
	"delivery_tracker/internal/models"
	"delivery_tracker/internal/notify"
	"delivery_tracker/internal/routes"
	"delivery_tracker/internal/services"
)

func main() {
	// Initialize structured logging to file
	logger.Setup("orders")

	// Connect to the database and migrate the order tables
	config.InitDB(&models.Order{}, &models.OrderProduct{})

	orderService := services.NewOrderService(
		clients.NewUsersClient(),
		clients.NewWarehousesClient(),
		clients.NewProductsClient(),
		clients.NewCoordinatesClient(),
		notify.NewFromEnv(),
	)
	orderController := controllers.NewOrderController(orderService)

	// Setup Gin router
	r := routes.SetupOrdersRouter(orderController)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.Env("HTTP_ADDR", "0.0.0.0:8084")
	log.Printf("🚀 Orders service running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
