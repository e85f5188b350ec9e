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
	"delivery_tracker/internal/routes"
	"delivery_tracker/internal/services"
)

func main() {
	// Initialize structured logging to file
	logger.Setup("inventory")

	// Connect to the database and migrate the inventory tables
	config.InitDB(
		&models.Department{},
		&models.City{},
		&models.Address{},
		&models.Warehouse{},
		&models.Category{},
		&models.Supplier{},
		&models.Product{},
		&models.SupplierProduct{},
		&models.WarehouseProduct{},
		&models.InventoryMovement{},
		&models.Operator{},
	)

	warehouseService := services.NewWarehouseService(clients.NewUsersClient())
	warehouseController := controllers.NewWarehouseController(warehouseService)

	// Setup Gin router
	r := routes.SetupInventoryRouter(warehouseController)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.Env("HTTP_ADDR", "0.0.0.0:8082")
	log.Printf("🚀 Inventory service running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
