package main

import (
	"log"
	"net/http"

	"delivery_tracker/internal/config"
	"delivery_tracker/internal/logger"
	"delivery_tracker/internal/middleware"
	"delivery_tracker/internal/models"
	"delivery_tracker/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup("geo")

	// Connect to the database and migrate the geo tables
	config.InitDB(&models.Coordinate{}, &models.CoordinateUser{})

	// Setup Gin router
	r := routes.SetupGeoRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.Env("HTTP_ADDR", "0.0.0.0:8083")
	log.Printf("🚀 Geo service running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
