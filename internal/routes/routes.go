package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"delivery_tracker/internal/controllers"
)

// newEngine builds a gin engine with the middleware every service shares.
func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())
	return r
}

// SetupGeoRouter wires the geo service: coordinates, courier position
// reports and the locationUpdate WebSocket channel.
func SetupGeoRouter() *gin.Engine {
	r := newEngine()

	CoordinateRoutes(r)
	WebSocketRoutes(r)

	return r
}

// SetupInventoryRouter wires the inventory service: reference catalog,
// warehouses with stock, products and the CSV bulk import. Operator
// auth also lives here since this service owns the operators table.
func SetupInventoryRouter(wc *controllers.WarehouseController) *gin.Engine {
	r := newEngine()

	AuthRoutes(r)
	CatalogRoutes(r)
	WarehouseRoutes(r, wc)
	ProductRoutes(r)

	return r
}

// SetupOrdersRouter wires the orders service.
func SetupOrdersRouter(oc *controllers.OrderController) *gin.Engine {
	r := newEngine()

	OrderRoutes(r, oc)

	return r
}
