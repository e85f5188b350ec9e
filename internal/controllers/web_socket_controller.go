package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"delivery_tracker/internal/middleware"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// HandleLocationWebSocket subscribes a dashboard client to the channel
// named after a courier id. Authentication uses a JWT passed as a query
// parameter since browsers cannot set headers on WebSocket upgrades.
func HandleLocationWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
		return
	}
	if _, err := middleware.ValidateToken(tokenString); err != nil {
		logrus.WithError(err).Warn("WebSocket connection attempt with invalid token.")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	courierID, ok := paramUint(c, "courierId")
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection.")
		return
	}
	defer conn.Close()

	locationHub.Subscribe(courierID, conn)
	defer locationHub.Unsubscribe(courierID, conn)

	// Subscribers only listen; the read loop just detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("courier_id", courierID).Info("Subscriber WebSocket closed.")
			} else {
				logrus.WithError(err).WithField("courier_id", courierID).Error("Error reading WebSocket message.")
			}
			break
		}
	}
}
