package controllers

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// writeWait bounds a single WebSocket write so a stuck connection
// cannot wedge its writer goroutine forever.
const writeWait = 5 * time.Second

// sendBuffer is the per-subscriber queue depth; updates beyond it are
// dropped for that subscriber only.
const sendBuffer = 16

// LocationHub manages WebSocket subscribers per courier channel and
// broadcasts locationUpdate events whenever a coordinate is created or
// updated for that courier.
type LocationHub struct {
	courierClients map[uint]map[*websocket.Conn]*subscriber
	broadcast      chan locationUpdate
	mu             sync.Mutex
}

// subscriber owns one connection. Writes go through its buffered send
// channel and a dedicated writer goroutine, so a slow connection loses
// its own updates but never stalls another subscriber or channel.
type subscriber struct {
	conn *websocket.Conn
	send chan locationUpdate
}

type locationUpdate struct {
	CourierID    uint    `json:"courier_id"`
	CoordinateID uint    `json:"coordinate_id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Event        string  `json:"event"` // always "locationUpdate"
}

// NewLocationHub creates a hub and starts its broadcasting goroutine.
func NewLocationHub() *LocationHub {
	hub := &LocationHub{
		courierClients: make(map[uint]map[*websocket.Conn]*subscriber),
		broadcast:      make(chan locationUpdate, 100),
	}
	go hub.run()
	return hub
}

// run fans each update out to the channel's subscriber queues. Sends
// are non-blocking, so the lock is never held across network IO.
func (h *LocationHub) run() {
	for msg := range h.broadcast {
		h.mu.Lock()
		for _, sub := range h.courierClients[msg.CourierID] {
			select {
			case sub.send <- msg:
			default:
				logrus.WithField("courier_id", msg.CourierID).Warn("Subscriber queue full, dropping location update.")
			}
		}
		h.mu.Unlock()
	}
}

func (h *LocationHub) writeLoop(courierID uint, sub *subscriber) {
	for msg := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteJSON(msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logrus.WithField("courier_id", courierID).Info("Subscriber connection closed during broadcast.")
			} else {
				logrus.WithError(err).WithField("courier_id", courierID).Warn("Failed to send location update to subscriber.")
			}
			h.Unsubscribe(courierID, sub.conn)
			sub.conn.Close()
			for range sub.send {
				// drain until Unsubscribe closes the channel
			}
			return
		}
	}
}

// Subscribe joins the channel named after a courier id and starts the
// connection's writer goroutine.
func (h *LocationHub) Subscribe(courierID uint, conn *websocket.Conn) {
	sub := &subscriber{conn: conn, send: make(chan locationUpdate, sendBuffer)}
	h.mu.Lock()
	if _, ok := h.courierClients[courierID]; !ok {
		h.courierClients[courierID] = make(map[*websocket.Conn]*subscriber)
	}
	h.courierClients[courierID][conn] = sub
	h.mu.Unlock()

	go h.writeLoop(courierID, sub)
	logrus.WithField("courier_id", courierID).Info("Subscriber joined courier channel.")
}

// Unsubscribe removes a client from the channel and stops its writer.
// Safe to call more than once for the same connection.
func (h *LocationHub) Unsubscribe(courierID uint, conn *websocket.Conn) {
	h.mu.Lock()
	if clients, ok := h.courierClients[courierID]; ok {
		if sub, ok := clients[conn]; ok {
			delete(clients, conn)
			close(sub.send)
		}
		if len(clients) == 0 {
			delete(h.courierClients, courierID)
		}
	}
	h.mu.Unlock()
	logrus.WithField("courier_id", courierID).Info("Subscriber left courier channel.")
}

// PublishLocation queues a locationUpdate for the courier's subscribers.
// Drops the event when the buffer is full rather than blocking a request.
func (h *LocationHub) PublishLocation(courierID, coordinateID uint, lat, lng float64) {
	msg := locationUpdate{
		CourierID:    courierID,
		CoordinateID: coordinateID,
		Latitude:     lat,
		Longitude:    lng,
		Event:        "locationUpdate",
	}
	select {
	case h.broadcast <- msg:
	default:
		logrus.Warn("Location broadcast channel full, dropping message.")
	}
}
