package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialHub stands up a server that subscribes every connection to the
// given courier channel and returns a connected client.
func dialHub(t *testing.T, hub *LocationHub, courierID uint) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Subscribe(courierID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastsToSubscribedChannel(t *testing.T) {
	hub := NewLocationHub()
	conn := dialHub(t, hub, 7)

	hub.PublishLocation(7, 99, 6.2442, -75.5812)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg locationUpdate
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, uint(7), msg.CourierID)
	assert.Equal(t, uint(99), msg.CoordinateID)
	assert.Equal(t, "locationUpdate", msg.Event)
	assert.Equal(t, 6.2442, msg.Latitude)
}

func TestHubDoesNotCrossChannels(t *testing.T) {
	hub := NewLocationHub()
	conn := dialHub(t, hub, 7)

	// An update for a different courier never reaches this channel.
	hub.PublishLocation(8, 100, 6.0, -75.0)

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var msg locationUpdate
	err := conn.ReadJSON(&msg)
	assert.Error(t, err)
}

func TestHubSlowSubscriberDoesNotStallOtherChannels(t *testing.T) {
	hub := NewLocationHub()

	// Never reads; once its queue fills, its updates are dropped.
	stuck := dialHub(t, hub, 1)
	_ = stuck
	for i := 0; i < 200; i++ {
		hub.PublishLocation(1, uint(i), 6.0, -75.0)
	}

	healthy := dialHub(t, hub, 2)
	hub.PublishLocation(2, 500, 6.1, -75.1)

	healthy.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg locationUpdate
	require.NoError(t, healthy.ReadJSON(&msg))
	assert.Equal(t, uint(2), msg.CourierID)
	assert.Equal(t, uint(500), msg.CoordinateID)

	// The stuck subscriber's channel still reaches a fresh subscriber.
	fresh := dialHub(t, hub, 1)
	hub.PublishLocation(1, 999, 6.2, -75.2)
	fresh.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, fresh.ReadJSON(&msg))
	assert.Equal(t, uint(999), msg.CoordinateID)
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewLocationHub()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Subscribe(5, conn)
		hub.Unsubscribe(5, conn)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	hub.PublishLocation(5, 1, 1, 1)

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var msg locationUpdate
	assert.Error(t, conn.ReadJSON(&msg))
}
