package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery_tracker/internal/apperr"
	"delivery_tracker/internal/clients"
	"delivery_tracker/internal/geo"
	"delivery_tracker/internal/notify"
)

// fakeUsers serves the courier directory endpoints used by assignment.
func fakeUsers(t *testing.T, couriers string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/couriers") {
			fmt.Fprintf(w, `{"data":%s}`, couriers)
			return
		}
		http.NotFound(w, r)
	}))
}

// fakeGeo serves latest-coordinate lookups from a per-courier table.
// Couriers absent from the table answer 404.
func fakeGeo(t *testing.T, positions map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// path: /users/{id}/coordinates/latest
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) >= 3 {
			if body, ok := positions[parts[2]]; ok {
				fmt.Fprintf(w, `{"coordinate":%s}`, body)
				return
			}
		}
		http.NotFound(w, r)
	}))
}

func newTestOrderService(users, warehouses, products, coordinates string) *OrderService {
	return NewOrderService(
		clients.NewUsersClientAt(users),
		clients.NewWarehousesClientAt(warehouses),
		clients.NewProductsClientAt(products),
		clients.NewCoordinatesClientAt(coordinates),
		&notify.LogMailer{},
	)
}

var target = geo.Point{Latitude: 6.2442, Longitude: -75.5812}

func TestNearestCourierPicksClosest(t *testing.T) {
	users := fakeUsers(t, `[
		{"id":1,"name":"Ana","email":"ana@x.co"},
		{"id":2,"name":"Beto","email":"beto@x.co"},
		{"id":3,"name":"Carla","email":"carla@x.co"}]`)
	defer users.Close()
	geoSrv := fakeGeo(t, map[string]string{
		"1": `{"ID":10,"latitude":6.40,"longitude":-75.40}`,
		"2": `{"ID":11,"latitude":6.245,"longitude":-75.582}`,
		"3": `{"ID":12,"latitude":6.10,"longitude":-75.70}`,
	})
	defer geoSrv.Close()

	svc := newTestOrderService(users.URL, users.URL, users.URL, geoSrv.URL)
	courier, err := svc.nearestCourier(context.Background(), 3, target)
	require.NoError(t, err)
	assert.Equal(t, uint(2), courier.CourierID)
	assert.Equal(t, "Beto", courier.Name)
}

func TestNearestCourierExcludesMissingCoordinates(t *testing.T) {
	users := fakeUsers(t, `[
		{"id":1,"name":"Ana"},
		{"id":2,"name":"Beto"}]`)
	defer users.Close()
	// Ana never reported a position; only Beto qualifies.
	geoSrv := fakeGeo(t, map[string]string{
		"2": `{"ID":11,"latitude":6.30,"longitude":-75.55}`,
	})
	defer geoSrv.Close()

	svc := newTestOrderService(users.URL, users.URL, users.URL, geoSrv.URL)
	courier, err := svc.nearestCourier(context.Background(), 3, target)
	require.NoError(t, err)
	assert.Equal(t, uint(2), courier.CourierID)
}

func TestNearestCourierNoneAvailable(t *testing.T) {
	empty := fakeUsers(t, `[]`)
	defer empty.Close()
	geoSrv := fakeGeo(t, nil)
	defer geoSrv.Close()

	svc := newTestOrderService(empty.URL, empty.URL, empty.URL, geoSrv.URL)
	_, err := svc.nearestCourier(context.Background(), 3, target)
	assert.ErrorIs(t, err, geo.ErrNoCourierAvailable)

	// Couriers exist but none has a usable position.
	users := fakeUsers(t, `[{"id":1,"name":"Ana"}]`)
	defer users.Close()
	svc = newTestOrderService(users.URL, users.URL, users.URL, geoSrv.URL)
	_, err = svc.nearestCourier(context.Background(), 3, target)
	assert.ErrorIs(t, err, geo.ErrNoCourierAvailable)
}

func TestNearestCourierBoundedFanout(t *testing.T) {
	const couriers = 40
	var entries []string
	positions := make(map[string]string, couriers)
	for i := 1; i <= couriers; i++ {
		entries = append(entries, fmt.Sprintf(`{"id":%d,"name":"c%d"}`, i, i))
		positions[fmt.Sprint(i)] = fmt.Sprintf(`{"ID":%d,"latitude":6.3,"longitude":%f}`, i, -75.5-float64(i)*0.01)
	}
	users := fakeUsers(t, "["+strings.Join(entries, ",")+"]")
	defer users.Close()

	var inFlight, peak int64
	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt64(&inFlight, 1)
		defer atomic.AddInt64(&inFlight, -1)
		for {
			old := atomic.LoadInt64(&peak)
			if cur <= old || atomic.CompareAndSwapInt64(&peak, old, cur) {
				break
			}
		}
		parts := strings.Split(r.URL.Path, "/")
		fmt.Fprintf(w, `{"coordinate":%s}`, positions[parts[2]])
	}))
	defer geoSrv.Close()

	svc := newTestOrderService(users.URL, users.URL, users.URL, geoSrv.URL)
	courier, err := svc.nearestCourier(context.Background(), 3, target)
	require.NoError(t, err)
	// id 1 has the smallest longitude offset, hence the shortest distance
	assert.Equal(t, uint(1), courier.CourierID)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(maxCoordinateFanout))
}

func TestValidateStock(t *testing.T) {
	inventory := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/products/10"), strings.HasSuffix(r.URL.Path, "/products/11"):
			fmt.Fprint(w, `{"product":{"ID":10,"status":"ACTIVE"}}`)
		case strings.HasSuffix(r.URL.Path, "/products/13"):
			fmt.Fprint(w, `{"product":{"ID":13,"status":"DISCONTINUED"}}`)
		case strings.HasSuffix(r.URL.Path, "/stock/10"):
			fmt.Fprint(w, `{"stock":{"warehouse_id":1,"product_id":10,"stock_quantity":5}}`)
		case strings.HasSuffix(r.URL.Path, "/stock/11"):
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer inventory.Close()

	svc := newTestOrderService(inventory.URL, inventory.URL, inventory.URL, inventory.URL)

	// covered
	err := svc.validateStock(context.Background(), 1, []OrderLine{{ProductID: 10, Amount: 5}})
	assert.NoError(t, err)

	// more than available
	err = svc.validateStock(context.Background(), 1, []OrderLine{{ProductID: 10, Amount: 6}})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// not stocked at all
	err = svc.validateStock(context.Background(), 1, []OrderLine{{ProductID: 11, Amount: 1}})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// inventory outage is a dependency failure, not a validation one
	err = svc.validateStock(context.Background(), 1, []OrderLine{{ProductID: 12, Amount: 1}})
	require.Error(t, err)
	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))

	// discontinued products cannot be ordered even while stocked
	err = svc.validateStock(context.Background(), 1, []OrderLine{{ProductID: 13, Amount: 1}})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

// countingMailer records confirmations instead of sending them.
type countingMailer struct {
	sent     int
	statuses []string
}

func (m *countingMailer) SendOrderConfirmation(to, customerName string, orderID uint, status string) error {
	m.sent++
	m.statuses = append(m.statuses, status)
	return nil
}

func TestCreateOrderManualBranchSendsOneEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/products/"):
			fmt.Fprint(w, `{"product":{"ID":10,"status":"ACTIVE"}}`)
		case strings.Contains(r.URL.Path, "/stock/") && r.Method == http.MethodGet:
			fmt.Fprint(w, `{"stock":{"warehouse_id":1,"product_id":10,"stock_quantity":50}}`)
		case strings.HasSuffix(r.URL.Path, "/consume"):
			fmt.Fprint(w, `{"stock":{"warehouse_id":1,"product_id":10,"stock_quantity":40}}`)
		case strings.HasPrefix(r.URL.Path, "/warehouses/"):
			fmt.Fprint(w, `{"warehouse":{"ID":1,"name":"Central","address":{"city_id":3}}}`)
		case r.URL.Path == "/coordinates":
			fmt.Fprint(w, `{"coordinate":{"ID":70,"latitude":6.3,"longitude":-75.6}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	rec := withDryRunDB(t)
	mailer := &countingMailer{}
	svc := NewOrderService(
		clients.NewUsersClientAt(srv.URL),
		clients.NewWarehousesClientAt(srv.URL),
		clients.NewProductsClientAt(srv.URL),
		clients.NewCoordinatesClientAt(srv.URL),
		mailer,
	)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		CustomerName:    "Sara",
		CustomerEmail:   "sara@x.co",
		DeliveryAddress: "Calle 10 #43-12",
		Latitude:        6.21,
		Longitude:       -75.57,
		WarehouseID:     1,
		AutoAssign:      false,
		Products: []OrderLine{
			{ProductID: 10, Amount: 2},
			{ProductID: 11, Amount: 1},
			{ProductID: 12, Amount: 3},
		},
	})
	require.NoError(t, err)

	// One confirmation for the whole order, not one per line item.
	assert.Equal(t, 1, mailer.sent)
	require.Len(t, mailer.statuses, 1)
	assert.Equal(t, "PENDING", mailer.statuses[0])

	// The manual branch persists PENDING with the unassigned sentinel.
	stmts := strings.Join(rec.statements(), "\n")
	assert.Contains(t, stmts, "INSERT")
	assert.Contains(t, stmts, "PENDING")
	assert.NotContains(t, stmts, "ASSIGNED")
}

func TestAssignCourierGuardsPendingStatus(t *testing.T) {
	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user":{"id":5,"name":"Luis","email":"luis@x.co"}}`)
	}))
	defer users.Close()

	rec := withDryRunDB(t)
	svc := newTestOrderService(users.URL, users.URL, users.URL, users.URL)

	_, err := svc.AssignCourier(context.Background(), 3, 5)
	require.Error(t, err) // dry run affects zero rows, i.e. a lost race
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// The transition must be guarded in the statement itself: only a
	// PENDING row may move to ASSIGNED.
	stmts := strings.Join(rec.statements(), "\n")
	assert.Contains(t, stmts, "UPDATE")
	assert.Contains(t, stmts, "PENDING")
	assert.Contains(t, stmts, "ASSIGNED")
}
