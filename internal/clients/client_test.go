package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery_tracker/internal/apperr"
)

func TestGetUserDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":9,"name":"Ana","role":"courier","city_id":3}}`))
	}))
	defer srv.Close()

	user, err := NewUsersClientAt(srv.URL).GetUser(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, uint(9), user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, uint(3), user.CityID)
}

func TestGetProductDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/4", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"product":{"ID":4,"name":"Cafe","sku":"CAF-500","status":"ACTIVE"}}`))
	}))
	defer srv.Close()

	product, err := NewProductsClientAt(srv.URL).GetProduct(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, uint(4), product.ID)
	assert.Equal(t, "ACTIVE", product.Status)
}

func TestSibling404MapsToNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewWarehousesClientAt(srv.URL).GetWarehouse(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSibling500MapsToDependency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewUsersClientAt(srv.URL).CouriersByCity(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))
}

func TestUnreachableSiblingMapsToDependency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	_, err := NewCoordinatesClientAt(srv.URL).LatestByUser(context.Background(), 4)
	require.Error(t, err)
	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))
}

func TestCreateCoordinatePostsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/coordinates", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"coordinate":{"ID":77,"latitude":6.24,"longitude":-75.58}}`))
	}))
	defer srv.Close()

	coord, err := NewCoordinatesClientAt(srv.URL).Create(context.Background(), CreateCoordinateInput{
		Latitude:  6.24,
		Longitude: -75.58,
		UserID:    12,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(77), coord.ID)
}

func TestFindOrCreateUserPrefersLookup(t *testing.T) {
	var sawPost bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			sawPost = true
		}
		w.Write([]byte(`{"user":{"id":5,"name":"Luis"}}`))
	}))
	defer srv.Close()

	client := NewUsersClientAt(srv.URL)
	user, err := client.FindOrCreateUser(context.Background(), 5, CreateUserInput{})
	require.NoError(t, err)
	assert.Equal(t, uint(5), user.ID)
	assert.False(t, sawPost)

	_, err = client.FindOrCreateUser(context.Background(), 0, CreateUserInput{Name: "Luis"})
	require.NoError(t, err)
	assert.True(t, sawPost)
}
