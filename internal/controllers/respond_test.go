package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"delivery_tracker/internal/apperr"
)

func performWithError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		respondErr(c, err)
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRespondErrStatusContract(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation is 400", apperr.Validation("bad payload"), http.StatusBadRequest},
		{"not found is 404", apperr.NotFound("order 3 not found"), http.StatusNotFound},
		{"conflict is 409", apperr.Conflict("warehouse already exists"), http.StatusConflict},
		{"dependency is 502", apperr.Dependency("users service unreachable", errors.New("refused")), http.StatusBadGateway},
		{"anything else is 500", errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performWithError(tt.err)
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestParamUintRejectsGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		id, ok := paramUint(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
