package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("missing field"), http.StatusBadRequest},
		{"not found", NotFound("order %d no encontrado", 7), http.StatusNotFound},
		{"conflict", Conflict("ya existe"), http.StatusConflict},
		{"dependency", Dependency("users service unreachable", errors.New("dial tcp: refused")), http.StatusBadGateway},
		{"internal", Internal("boom", errors.New("disk full")), http.StatusInternalServerError},
		{"plain error", errors.New("anything"), http.StatusInternalServerError},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"pg other", &pgconn.PgError{Code: "40001"}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestWrappedErrorsKeepKind(t *testing.T) {
	err := fmt.Errorf("creating warehouse: %w", Conflict("almacen ya existe"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsConflict(err))

	err = fmt.Errorf("loading city: %w", gorm.ErrRecordNotFound)
	assert.True(t, IsNotFound(err))
}

func TestDependencyUnwraps(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := Dependency("warehouse lookup failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "warehouse lookup failed")
}
