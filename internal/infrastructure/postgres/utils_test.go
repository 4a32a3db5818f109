package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockflow-api/internal/domain"
)

func TestMapWriteError(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code})
	}
	assert.ErrorIs(t, mapWriteError(wrap("23505"), "insert", domain.ErrConflict), domain.ErrConflict)
	assert.ErrorIs(t, mapWriteError(wrap("23505"), "insert", domain.ErrDuplicate), domain.ErrDuplicate)
	assert.ErrorIs(t, mapWriteError(wrap("23503"), "insert", domain.ErrConflict), domain.ErrReferentialIntegrity)
	assert.ErrorIs(t, mapWriteError(wrap("22P02"), "insert", domain.ErrConflict), domain.ErrReferentialIntegrity)
	assert.ErrorIs(t, mapWriteError(wrap("23514"), "update", domain.ErrConflict), domain.ErrInsufficientStock)

	other := errors.New("conexión cerrada")
	err := mapWriteError(other, "insert", domain.ErrConflict)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "x", derefString(nullString("x")))
	assert.Equal(t, "", derefString(nil))
}
