package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})

	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestIsCheckViolation(t *testing.T) {
	assert.True(t, isCheckViolation(fmt.Errorf("update: %w", &pgconn.PgError{Code: "23514"})))
	assert.False(t, isCheckViolation(errors.New("23514")))
}

func TestIsInvalidTextRepresentation(t *testing.T) {
	assert.True(t, isInvalidTextRepresentation(fmt.Errorf("get sale: %w", &pgconn.PgError{Code: "22P02"})))
	assert.False(t, isInvalidTextRepresentation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isInvalidTextRepresentation(errors.New("22P02")))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("3f1c2a9e-8b7d-4c6e-9a1f-2b3c4d5e6f70"))
	assert.False(t, isUUID("abc"))
	assert.False(t, isUUID(""))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	if v := nullIfEmpty("900123456-1"); assert.NotNil(t, v) {
		assert.Equal(t, "900123456-1", *v)
	}
}
