package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isCheckViolation verifica si un error es una violación de CHECK (23514), ej. stock < 0.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514" // check_violation
	}
	return false
}

// isInvalidTextRepresentation verifica si un parámetro no tiene el formato de la columna (22P02),
// ej. un id que no es UUID.
func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02" // invalid_text_representation
	}
	return false
}

// isUUID indica si s puede compararse contra una columna UUID.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// nullIfEmpty convierte "" en NULL para columnas opcionales con índice único.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
