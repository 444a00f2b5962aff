package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUndefinedTable verifica si un error es por tabla inexistente (42P01), típico de un esquema sin migrar.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01" // undefined_table
	}
	return strings.Contains(err.Error(), "42P01")
}

// wrapErr añade contexto al error y una pista cuando falta el esquema.
func wrapErr(op string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("%s: tabla documents inexistente (ejecute `ledgerctl migrate`): %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
