package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/almacen-api/internal/domain"
)

// storageErr envuelve un error de pgx con contexto de la operación. Los
// fallos de conectividad (clase 08, errores de red, conexión cerrada) se
// mapean a domain.ErrStorageUnavailable para que el borde los distinga de un
// fallo de la consulta; el motor no reintenta en ningún caso.
func storageErr(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrStorageUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Clase 08: connection exception
		return len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08"
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
