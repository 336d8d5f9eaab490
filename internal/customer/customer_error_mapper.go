package customer

import (
	"errors"
	"strings"

	customererrors "go-salescrm/internal/customer/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapCustomerError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customererrors.ErrCustomerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		if strings.Contains(pgErr.ConstraintName, "owner") {
			return customererrors.ErrInvalidOwner
		}
		return customererrors.ErrInvalidChannel
	}

	return err
}
