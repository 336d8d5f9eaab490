package commission

import (
	"errors"

	commissionerrors "go-salescrm/internal/commission/errors"

	"gorm.io/gorm"
)

func mapCommissionError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return commissionerrors.ErrCommissionNotFound
	}
	return err
}
