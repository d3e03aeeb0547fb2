package repository

import (
	"errors"

	apperrors "residence/errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// postgres SQLSTATE codes
const (
	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"
	pqForeignKeyMissing  = "23503"
)

// translate maps driver and gorm errors to AppErrors. notFound is used for
// gorm.ErrRecordNotFound.
func translate(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewAppError(apperrors.ErrCodeDBNotFound, notFound.Error(), notFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewAppError(apperrors.ErrCodeDBDuplicate, "duplicate record", err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return apperrors.NewAppError(apperrors.ErrCodeDBDuplicate, pqErr.Message, err)
		case pqExclusionViolation:
			return apperrors.NewAppError(apperrors.ErrCodeBookingOverlap, pqErr.Message, apperrors.ErrBookingOverlap)
		case pqForeignKeyMissing:
			return apperrors.NewAppError(apperrors.ErrCodeDBNotFound, pqErr.Message, err)
		}
	}
	return apperrors.NewAppError(apperrors.ErrCodeDBError, "database error", err)
}
