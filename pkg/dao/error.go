package dao

import (
	"errors"

	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/arca-digital/complaints-book-backend/pkg/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		return pgError.Code == uniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// DBErrorToApi converts database and model validation errors to DaoErrors.
func DBErrorToApi(e error) *ce.DaoError {
	if e == nil {
		return nil
	}
	var daoError *ce.DaoError
	if errors.As(e, &daoError) {
		return daoError
	}
	var modelErr models.Error
	if errors.As(e, &modelErr) {
		return &ce.DaoError{Message: modelErr.Message, BadValidation: modelErr.Validation}
	}
	if errors.Is(e, gorm.ErrRecordNotFound) {
		return &ce.DaoError{Message: "Not found", NotFound: true, Err: e}
	}
	if isUniqueViolation(e) {
		return &ce.DaoError{Message: "Already exists", Conflict: true, Err: e}
	}
	var pgError *pgconn.PgError
	if errors.As(e, &pgError) {
		return &ce.DaoError{Message: pgError.Message, Err: e}
	}
	return &ce.DaoError{Message: e.Error(), Err: e}
}
