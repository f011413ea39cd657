package request

import (
	"errors"
	"net/http"

	requesterrors "hr-portal/internal/request/errors"
	"hr-portal/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var errDuplicateCode = apperror.New(apperror.CodeConflict, "request code already exists", http.StatusConflict)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return requesterrors.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_request_code" {
		return errDuplicateCode
	}

	return err
}
