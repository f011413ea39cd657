package recruitmenterrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Recruitment record not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status is not valid for this record",
		http.StatusBadRequest,
	)
	ErrVersionConflict = apperror.ErrVersionConflict
)
