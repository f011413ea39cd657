package dashboarderrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var ErrEmployeeRequired = apperror.New(
	apperror.CodeForbidden,
	"Session is not linked to an employee",
	http.StatusForbidden,
)
