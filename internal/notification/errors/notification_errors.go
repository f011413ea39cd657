package notificationerrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Notification not found",
		http.StatusNotFound,
	)
	ErrEmployeeRequired = apperror.New(
		apperror.CodeForbidden,
		"Session is not linked to an employee",
		http.StatusForbidden,
	)
)
