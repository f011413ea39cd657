package requesterrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var (
	ErrUnknownKind = apperror.New(
		apperror.CodeNotFound,
		"unknown request type, expected vacation, fund or general",
		http.StatusNotFound,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrEmployeeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"employee_id is required",
		http.StatusBadRequest,
	)
	ErrNoEmployeeScope = apperror.New(
		apperror.CodeForbidden,
		"session is not linked to an employee",
		http.StatusForbidden,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrAmountRequired = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrFundTypeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"fund_type is required",
		http.StatusBadRequest,
	)
	ErrSubjectRequired = apperror.New(
		apperror.CodeInvalidInput,
		"subject is required",
		http.StatusBadRequest,
	)
	ErrInvalidPriority = apperror.New(
		apperror.CodeInvalidInput,
		"priority must be Low, Medium, High or Urgent",
		http.StatusBadRequest,
	)
	ErrInvalidVersion = apperror.New(
		apperror.CodeInvalidInput,
		"invalid version",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"only pending requests can be approved or rejected",
		http.StatusBadRequest,
	)
	ErrVersionConflict = apperror.ErrVersionConflict
)
