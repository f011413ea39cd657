package employeeerrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee code already exists",
		http.StatusConflict,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrMonthlySalaryRequired = apperror.New(
		apperror.CodeInvalidInput,
		"monthly_salary is required for white collar employees",
		http.StatusBadRequest,
	)
	ErrHourlyRateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"hourly_rate is required for blue collar employees",
		http.StatusBadRequest,
	)
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)
	ErrDocumentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"file is required",
		http.StatusBadRequest,
	)
	ErrDocumentType = apperror.New(
		apperror.CodeInvalidInput,
		"file type not allowed, upload a PDF, image, Word, Excel or text file",
		http.StatusBadRequest,
	)
	ErrDocumentTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"file exceeds the upload size limit",
		http.StatusBadRequest,
	)
)
