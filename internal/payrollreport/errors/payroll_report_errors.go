package payrollreporterrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var (
	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll report not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Only reports pending approval can be approved or rejected",
		http.StatusBadRequest,
	)
	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"Only draft reports can be submitted",
		http.StatusBadRequest,
	)
	ErrVersionConflict = apperror.ErrVersionConflict
)
