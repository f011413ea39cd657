package employee

import (
	"errors"
	"strings"

	employeeerrors "hr-portal/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// uniqueErrors maps a unique index, and the column it covers, to the domain
// error reported when an insert or update collides with it.
var uniqueErrors = []struct {
	index  string
	column string
	err    error
}{
	{index: "uq_employee_code", column: "employees.employee_code", err: employeeerrors.ErrEmployeeCodeAlreadyExists},
	{index: "uq_employee_email", column: "employees.email", err: employeeerrors.ErrEmployeeAlreadyExists},
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		for _, u := range uniqueErrors {
			if pgErr.ConstraintName == u.index {
				return u.err
			}
		}
		return err
	}

	// Drivers without typed errors (sqlite in tests, wrapped pgx errors)
	// only leave the message to go on.
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "unique constraint failed") {
		return err
	}
	for _, u := range uniqueErrors {
		if strings.Contains(msg, u.index) || strings.Contains(msg, u.column) {
			return u.err
		}
	}
	return err
}
