package attendance

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	attendanceerrors "hr-portal/internal/attendance/errors"
	"hr-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	ListMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]AttendanceResponse, error)
	Calendar(ctx context.Context, employeeID string, year int, month time.Month) (Month, error)
}

type Options struct {
	// LateAfter is the HH:MM clock-in cutoff; later arrivals are LATE.
	LateAfter string
	// RandomCalendar classifies calendar days with RandomSource instead of
	// stored records.
	RandomCalendar bool
	Seed           int64
}

type service struct {
	db        *gorm.DB
	repo      Repository
	lateAfter time.Duration
	opts      Options
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, opts Options, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if opts.LateAfter == "" {
		opts.LateAfter = "09:15"
	}
	cutoff, err := time.Parse("15:04", opts.LateAfter)
	if err != nil {
		return nil, fmt.Errorf("invalid late_after %q: %w", opts.LateAfter, err)
	}
	return &service{
		db:        db,
		repo:      repo,
		lateAfter: time.Duration(cutoff.Hour())*time.Hour + time.Duration(cutoff.Minute())*time.Minute,
		opts:      opts,
		now:       time.Now,
		logger:    l,
	}, nil
}

// ClassifyClockIn returns LATE when t is strictly after the cutoff on its
// own day.
func ClassifyClockIn(t time.Time, cutoff time.Duration) string {
	sinceMidnight := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
	if sinceMidnight > cutoff {
		return StatusLate
	}
	return StatusPresent
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	if employeeID == "" {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeRequired
	}

	now := s.now()
	row := &Attendance{
		ID:             uuid.NewString(),
		EmployeeID:     employeeID,
		AttendanceDate: dateOnly(now),
		ClockIn:        now.UTC(),
		Status:         ClassifyClockIn(now, s.lateAfter),
		Source:         req.Source,
		Notes:          req.Notes,
	}
	if row.Source == "" {
		row.Source = "MANUAL"
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		_, err := qtx.FindByEmployeeAndDate(ctx, employeeID, now)
		if err == nil {
			return attendanceerrors.ErrAlreadyClockedIn
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return qtx.Create(ctx, row)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock in recorded",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", employeeID),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	if employeeID == "" {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeRequired
	}

	now := s.now()
	var row *Attendance
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		found, err := qtx.FindByEmployeeAndDate(ctx, employeeID, now)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrNotClockedIn
			}
			return err
		}
		if found.ClockOut != nil {
			return attendanceerrors.ErrAlreadyClockedOut
		}

		out := now.UTC()
		found.ClockOut = &out
		if req.Notes != nil {
			found.Notes = req.Notes
		}
		row = found
		return qtx.Update(ctx, found)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ListMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]AttendanceResponse, error) {
	rows, err := s.monthRecords(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Calendar(ctx context.Context, employeeID string, year int, month time.Month) (Month, error) {
	if month < time.January || month > time.December || year < 1 {
		return Month{}, attendanceerrors.ErrInvalidMonth
	}

	var source StatusSource
	if s.opts.RandomCalendar {
		source = NewRandomSource(calendarSeed(s.opts.Seed, employeeID, year, month))
	} else {
		rows, err := s.monthRecords(ctx, employeeID, year, month)
		if err != nil {
			return Month{}, err
		}
		source = NewRecordSource(rows, s.now())
	}
	return BuildMonth(year, month, source, s.now()), nil
}

func (s *service) monthRecords(ctx context.Context, employeeID string, year int, month time.Month) ([]Attendance, error) {
	if employeeID == "" {
		return nil, attendanceerrors.ErrEmployeeRequired
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.repo.FindByEmployeeBetween(ctx, employeeID, from, from.AddDate(0, 1, 0))
	if err != nil {
		s.logger.Error("load attendance month failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// calendarSeed keeps a demo calendar stable across reloads of one month.
func calendarSeed(base int64, employeeID string, year int, month time.Month) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%04d-%02d", employeeID, year, month)
	return base ^ int64(h.Sum64())
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		ClockIn:        a.ClockIn.Format(time.RFC3339),
		Status:         a.Status,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
