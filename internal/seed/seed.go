// Package seed fills empty tables with demo fixtures.
package seed

import (
	"context"
	"fmt"
	"time"

	"hr-portal/internal/employee"
	"hr-portal/internal/loader"
	"hr-portal/internal/payrollreport"
	"hr-portal/internal/recruitment"
	"hr-portal/internal/request"
	"hr-portal/internal/shared/counter"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Seeder struct {
	db      *gorm.DB
	counter counter.Repository
	delay   time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

func New(db *gorm.DB, counter counter.Repository, delay time.Duration, logger ...*zap.Logger) *Seeder {
	l := zap.L().Named("seed")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("seed")
	}
	return &Seeder{db: db, counter: counter, delay: delay, now: time.Now, logger: l}
}

// Run seeds every table that is still empty. Tables with rows are left
// alone, so running twice is harmless.
func (s *Seeder) Run(ctx context.Context) error {
	now := s.now().UTC()
	staff := Employees(now)

	if err := seedTable(ctx, s, "employees", staff, func(ctx context.Context, items []employee.Employee) error {
		for i := range items {
			seq, err := s.counter.GetNextValue(ctx, employee.CodeCounter)
			if err != nil {
				return err
			}
			items[i].EmployeeCode = employee.FormatCode(seq)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := seedTable(ctx, s, "requests", Requests(staff, now), func(ctx context.Context, items []request.Request) error {
		for i := range items {
			seq, err := s.counter.GetNextValue(ctx, items[i].Kind.CounterName())
			if err != nil {
				return err
			}
			items[i].Code = request.FormatCode(items[i].Kind, seq)
		}
		return nil
	}); err != nil {
		return err
	}

	steps := []func() error{
		func() error { return seedTable(ctx, s, "applicants", Applicants(now), nil) },
		func() error { return seedTable(ctx, s, "interviews", Interviews(now), nil) },
		func() error { return seedTable(ctx, s, "offers", Offers(now), nil) },
		func() error { return seedTable(ctx, s, "psychometrics", Psychometrics(now), nil) },
		func() error { return seedTable(ctx, s, "vacancies", Vacancies(now), nil) },
		func() error { return seedTable(ctx, s, "payroll_reports", payrollreport.Fixtures(), nil) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// seedTable loads items through a fixture source, so the configured delay
// applies, and inserts them when the table has no rows.
func seedTable[T any](ctx context.Context, s *Seeder, name string, items []T, prepare func(context.Context, []T) error) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return fmt.Errorf("count %s: %w", name, err)
	}
	if count > 0 {
		s.logger.Debug("table already seeded", zap.String("table", name), zap.Int64("rows", count))
		return nil
	}

	l := loader.New[T](name, loader.FixtureSource[T]{Items: items, Delay: s.delay}, s.logger)
	rows := l.Load(ctx)
	if err := l.Err(); err != nil {
		return fmt.Errorf("load %s fixtures: %w", name, err)
	}
	if len(rows) == 0 {
		return nil
	}

	if prepare != nil {
		if err := prepare(ctx, rows); err != nil {
			return fmt.Errorf("prepare %s fixtures: %w", name, err)
		}
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert %s fixtures: %w", name, err)
	}
	s.logger.Info("fixtures seeded", zap.String("table", name), zap.Int("rows", len(rows)))
	return nil
}

// Models lists the tables Run writes to.
func Models() []any {
	return append([]any{
		&employee.Employee{},
		&employee.Document{},
		&request.Request{},
		&payrollreport.Report{},
		&counter.Counter{},
	}, recruitment.Models()...)
}
