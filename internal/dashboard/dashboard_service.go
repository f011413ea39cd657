package dashboard

import (
	"context"
	"math"
	"sort"
	"time"

	"hr-portal/internal/attendance"
	dashboarderrors "hr-portal/internal/dashboard/errors"
	"hr-portal/internal/filter"
	"hr-portal/internal/loader"
	"hr-portal/internal/payrollreport"
	"hr-portal/internal/request"

	"go.uber.org/zap"
)

const recentRequestsLimit = 5

type Service interface {
	Employee(ctx context.Context, employeeID string) (EmployeeDashboard, error)
	HR(ctx context.Context) (HRDashboard, error)
	Payroll(ctx context.Context) (PayrollDashboard, error)
}

type Options struct {
	VacationDaysPerYear int
	SavingsFundLimit    int64 // cents
}

type service struct {
	requests   request.Service
	reports    payrollreport.Service
	attendance attendance.Service
	opts       Options
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	requests request.Service,
	reports payrollreport.Service,
	attendance attendance.Service,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		requests:   requests,
		reports:    reports,
		attendance: attendance,
		opts:       opts,
		now:        time.Now,
		logger:     l,
	}
}

// Employee never fails on a list load; a failed source shows up empty.
func (s *service) Employee(ctx context.Context, employeeID string) (EmployeeDashboard, error) {
	if employeeID == "" {
		return EmployeeDashboard{}, dashboarderrors.ErrEmployeeRequired
	}
	now := s.now()

	own := loader.New[request.RequestResponse]("own-requests",
		loader.SourceFunc[request.RequestResponse](func(ctx context.Context) ([]request.RequestResponse, error) {
			return s.requests.ListByEmployee(ctx, employeeID)
		}),
		s.logger,
	).Load(ctx)

	dash := EmployeeDashboard{
		EmployeeID:     employeeID,
		Vacation:       VacationBalanceFor(s.opts.VacationDaysPerYear, own, now.Year()),
		Fund:           FundUsageFor(s.opts.SavingsFundLimit, own, now.Year()),
		RecentRequests: own[:min(len(own), recentRequestsLimit)],
	}

	month, err := s.attendance.Calendar(ctx, employeeID, now.Year(), now.Month())
	if err != nil {
		s.logger.Error("calendar load failed", zap.String("employee_id", employeeID), zap.Error(err))
	} else {
		dash.Calendar = &month
	}
	return dash, nil
}

func (s *service) HR(ctx context.Context) (HRDashboard, error) {
	sources := make([]loader.Named[request.RequestResponse], 0, len(request.Kinds))
	for _, kind := range request.Kinds {
		kind := kind
		sources = append(sources, loader.Named[request.RequestResponse]{
			Name: string(kind),
			Source: loader.SourceFunc[request.RequestResponse](func(ctx context.Context) ([]request.RequestResponse, error) {
				return s.requests.List(ctx, kind, request.ListQuery{})
			}),
		})
	}
	all := loader.LoadAll(ctx, s.logger, sources...)

	dash := HRDashboard{
		Counts: CountByStatus(all),
		Pending: filter.Apply(all, "", nil,
			filter.By(request.StatusPending, func(r request.RequestResponse) string { return r.Status }),
		),
	}
	for _, r := range all {
		dash.Totals.add(r.Status)
	}
	// oldest first
	sort.SliceStable(dash.Pending, func(i, j int) bool {
		return dash.Pending[i].CreatedAt < dash.Pending[j].CreatedAt
	})
	return dash, nil
}

func (s *service) Payroll(ctx context.Context) (PayrollDashboard, error) {
	reports := loader.New[payrollreport.ReportResponse]("payroll-reports",
		loader.SourceFunc[payrollreport.ReportResponse](func(ctx context.Context) ([]payrollreport.ReportResponse, error) {
			return s.reports.List(ctx, payrollreport.ListQuery{})
		}),
		s.logger,
	).Load(ctx)

	dash := PayrollDashboard{
		Totals: map[string]ReportTotals{},
		PendingApproval: filter.Apply(reports, "", nil,
			filter.By(payrollreport.StatusPendingApproval, func(r payrollreport.ReportResponse) string { return r.Status }),
		),
	}
	for _, r := range reports {
		t := dash.Totals[r.Status]
		t.Count++
		t.GrossPay = roundCents(t.GrossPay + r.GrossPay)
		t.NetPay = roundCents(t.NetPay + r.NetPay)
		dash.Totals[r.Status] = t
	}
	return dash, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
