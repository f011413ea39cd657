package seed

import (
	"strconv"
	"time"

	"hr-portal/internal/employee"
	"hr-portal/internal/recruitment"
	"hr-portal/internal/request"

	"github.com/google/uuid"
)

// fixtureID is stable across runs so fixtures can reference each other.
func fixtureID(kind string, n int) string {
	name := "hr-portal/" + kind + "/" + strconv.Itoa(n)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

// Employees are the demo staff. Codes are assigned when seeding.
func Employees(now time.Time) []employee.Employee {
	return []employee.Employee{
		{
			ID: fixtureID("employee", 1), FirstName: "Juan", LastName: "Pérez",
			Email: "juan.perez@example.com", Position: "Payroll Analyst", Department: "Finance",
			Plant: "Monterrey", HireDate: date(2019, time.March, 4),
			Collar: employee.CollarWhite, PayCycle: employee.PayCycleBiweekly, MonthlySalaryCents: 5500000,
			BankAccount: "012180001234567891", NSS: "12345678901", RFC: "PEJJ800101AB1",
		},
		{
			ID: fixtureID("employee", 2), FirstName: "María", LastName: "González",
			Email: "maria.gonzalez@example.com", Position: "HR Manager", Department: "Human Resources",
			Plant: "Monterrey", HireDate: date(2016, time.August, 15),
			Collar: employee.CollarWhite, PayCycle: employee.PayCycleBiweekly, MonthlySalaryCents: 7200000,
		},
		{
			ID: fixtureID("employee", 3), FirstName: "Carlos", LastName: "Ramírez",
			Email: "carlos.ramirez@example.com", Position: "Machine Operator", Department: "Production",
			Plant: "Saltillo", HireDate: date(2021, time.January, 11),
			Collar: employee.CollarBlue, PayCycle: employee.PayCycleWeekly, HourlyRateCents: 10500,
		},
		{
			ID: fixtureID("employee", 4), FirstName: "Lucía", LastName: "Hernández",
			Email: "lucia.hernandez@example.com", Position: "Quality Inspector", Department: "Quality",
			Plant: "Saltillo", HireDate: date(now.Year()-1, time.June, 1),
			Collar: employee.CollarBlue, PayCycle: employee.PayCycleWeekly, HourlyRateCents: 9800,
		},
	}
}

// Requests spread over the three kinds and statuses for the given staff.
// Codes are assigned when seeding.
func Requests(staff []employee.Employee, now time.Time) []request.Request {
	y := now.Year()
	who := func(i int) (string, string, string) {
		e := staff[i%len(staff)]
		return e.ID, e.FullName(), e.Department
	}

	var out []request.Request
	add := func(i int, kind request.Kind, status string, fill func(*request.Request)) {
		id, name, dept := who(i)
		r := request.Request{
			ID:           fixtureID("request", len(out)+1),
			Kind:         kind,
			EmployeeID:   id,
			EmployeeName: name,
			Department:   dept,
			Status:       status,
			Version:      1,
			CreatedAt:    now.AddDate(0, 0, -(30 - len(out)*3)),
		}
		if status != request.StatusPending {
			r.Approver = "María González"
			r.Version = 2
			r.DecidedAt = ptr(r.CreatedAt.Add(24 * time.Hour))
		}
		fill(&r)
		out = append(out, r)
	}

	add(0, request.KindVacation, request.StatusApproved, func(r *request.Request) {
		r.Vacation = request.VacationDetails{StartDate: ptr(date(y, time.January, 5)), EndDate: ptr(date(y, time.January, 9)), Days: 5, Reason: "Family trip"}
	})
	add(0, request.KindVacation, request.StatusPending, func(r *request.Request) {
		r.Vacation = request.VacationDetails{StartDate: ptr(date(y, time.December, 22)), EndDate: ptr(date(y, time.December, 26)), Days: 5}
	})
	add(2, request.KindVacation, request.StatusRejected, func(r *request.Request) {
		r.Vacation = request.VacationDetails{StartDate: ptr(date(y, time.April, 13)), EndDate: ptr(date(y, time.April, 15)), Days: 3}
		r.Notes = "Production peak"
	})
	add(0, request.KindFund, request.StatusApproved, func(r *request.Request) {
		r.Fund = request.FundDetails{FundType: "Savings", RequestType: "Loan", AmountCents: 150000, Reason: "Car repair"}
	})
	add(3, request.KindFund, request.StatusPending, func(r *request.Request) {
		r.Fund = request.FundDetails{FundType: "Savings", RequestType: "Withdrawal", AmountCents: 80000, Reason: "School fees"}
	})
	add(1, request.KindGeneral, request.StatusPending, func(r *request.Request) {
		r.General = request.GeneralDetails{RequestType: "Certificate", Subject: "Employment letter", Description: "Needed for a bank loan", Priority: request.PriorityMedium}
	})
	add(2, request.KindGeneral, request.StatusApproved, func(r *request.Request) {
		r.General = request.GeneralDetails{RequestType: "Equipment", Subject: "Safety boots", Description: "Size 27", Priority: request.PriorityHigh}
	})
	return out
}

func Applicants(now time.Time) []recruitment.Applicant {
	return []recruitment.Applicant{
		{ID: fixtureID("applicant", 1), Name: "Ana Torres", Email: "ana.torres@example.com", Phone: "+52 81 5555 0101", Position: "Payroll Analyst", Source: "LinkedIn", Status: "Screening", AppliedAt: now.AddDate(0, 0, -12), Version: 1},
		{ID: fixtureID("applicant", 2), Name: "Diego Flores", Email: "diego.flores@example.com", Position: "Machine Operator", Source: "Referral", Status: "Interview", AppliedAt: now.AddDate(0, 0, -9), Version: 1},
		{ID: fixtureID("applicant", 3), Name: "Sofía Castro", Email: "sofia.castro@example.com", Position: "Quality Inspector", Source: "Job board", Status: "New", AppliedAt: now.AddDate(0, 0, -2), Version: 1},
	}
}

func Interviews(now time.Time) []recruitment.Interview {
	return []recruitment.Interview{
		{ID: fixtureID("interview", 1), ApplicantName: "Diego Flores", Position: "Machine Operator", Interviewer: "María González", ScheduledAt: now.AddDate(0, 0, 2), Mode: "Onsite", Status: "Scheduled", Version: 1},
		{ID: fixtureID("interview", 2), ApplicantName: "Ana Torres", Position: "Payroll Analyst", Interviewer: "Juan Pérez", ScheduledAt: now.AddDate(0, 0, -3), Mode: "Video", Status: "Completed", Feedback: "Strong payroll background", Version: 1},
	}
}

func Offers(now time.Time) []recruitment.Offer {
	return []recruitment.Offer{
		{ID: fixtureID("offer", 1), CandidateName: "Ana Torres", Position: "Payroll Analyst", Department: "Finance", SalaryOfferedCents: 4800000, StartDate: date(now.Year(), now.Month(), 1).AddDate(0, 1, 0), Status: "Pending", Version: 1},
	}
}

func Psychometrics(now time.Time) []recruitment.PsychometricResult {
	return []recruitment.PsychometricResult{
		{ID: fixtureID("psychometric", 1), CandidateName: "Ana Torres", ExamType: "Cleaver", Score: 82, MaxScore: 100, TakenAt: now.AddDate(0, 0, -5), Status: "Passed", Version: 1},
		{ID: fixtureID("psychometric", 2), CandidateName: "Diego Flores", ExamType: "Terman", Score: 0, MaxScore: 100, TakenAt: now, Status: "Pending", Version: 1},
	}
}

func Vacancies(now time.Time) []recruitment.Vacancy {
	return []recruitment.Vacancy{
		{ID: fixtureID("vacancy", 1), Title: "Machine Operator", Department: "Production", Plant: "Saltillo", Openings: 4, Priority: "Critical", Status: "Open", OpenedAt: now.AddDate(0, 0, -20), Version: 1},
		{ID: fixtureID("vacancy", 2), Title: "Payroll Analyst", Department: "Finance", Plant: "Monterrey", Openings: 1, Priority: "High", Status: "Open", OpenedAt: now.AddDate(0, 0, -15), Version: 1},
		{ID: fixtureID("vacancy", 3), Title: "Forklift Driver", Department: "Logistics", Plant: "Saltillo", Openings: 2, Priority: "Medium", Status: "OnHold", OpenedAt: now.AddDate(0, -2, 0), Version: 1},
	}
}
