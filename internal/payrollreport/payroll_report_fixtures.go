package payrollreport

import "time"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Fixtures is the demo set seeded into an empty payroll_reports table.
func Fixtures() []Report {
	return []Report{
		{
			ID:              "PP-001",
			PeriodLabel:     "First half of January 2024",
			PeriodStart:     day(2024, time.January, 1),
			PeriodEnd:       day(2024, time.January, 15),
			PayCycle:        "biweekly",
			EmployeeCount:   1,
			GrossPayCents:   275000,
			DeductionsCents: 46731,
			NetPayCents:     228269,
			Status:          StatusPendingApproval,
			SubmittedBy:     "Payroll System",
			Version:         1,
		},
		{
			ID:              "PP-002",
			PeriodLabel:     "Week 2 of January 2024",
			PeriodStart:     day(2024, time.January, 8),
			PeriodEnd:       day(2024, time.January, 14),
			PayCycle:        "weekly",
			EmployeeCount:   1,
			GrossPayCents:   84000,
			DeductionsCents: 10920,
			NetPayCents:     73080,
			Status:          StatusApproved,
			SubmittedBy:     "Payroll System",
			Approver:        "María González",
			Version:         2,
		},
		{
			ID:              "PP-003",
			PeriodLabel:     "Week 3 of January 2024",
			PeriodStart:     day(2024, time.January, 15),
			PeriodEnd:       day(2024, time.January, 21),
			PayCycle:        "weekly",
			EmployeeCount:   1,
			GrossPayCents:   86400,
			DeductionsCents: 11232,
			NetPayCents:     75168,
			Status:          StatusDraft,
			SubmittedBy:     "Payroll System",
			Version:         1,
		},
	}
}
