package dashboard

import (
	"math"
	"strconv"
	"strings"

	"hr-portal/internal/request"
)

// Percent returns used/total as a percentage rounded to one decimal and
// clamped to 0..100. A zero total yields 0.
func Percent(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	p := math.Round(used/total*1000) / 10
	return math.Max(0, math.Min(100, p))
}

// VacationBalanceFor sums approved vacation days starting in year.
func VacationBalanceFor(allowance int, requests []request.RequestResponse, year int) VacationBalance {
	used := 0
	for _, r := range requests {
		if r.Type != request.KindVacation || r.Status != request.StatusApproved {
			continue
		}
		if !inYear(r.StartDate, year) {
			continue
		}
		used += r.Days
	}
	return VacationBalance{
		Allowance:   allowance,
		Used:        used,
		Remaining:   max(allowance-used, 0),
		PercentUsed: Percent(float64(used), float64(allowance)),
	}
}

// FundUsageFor sums approved fund requests created in year against the
// savings fund limit.
func FundUsageFor(limitCents int64, requests []request.RequestResponse, year int) FundUsage {
	var usedCents int64
	for _, r := range requests {
		if r.Type != request.KindFund || r.Status != request.StatusApproved {
			continue
		}
		if !inYear(r.CreatedAt, year) {
			continue
		}
		usedCents += int64(math.Round(r.Amount * 100))
	}
	return FundUsage{
		Limit:       float64(limitCents) / 100,
		Used:        float64(usedCents) / 100,
		Remaining:   float64(max(limitCents-usedCents, 0)) / 100,
		PercentUsed: Percent(float64(usedCents), float64(limitCents)),
	}
}

// CountByStatus tallies requests per kind and per status.
func CountByStatus(requests []request.RequestResponse) map[request.Kind]StatusCounts {
	out := make(map[request.Kind]StatusCounts, len(request.Kinds))
	for _, k := range request.Kinds {
		out[k] = StatusCounts{}
	}
	for _, r := range requests {
		c := out[r.Type]
		c.add(r.Status)
		out[r.Type] = c
	}
	return out
}

// inYear accepts both dates and RFC3339 timestamps.
func inYear(date string, year int) bool {
	return strings.HasPrefix(date, strconv.Itoa(year)+"-")
}
