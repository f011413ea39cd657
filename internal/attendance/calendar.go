package attendance

import (
	"math/rand"
	"time"
)

type DayStatus string

const (
	DayPresent DayStatus = "present"
	DayLate    DayStatus = "late"
	DayAbsent  DayStatus = "absent"
	DayOff     DayStatus = "off"
	DayUnknown DayStatus = "unknown"
)

// StatusSource classifies one working day. BuildMonth never asks it about
// Sundays.
type StatusSource interface {
	StatusOf(day time.Time) DayStatus
}

// RandomSource draws 5% absent, 5% late and present otherwise. It stands
// in for real attendance when demo fixtures are enabled.
type RandomSource struct {
	rng *rand.Rand
}

func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSource) StatusOf(time.Time) DayStatus {
	p := s.rng.Float64()
	switch {
	case p < 0.05:
		return DayAbsent
	case p < 0.10:
		return DayLate
	default:
		return DayPresent
	}
}

// RecordSource classifies days from clock-in records. Days after today are
// unknown; past days without a record are absent.
type RecordSource struct {
	byDate map[string]string
	today  time.Time
}

func NewRecordSource(records []Attendance, today time.Time) *RecordSource {
	byDate := make(map[string]string, len(records))
	for _, r := range records {
		byDate[r.AttendanceDate.Format("2006-01-02")] = r.Status
	}
	return &RecordSource{byDate: byDate, today: dateOnly(today)}
}

func (s *RecordSource) StatusOf(day time.Time) DayStatus {
	day = dateOnly(day)
	if status, ok := s.byDate[day.Format("2006-01-02")]; ok {
		if status == StatusLate {
			return DayLate
		}
		return DayPresent
	}
	// today is not over yet
	if !day.Before(s.today) {
		return DayUnknown
	}
	return DayAbsent
}

type Day struct {
	Date    string    `json:"date"`
	Day     int       `json:"day"`
	Weekday string    `json:"weekday"`
	Status  DayStatus `json:"status"`
	IsToday bool      `json:"is_today"`
}

type Summary struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	Off     int `json:"off"`
	Unknown int `json:"unknown"`
}

type Month struct {
	Year    int      `json:"year"`
	Month   int      `json:"month"`
	Label   string   `json:"label"`
	Days    []Day    `json:"days"`
	Weeks   [][]*Day `json:"weeks"`
	Summary Summary  `json:"summary"`
}

// BuildMonth enumerates every day of the month, marks Sundays off and asks
// source about the rest. Weeks start on Sunday; cells outside the month are
// nil.
func BuildMonth(year int, month time.Month, source StatusSource, today time.Time) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysIn := first.AddDate(0, 1, -1).Day()
	today = dateOnly(today)

	m := Month{
		Year:  year,
		Month: int(month),
		Label: first.Format("January 2006"),
		Days:  make([]Day, 0, daysIn),
	}

	for d := 1; d <= daysIn; d++ {
		date := first.AddDate(0, 0, d-1)
		status := DayOff
		if date.Weekday() != time.Sunday {
			status = source.StatusOf(date)
		}
		m.Days = append(m.Days, Day{
			Date:    date.Format("2006-01-02"),
			Day:     d,
			Weekday: date.Weekday().String(),
			Status:  status,
			IsToday: date.Equal(today),
		})
		m.Summary.add(status)
	}

	lead := int(first.Weekday())
	cells := make([]*Day, lead, lead+daysIn+6)
	for i := range m.Days {
		cells = append(cells, &m.Days[i])
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}
	for i := 0; i < len(cells); i += 7 {
		m.Weeks = append(m.Weeks, cells[i:i+7])
	}
	return m
}

func (s *Summary) add(status DayStatus) {
	switch status {
	case DayPresent:
		s.Present++
	case DayLate:
		s.Late++
	case DayAbsent:
		s.Absent++
	case DayOff:
		s.Off++
	default:
		s.Unknown++
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
