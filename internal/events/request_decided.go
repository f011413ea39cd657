package events

import "time"

const RequestDecidedTopic = "hr.request.decided.v1"

const (
	EventTypeRequestDecided       = "request.decided"
	EventTypePayrollReportDecided = "payroll_report.decided"
)

// RequestDecidedEvent is emitted when an approver moves a request or a
// payroll report out of its pending state.
type RequestDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	RecordID   string    `json:"record_id"`
	Code       string    `json:"code"`
	Kind       string    `json:"kind"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Status     string    `json:"status"`
	Approver   string    `json:"approver"`
	Notes      string    `json:"notes,omitempty"`
	Version    int       `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
}
