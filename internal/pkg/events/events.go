package events

import "time"

// Kafka topics for cross-service change events. Versioned so consumers
// can migrate independently of this backend.
const (
	AttendanceChangedTopic = "site.attendance.changed.v1"
	PayrollGeneratedTopic  = "site.payroll.generated.v1"
)

type AttendanceChangedEvent struct {
	EventType    string    `json:"event_type"`
	AttendanceID string    `json:"attendance_id"`
	WorkerID     string    `json:"worker_id"`
	SiteID       string    `json:"site_id"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type PayrollGeneratedEvent struct {
	EventType   string    `json:"event_type"`
	SiteID      string    `json:"site_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	RecordCount int       `json:"record_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}
