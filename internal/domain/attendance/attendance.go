package attendance

import (
	"context"
	"time"
)

// Status is the binary attendance classification. There are no partial
// states: a member either submitted today or did not.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Record is one member's attendance for one KST calendar date.
// FirstSubmitTime is the zero value when the member had no timestamped
// submission.
type Record struct {
	Member          string
	Date            string
	Status          Status
	FirstSubmitTime time.Time
}

// Repository persists attendance records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
}
