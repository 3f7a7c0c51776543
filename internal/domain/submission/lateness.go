package submission

import (
	"fmt"
	"time"

	"study_automation_bot/internal/domain/civil"
)

// Deadline returns the submission deadline for the given KST calendar date:
// that date at the given hour, minute zero, in KST.
func Deadline(date string, hour int) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", date, civil.KST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid submission date %q: %w", date, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, civil.KST), nil
}

// Lateness classifies a commit time against a deadline. A commit exactly at
// the deadline is on time. Late minutes are whole minutes past the deadline,
// zero when on time.
func Lateness(commit, deadline time.Time) (onTime bool, lateMinutes int) {
	if !commit.After(deadline) {
		return true, 0
	}
	return false, int(commit.Sub(deadline) / time.Minute)
}
