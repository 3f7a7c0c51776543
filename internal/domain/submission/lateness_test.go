package submission

import (
	"testing"
	"time"

	"study_automation_bot/internal/domain/civil"
)

func TestDeadline(t *testing.T) {
	deadline, err := Deadline("2024-03-05", 23)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 5, 23, 0, 0, 0, civil.KST)
	if !deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", deadline, want)
	}
}

func TestDeadline_InvalidDate(t *testing.T) {
	if _, err := Deadline("not-a-date", 23); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestLateness(t *testing.T) {
	deadline := time.Date(2024, 3, 5, 23, 0, 0, 0, civil.KST)

	tests := []struct {
		name     string
		commit   time.Time
		onTime   bool
		lateMins int
	}{
		{"before deadline", time.Date(2024, 3, 5, 22, 59, 0, 0, civil.KST), true, 0},
		{"exactly at deadline", deadline, true, 0},
		{"45 minutes late", time.Date(2024, 3, 5, 23, 45, 0, 0, civil.KST), false, 45},
		{"partial minute floors", time.Date(2024, 3, 5, 23, 45, 59, 0, civil.KST), false, 45},
		{"next day", time.Date(2024, 3, 6, 1, 0, 0, 0, civil.KST), false, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onTime, lateMins := Lateness(tt.commit, deadline)
			if onTime != tt.onTime || lateMins != tt.lateMins {
				t.Errorf("Lateness() = (%v, %d), want (%v, %d)", onTime, lateMins, tt.onTime, tt.lateMins)
			}
		})
	}
}

func TestLateness_CustomHour(t *testing.T) {
	deadline, err := Deadline("2024-03-05", 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	onTime, lateMins := Lateness(time.Date(2024, 3, 5, 22, 0, 0, 0, civil.KST), deadline)
	if onTime || lateMins != 60 {
		t.Errorf("got (%v, %d), want (false, 60)", onTime, lateMins)
	}
}
