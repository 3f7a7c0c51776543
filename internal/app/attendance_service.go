package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"study_automation_bot/internal/domain/attendance"
	"study_automation_bot/internal/domain/civil"
	"study_automation_bot/internal/domain/notify"
	"study_automation_bot/internal/domain/roster"
	"study_automation_bot/internal/domain/submission"
)

// AttendanceService cross-references the static roster against today's
// submitters and posts a present/absent summary. When an attendance
// collection is configured, one record per member is archived as well.
type AttendanceService struct {
	submissions submission.Repository
	attendance  attendance.Repository // nil disables archiving
	roster      *roster.Roster
	notifier    notify.Notifier
	log         *logrus.Logger
	now         func() time.Time
}

func NewAttendanceService(
	submissions submission.Repository,
	attendanceRepo attendance.Repository,
	members *roster.Roster,
	notifier notify.Notifier,
	log *logrus.Logger,
) *AttendanceService {
	return &AttendanceService{
		submissions: submissions,
		attendance:  attendanceRepo,
		roster:      members,
		notifier:    notifier,
		log:         log,
		now:         civil.Now,
	}
}

func (s *AttendanceService) Run(ctx context.Context) error {
	today := civil.DateString(s.now())

	entries, err := s.submissions.ListByDate(ctx, today)
	if err != nil {
		return fmt.Errorf("list today's submissions: %w", err)
	}

	submitted := make(map[string]bool)
	firstTime := make(map[string]time.Time)
	for _, e := range entries {
		if e.Member == "" {
			continue
		}
		submitted[e.Member] = true
		// Entries arrive commit-time ascending, so the first timestamped
		// entry per member is their earliest submission.
		if _, ok := firstTime[e.Member]; !ok && !e.CommitTime.IsZero() {
			firstTime[e.Member] = e.CommitTime
		}
	}

	lines := []string{fmt.Sprintf("🗓️ %s attendance summary", today)}
	for _, member := range s.roster.Names() {
		rec := &attendance.Record{Member: member, Date: today}
		if submitted[member] {
			rec.Status = attendance.StatusPresent
			if t, ok := firstTime[member]; ok {
				rec.FirstSubmitTime = t
				lines = append(lines, fmt.Sprintf("✅ %s — submitted (%s)", member, t.In(civil.KST).Format("15:04")))
			} else {
				lines = append(lines, fmt.Sprintf("✅ %s — submitted", member))
			}
		} else {
			rec.Status = attendance.StatusAbsent
			lines = append(lines, fmt.Sprintf("❌ %s — absent", member))
		}

		if s.attendance != nil {
			if err := s.attendance.Create(ctx, rec); err != nil {
				return fmt.Errorf("archive attendance for %s: %w", member, err)
			}
		}
	}

	if err := s.notifier.Send(ctx, notify.Message{Content: strings.Join(lines, "\n")}); err != nil {
		return fmt.Errorf("post attendance summary: %w", err)
	}
	s.log.Infof("attendance summary posted for %s (%d members)", today, s.roster.Len())
	return nil
}
