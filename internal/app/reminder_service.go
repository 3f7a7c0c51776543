package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"study_automation_bot/internal/domain/civil"
	"study_automation_bot/internal/domain/notify"
	"study_automation_bot/internal/domain/problem"
	"study_automation_bot/internal/domain/roster"
)

// WeekWindow returns the civil week containing now: Monday 00:00 in now's
// location up to, but excluding, the following Monday 00:00.
func WeekWindow(now time.Time) (start, end time.Time) {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	start = time.Date(now.Year(), now.Month(), now.Day()-daysSinceMonday, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 7)
}

// ReminderService posts the weekly reminder: who is on the hook for this
// week's problems and who is up next, mentioning members whose chat IDs the
// roster resolves.
type ReminderService struct {
	problems problem.Repository
	roster   *roster.Roster
	notifier notify.Notifier
	log      *logrus.Logger
	boardURL string
	roleID   string
	now      func() time.Time
}

func NewReminderService(
	problems problem.Repository,
	members *roster.Roster,
	notifier notify.Notifier,
	log *logrus.Logger,
	boardURL, roleID string,
) *ReminderService {
	return &ReminderService{
		problems: problems,
		roster:   members,
		notifier: notifier,
		log:      log,
		boardURL: boardURL,
		roleID:   roleID,
		now:      civil.Now,
	}
}

func (s *ReminderService) Run(ctx context.Context) error {
	start, end := WeekWindow(s.now())

	records, err := s.problems.ListForWeek(ctx, start, end)
	if err != nil {
		return fmt.Errorf("list this week's problems: %w", err)
	}

	var submitters, nextSubmitters []string
	for _, rec := range records {
		submitters = append(submitters, problem.SplitNames(rec.Submitters)...)
		nextSubmitters = append(nextSubmitters, problem.SplitNames(rec.NextSubmitters)...)
	}
	submitters = problem.UniqueNames(submitters)
	nextSubmitters = problem.UniqueNames(nextSubmitters)

	if len(submitters) == 0 {
		s.log.Info("no problem card found for this week")
		msg := notify.Message{
			Content:  "🔔 No problem card for this week yet. Please check the board!",
			Mentions: notify.AllowedMentions{Parse: []string{}},
		}
		return s.notifier.Send(ctx, msg)
	}

	userIDs := s.roster.MentionIDs(submitters)

	lines := []string{
		"🔔 Wednesday reminder",
		"This week's problem submitters:",
	}
	for _, name := range submitters {
		lines = append(lines, "• "+name)
	}
	if s.boardURL != "" {
		lines = append(lines, "", "   ↳ "+s.boardURL)
	}
	if len(nextSubmitters) > 0 {
		lines = append(lines, "", "Next week: "+strings.Join(nextSubmitters, ", "))
	}

	if len(userIDs) > 0 {
		mentions := make([]string, len(userIDs))
		for i, id := range userIDs {
			mentions[i] = "<@" + id + ">"
		}
		lines = append(lines, "", fmt.Sprintf("%s please register or update this week's problems!", strings.Join(mentions, " ")))
	} else {
		roleMention := "@problem-setters"
		if s.roleID != "" {
			roleMention = "<@&" + s.roleID + ">"
		}
		lines = append(lines, "", fmt.Sprintf("%s please register or update this week's problems!", roleMention))
	}

	allowed := notify.AllowedMentions{Parse: []string{}}
	if len(userIDs) > 0 {
		allowed.Users = userIDs
	}
	if s.roleID != "" {
		allowed.Roles = []string{s.roleID}
	}

	msg := notify.Message{Content: strings.Join(lines, "\n"), Mentions: allowed}
	if err := s.notifier.Send(ctx, msg); err != nil {
		return fmt.Errorf("post weekly reminder: %w", err)
	}
	s.log.Infof("weekly reminder posted: %d submitters, %d mentioned", len(submitters), len(userIDs))
	return nil
}
