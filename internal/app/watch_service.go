package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"study_automation_bot/internal/domain/civil"
	"study_automation_bot/internal/domain/notify"
	"study_automation_bot/internal/domain/problem"
)

const watchPageSize = 50

var urlPattern = regexp.MustCompile(`(?i)https?://\S+`)

// WatchService pushes recently edited problem cards to the chat channel.
// Each card becomes one message; a failed send is logged and the remaining
// cards are still delivered.
type WatchService struct {
	problems problem.Repository
	notifier notify.Notifier
	log      *logrus.Logger
	lookback time.Duration
	now      func() time.Time
	sleep    func(time.Duration)
}

func NewWatchService(
	problems problem.Repository,
	notifier notify.Notifier,
	log *logrus.Logger,
	lookback time.Duration,
) *WatchService {
	return &WatchService{
		problems: problems,
		notifier: notifier,
		log:      log,
		lookback: lookback,
		now:      civil.Now,
		sleep:    time.Sleep,
	}
}

func (s *WatchService) Run(ctx context.Context) error {
	since := s.now().Add(-s.lookback)

	records, err := s.problems.ListRecentlyEdited(ctx, since, watchPageSize)
	if err != nil {
		return fmt.Errorf("list recently edited problems: %w", err)
	}
	if len(records) == 0 {
		s.log.Info("no recent board updates")
		return nil
	}

	for i, rec := range records {
		msg := notify.Message{Content: BuildProblemUpdate(rec)}
		if err := s.notifier.Send(ctx, msg); err != nil {
			s.log.Warnf("send board update %d/%d: %v", i+1, len(records), err)
		} else {
			s.log.Infof("board update sent %d/%d", i+1, len(records))
		}
		// Pace sends so a burst of edits doesn't trip the webhook rate limit.
		if i < len(records)-1 {
			s.sleep(time.Second)
		}
	}
	return nil
}

// BuildProblemUpdate renders one problem card as a chat message. The main
// link plus up to two links extracted from the free-text field are listed;
// any remainder is summarized as a count.
func BuildProblemUpdate(rec problem.Record) string {
	title := rec.Title
	if title == "" {
		title = "(No title)"
	}
	week := rec.Date
	if week == "" {
		week = "-"
	}
	submitter := rec.Submitters
	if submitter == "" {
		submitter = "-"
	}

	lines := []string{
		"📣 Problem board update 📣",
		"",
		"Scheduled for: " + week,
		"Problem setter: " + submitter,
	}

	links := ExtractLinks(rec.MoreLinks)
	idx := 1
	if rec.Link != "" {
		lines = append(lines, fmt.Sprintf("Problem %d: %s", idx, rec.Link))
		idx++
	}
	for i := 0; i < len(links) && i < 2; i++ {
		lines = append(lines, fmt.Sprintf("Problem %d: %s", idx, links[i]))
		idx++
	}
	if remain := len(links) - 2; remain > 0 {
		lines = append(lines, fmt.Sprintf("( %d more links on the card )", remain))
	}

	lines = append(lines, "", "— "+title)
	return strings.Join(lines, "\n")
}

// ExtractLinks pulls URLs out of free text, de-duplicating while preserving
// first-seen order.
func ExtractLinks(text string) []string {
	seen := make(map[string]bool)
	var links []string
	for _, u := range urlPattern.FindAllString(text, -1) {
		if seen[u] {
			continue
		}
		seen[u] = true
		links = append(links, u)
	}
	return links
}
