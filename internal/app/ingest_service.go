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
	"study_automation_bot/internal/domain/submission"
)

// IngestInput carries one repository change event: the changed paths plus
// the event metadata the CI trigger provides.
type IngestInput struct {
	Paths  string // delimiter-separated changed file paths
	Event  string // e.g. "push", "pull_request"
	Action string // PR action, informational
	Merged bool   // PR merge flag
	Repo   string
	Ref    string
	SHA    string
	PRURL  string
}

// IngestService turns changed repository paths into submission records:
// parse, compute lateness, upsert one record per path, mark matching problem
// cards done on merged changes, then post the day's digest.
type IngestService struct {
	submissions  submission.Repository
	problems     problem.Repository
	notifier     notify.Notifier
	log          *logrus.Logger
	deadlineHour int
	boardURL     string
	now          func() time.Time
}

func NewIngestService(
	submissions submission.Repository,
	problems problem.Repository,
	notifier notify.Notifier,
	log *logrus.Logger,
	deadlineHour int,
	boardURL string,
) *IngestService {
	return &IngestService{
		submissions:  submissions,
		problems:     problems,
		notifier:     notifier,
		log:          log,
		deadlineHour: deadlineHour,
		boardURL:     boardURL,
		now:          civil.Now,
	}
}

func (s *IngestService) Run(ctx context.Context, in IngestInput) error {
	parsed := submission.ParseChangedPaths(in.Paths)
	if len(parsed) == 0 {
		s.log.Info("no study submissions detected")
		return nil
	}

	commitTime := s.now()
	// Problem cards are only completed for accepted changes: a merged PR or
	// a direct push to the main line. Draft PRs record the submission but
	// leave the card open.
	merged := in.Merged || in.Event == "push"

	prURL := in.PRURL
	if !strings.Contains(prURL, "pull") {
		prURL = ""
	}

	for _, p := range parsed {
		deadline, err := submission.Deadline(p.Date, s.deadlineHour)
		if err != nil {
			s.log.Warnf("skipping %s: %v", p.Path, err)
			continue
		}
		onTime, lateMin := submission.Lateness(commitTime, deadline)

		rec := &submission.Record{
			Member:      p.Member,
			Date:        p.Date,
			Problem:     p.Problem,
			FilePath:    p.Path,
			CommitTime:  commitTime,
			OnTime:      onTime,
			LateMinutes: lateMin,
			Repo:        in.Repo,
			Branch:      in.Ref,
			SHA:         in.SHA,
			PRURL:       prURL,
		}

		id, created, err := s.submissions.Upsert(ctx, rec)
		if err != nil {
			return fmt.Errorf("upsert submission %s: %w", p.Path, err)
		}
		op := "update"
		if created {
			op = "create"
		}
		s.log.WithFields(logrus.Fields{
			"member":  p.Member,
			"date":    p.Date,
			"problem": p.Problem,
			"op":      op,
		}).Infof("submission recorded: %s -> %s", p.Path, id)

		if merged {
			s.markProblemsDone(ctx, p.Member, p.Date)
		}
	}

	return s.postDailyDigest(ctx)
}

// markProblemsDone transitions the member's problem cards for the date to
// done. Item-level failures are logged and skipped so one bad card never
// aborts the rest of the batch.
func (s *IngestService) markProblemsDone(ctx context.Context, member, date string) {
	records, err := s.problems.ListByMemberAndDate(ctx, member, date)
	if err != nil {
		s.log.Warnf("list problems for %s on %s: %v", member, date, err)
		return
	}
	for _, rec := range records {
		if rec.Status == problem.StatusDone {
			continue
		}
		if err := s.problems.MarkDone(ctx, rec.ID); err != nil {
			s.log.Warnf("mark problem %s done: %v", rec.ID, err)
			continue
		}
		s.log.Infof("problem %s marked done for %s on %s", rec.ID, member, date)
	}
}

func (s *IngestService) postDailyDigest(ctx context.Context) error {
	today := civil.DateString(s.now())
	entries, err := s.submissions.ListByDate(ctx, today)
	if err != nil {
		return fmt.Errorf("list today's submissions: %w", err)
	}
	if len(entries) == 0 {
		s.log.Info("no submissions recorded for today")
		return nil
	}
	content := BuildDailyDigest(entries, today, s.boardURL)
	if err := s.notifier.Send(ctx, notify.Message{Content: content}); err != nil {
		return fmt.Errorf("post daily digest: %w", err)
	}
	return nil
}
