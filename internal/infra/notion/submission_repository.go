package notion

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"study_automation_bot/internal/domain/civil"
	"study_automation_bot/internal/domain/submission"
)

// Submission collection property names.
const (
	propName       = "Name"
	propWeek       = "Week"
	propSubmitter  = "Submitter"
	propProblem    = "Problem"
	propFilePath   = "File Path"
	propCommitTime = "Commit Time"
	propStatus     = "Status"
	propRepoBranch = "Repo/Branch"
	propSHA        = "SHA"
	propPRURL      = "PR URL"
	propOnTime     = "On-time"
	propLateMin    = "Late (min)"
)

const statusSubmitted = "Submitted"

// SubmissionRepository persists submission records in the submission log
// collection.
type SubmissionRepository struct {
	client     *Client
	databaseID string
	log        *logrus.Logger
}

func NewSubmissionRepository(client *Client, databaseID string, log *logrus.Logger) *SubmissionRepository {
	return &SubmissionRepository{client: client, databaseID: databaseID, log: log}
}

// Upsert writes rec keyed by (date, member, file path). The store offers no
// unique constraint, so this is query-then-write: when the key already
// exists the first match is updated in place, otherwise a record is
// created. Extra matches beyond the first, should a race ever produce them,
// are left untouched.
func (r *SubmissionRepository) Upsert(ctx context.Context, rec *submission.Record) (string, bool, error) {
	query := &QueryRequest{
		Filter: And(
			DateEquals(propWeek, rec.Date),
			TextEquals(propSubmitter, rec.Member),
			TextEquals(propFilePath, rec.FilePath),
		),
		PageSize: 1,
	}
	pages, err := r.client.QueryDatabase(ctx, r.databaseID, query)
	if err != nil {
		return "", false, err
	}

	props := submissionProps(rec)
	if len(pages) > 0 {
		id := pages[0].ID
		if err := r.client.UpdatePage(ctx, id, props); err != nil {
			return "", false, err
		}
		rec.ID = id
		return id, false, nil
	}

	id, err := r.client.CreatePage(ctx, r.databaseID, props)
	if err != nil {
		return "", false, err
	}
	rec.ID = id
	return id, true, nil
}

// ListByDate returns the day's submissions ordered by commit time ascending,
// so the first occurrence of a member is their earliest submission.
func (r *SubmissionRepository) ListByDate(ctx context.Context, date string) ([]submission.Entry, error) {
	query := &QueryRequest{
		Filter:   DateEquals(propWeek, date),
		Sorts:    []Sort{{Property: propCommitTime, Direction: "ascending"}},
		PageSize: 100,
	}
	pages, err := r.client.QueryDatabase(ctx, r.databaseID, query)
	if err != nil {
		return nil, err
	}

	entries := make([]submission.Entry, 0, len(pages))
	for _, p := range pages {
		entry := submission.Entry{
			Member:  p.Properties[propSubmitter].PlainText(),
			Problem: p.Properties[propProblem].PlainText(),
		}
		if entry.Problem == "" {
			entry.Problem = "unassigned"
		}
		if start := p.Properties[propCommitTime].DateStart(); start != "" {
			t, err := time.Parse(time.RFC3339, start)
			if err != nil {
				r.log.Warnf("submission %s has unparseable commit time %q", p.ID, start)
			} else {
				entry.CommitTime = t.In(civil.KST)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func submissionProps(rec *submission.Record) map[string]Property {
	props := map[string]Property{
		propName:       TitleProp(rec.DisplayName()),
		propWeek:       DateProp(rec.Date),
		propSubmitter:  TextProp(rec.Member),
		propProblem:    TextProp(rec.Problem),
		propFilePath:   TextProp(rec.FilePath),
		propCommitTime: DateProp(isoUTC(rec.CommitTime)),
		propStatus:     SelectProp(statusSubmitted),
		propOnTime:     CheckboxProp(rec.OnTime),
		propLateMin:    NumberProp(float64(rec.LateMinutes)),
	}
	if rec.Repo != "" || rec.Branch != "" {
		props[propRepoBranch] = TextProp(rec.Repo + " / " + rec.Branch)
	}
	if rec.SHA != "" {
		props[propSHA] = TextProp(rec.SHA)
	}
	if rec.PRURL != "" {
		props[propPRURL] = URLProp(rec.PRURL)
	}
	return props
}
