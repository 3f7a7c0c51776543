package notion

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"study_automation_bot/internal/domain/problem"
)

// Problem collection property names. Name, Week, Submitter and Status are
// shared with the submission collection schema.
const (
	propNextSubmitters = "Next Submitters"
	propLink           = "Link"
	propMoreLinks      = "More Links"
)

// matchPageSize bounds how many cards a single member/date match fetches;
// a study day never carries more than a handful of cards.
const matchPageSize = 5

// ProblemRepository reads and transitions problem cards.
type ProblemRepository struct {
	client     *Client
	databaseID string
	log        *logrus.Logger
}

func NewProblemRepository(client *Client, databaseID string, log *logrus.Logger) *ProblemRepository {
	return &ProblemRepository{client: client, databaseID: databaseID, log: log}
}

func (r *ProblemRepository) ListByMemberAndDate(ctx context.Context, member, date string) ([]problem.Record, error) {
	query := &QueryRequest{
		Filter: And(
			TextContains(propSubmitter, member),
			DateEquals(propWeek, date),
		),
		PageSize: matchPageSize,
	}
	pages, err := r.client.QueryDatabase(ctx, r.databaseID, query)
	if err != nil {
		return nil, err
	}
	return pagesToProblems(pages), nil
}

// MarkDone sets the terminal status. Callers skip cards already done, so
// repeated invocations never produce an extra write.
func (r *ProblemRepository) MarkDone(ctx context.Context, id string) error {
	return r.client.UpdatePage(ctx, id, map[string]Property{
		propStatus: SelectProp(string(problem.StatusDone)),
	})
}

func (r *ProblemRepository) ListForWeek(ctx context.Context, start, end time.Time) ([]problem.Record, error) {
	query := &QueryRequest{
		Filter: And(
			DateOnOrAfter(propWeek, isoUTC(start)),
			DateBefore(propWeek, isoUTC(end)),
		),
		PageSize: 100,
	}
	pages, err := r.client.QueryDatabase(ctx, r.databaseID, query)
	if err != nil {
		return nil, err
	}
	return pagesToProblems(pages), nil
}

func (r *ProblemRepository) ListRecentlyEdited(ctx context.Context, since time.Time, limit int) ([]problem.Record, error) {
	query := &QueryRequest{
		Filter:   EditedOnOrAfter(isoUTC(since)),
		Sorts:    []Sort{{Timestamp: "last_edited_time", Direction: "ascending"}},
		PageSize: limit,
	}
	pages, err := r.client.QueryDatabase(ctx, r.databaseID, query)
	if err != nil {
		return nil, err
	}
	return pagesToProblems(pages), nil
}

func pagesToProblems(pages []Page) []problem.Record {
	records := make([]problem.Record, 0, len(pages))
	for _, p := range pages {
		records = append(records, problem.Record{
			ID:             p.ID,
			Title:          p.Properties[propName].PlainText(),
			Date:           p.Properties[propWeek].DateStart(),
			Submitters:     p.Properties[propSubmitter].PlainText(),
			NextSubmitters: p.Properties[propNextSubmitters].PlainText(),
			Link:           p.Properties[propLink].URL,
			MoreLinks:      p.Properties[propMoreLinks].PlainText(),
			Status:         problem.Status(p.Properties[propStatus].SelectName()),
		})
	}
	return records
}
