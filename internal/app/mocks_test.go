package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"study_automation_bot/internal/domain/attendance"
	"study_automation_bot/internal/domain/notify"
	"study_automation_bot/internal/domain/problem"
	"study_automation_bot/internal/domain/submission"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type fakeSubmissionRepo struct {
	upserted []*submission.Record
	keys     map[string]string // natural key -> id
	entries  []submission.Entry
	listErr  error
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{keys: make(map[string]string)}
}

func (f *fakeSubmissionRepo) Upsert(ctx context.Context, rec *submission.Record) (string, bool, error) {
	copied := *rec
	f.upserted = append(f.upserted, &copied)
	key := rec.Date + "|" + rec.Member + "|" + rec.FilePath
	if id, ok := f.keys[key]; ok {
		return id, false, nil
	}
	id := fmt.Sprintf("page-%d", len(f.keys)+1)
	f.keys[key] = id
	return id, true, nil
}

func (f *fakeSubmissionRepo) ListByDate(ctx context.Context, date string) ([]submission.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

type fakeProblemRepo struct {
	byMemberDate map[string][]problem.Record
	listErr      error
	markErr      map[string]error
	marked       []string
	week         []problem.Record
	weekStart    time.Time
	weekEnd      time.Time
	recent       []problem.Record
}

func newFakeProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{
		byMemberDate: make(map[string][]problem.Record),
		markErr:      make(map[string]error),
	}
}

func (f *fakeProblemRepo) ListByMemberAndDate(ctx context.Context, member, date string) ([]problem.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byMemberDate[member+"|"+date], nil
}

func (f *fakeProblemRepo) MarkDone(ctx context.Context, id string) error {
	if err := f.markErr[id]; err != nil {
		return err
	}
	f.marked = append(f.marked, id)
	return nil
}

func (f *fakeProblemRepo) ListForWeek(ctx context.Context, start, end time.Time) ([]problem.Record, error) {
	f.weekStart, f.weekEnd = start, end
	return f.week, nil
}

func (f *fakeProblemRepo) ListRecentlyEdited(ctx context.Context, since time.Time, limit int) ([]problem.Record, error) {
	return f.recent, nil
}

type fakeAttendanceRepo struct {
	created []*attendance.Record
	err     error
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, rec *attendance.Record) error {
	if f.err != nil {
		return f.err
	}
	copied := *rec
	f.created = append(f.created, &copied)
	return nil
}

type fakeNotifier struct {
	sent []notify.Message
	errs []error // consumed per send, nil entries succeed
}

func (f *fakeNotifier) Send(ctx context.Context, msg notify.Message) error {
	var err error
	if len(f.errs) > 0 {
		err = f.errs[0]
		f.errs = f.errs[1:]
	}
	if err != nil {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}
