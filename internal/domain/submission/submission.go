package submission

import (
	"context"
	"time"
)

// DefaultDeadlineHour is the KST hour after which a submission counts as late.
const DefaultDeadlineHour = 23

// Record is one detected submission: a single (member, date, file) occurrence.
// The natural key is (Date, Member, FilePath); the store holds at most one
// record per key.
type Record struct {
	ID          string
	Member      string
	Date        string // KST calendar date, YYYY-MM-DD
	Problem     string
	FilePath    string
	CommitTime  time.Time
	OnTime      bool
	LateMinutes int
	Repo        string
	Branch      string
	SHA         string
	PRURL       string
}

// DisplayName is the composite title stored on the record.
func (r *Record) DisplayName() string {
	return r.Date + "_" + r.Member
}

// Entry is the lightweight row used by the digest and roll-call builders.
// CommitTime is the zero value when the store holds no timestamp.
type Entry struct {
	Member     string
	Problem    string
	CommitTime time.Time
}

// Repository defines persistence operations for submission records.
type Repository interface {
	// Upsert queries the store by the record's natural key and updates the
	// first match in place, or creates a new record when none exists. It
	// returns the record ID and whether a create happened. There is no
	// store-side unique constraint, so two overlapping runs with the same
	// key can still race into duplicates; the sequential CI caller is the
	// only deployed writer.
	Upsert(ctx context.Context, rec *Record) (id string, created bool, err error)

	// ListByDate returns all submissions for the given KST calendar date,
	// ordered by commit time ascending.
	ListByDate(ctx context.Context, date string) ([]Entry, error)
}
