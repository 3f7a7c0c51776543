package problem

import (
	"context"
	"time"
)

// Status is the lifecycle state of a problem card.
type Status string

// StatusDone is the terminal state. The transition to done is monotonic:
// once a card is done it never reverts.
const StatusDone Status = "Done"

// Record is one problem card from the problem collection. Submitters and
// NextSubmitters carry comma-separated free text as entered on the board.
type Record struct {
	ID             string
	Title          string
	Date           string // scheduled KST calendar date, YYYY-MM-DD
	Submitters     string
	NextSubmitters string
	Link           string
	MoreLinks      string
	Status         Status
}

// Repository defines read and transition operations on the problem collection.
type Repository interface {
	// ListByMemberAndDate returns cards whose submitter text contains the
	// member (substring match) and whose scheduled date equals date.
	ListByMemberAndDate(ctx context.Context, member, date string) ([]Record, error)

	// MarkDone transitions a card to the terminal done state.
	MarkDone(ctx context.Context, id string) error

	// ListForWeek returns cards scheduled within [start, end).
	ListForWeek(ctx context.Context, start, end time.Time) ([]Record, error)

	// ListRecentlyEdited returns up to limit cards edited at or after since,
	// oldest edit first.
	ListRecentlyEdited(ctx context.Context, since time.Time, limit int) ([]Record, error)
}
