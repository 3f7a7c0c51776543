package notion

import (
	"context"

	"github.com/sirupsen/logrus"

	"study_automation_bot/internal/domain/attendance"
)

// Attendance collection property names.
const (
	propDate            = "Date"
	propMember          = "Member"
	propFirstSubmitTime = "First Submit Time"
)

// AttendanceRepository archives daily roll-call results. The collection is
// optional; callers only construct this when it is configured.
type AttendanceRepository struct {
	client     *Client
	databaseID string
	log        *logrus.Logger
}

func NewAttendanceRepository(client *Client, databaseID string, log *logrus.Logger) *AttendanceRepository {
	return &AttendanceRepository{client: client, databaseID: databaseID, log: log}
}

func (r *AttendanceRepository) Create(ctx context.Context, rec *attendance.Record) error {
	props := map[string]Property{
		propName:   TitleProp(rec.Date + "_" + rec.Member),
		propDate:   DateProp(rec.Date),
		propMember: TextProp(rec.Member),
		propStatus: SelectProp(string(rec.Status)),
	}
	if !rec.FirstSubmitTime.IsZero() {
		props[propFirstSubmitTime] = DateProp(isoUTC(rec.FirstSubmitTime))
	}
	_, err := r.client.CreatePage(ctx, r.databaseID, props)
	return err
}
