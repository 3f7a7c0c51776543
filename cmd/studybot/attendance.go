package main

import (
	"github.com/spf13/cobra"

	"study_automation_bot/internal/app"
	"study_automation_bot/internal/domain/attendance"
	"study_automation_bot/internal/infra/notion"
)

func attendanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attendance",
		Short: "Post today's roll-call summary",
		Long: `Queries today's submissions, cross-references the member roster and posts a
present/absent line per member in roster order. When
NOTION_ATTENDANCE_DB_ID is set, one attendance record per member is
archived as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}
			if err := d.cfg.Require("NOTION_SUBMISSIONS_DB_ID", "DISCORD_WEBHOOK_URL_REMINDER"); err != nil {
				return err
			}

			members, err := d.loadRoster()
			if err != nil {
				return err
			}
			notifier, err := d.notifier(d.cfg.WebhookReminderURL)
			if err != nil {
				return err
			}

			var archive attendance.Repository
			if d.cfg.AttendanceDBID != "" {
				archive = notion.NewAttendanceRepository(d.notion, d.cfg.AttendanceDBID, d.log)
			}

			svc := app.NewAttendanceService(
				notion.NewSubmissionRepository(d.notion, d.cfg.SubmissionsDBID, d.log),
				archive,
				members,
				notifier,
				d.log,
			)
			return svc.Run(cmd.Context())
		},
	}
}
