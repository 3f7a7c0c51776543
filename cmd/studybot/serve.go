package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"study_automation_bot/internal/app"
	"study_automation_bot/internal/domain/attendance"
	"study_automation_bot/internal/infra/notion"
	"study_automation_bot/internal/infra/scheduler"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the periodic jobs on an internal scheduler",
		Long: `Runs the attendance summary, weekly reminder and board watch jobs on cron
schedules (CRON_SPEC_ATTENDANCE, CRON_SPEC_REMINDER, CRON_SPEC_WATCH,
evaluated in KST) until interrupted. The one-shot subcommands remain the
surface external CI invokes; serve is for running the bot as a standalone
process instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}
			if err := d.cfg.Require(
				"NOTION_DATABASE_ID",
				"NOTION_SUBMISSIONS_DB_ID",
				"DISCORD_WEBHOOK_URL",
				"DISCORD_WEBHOOK_URL_REMINDER",
				"DISCORD_WEBHOOK_NOTION_URL",
			); err != nil {
				return err
			}

			members, err := d.loadRoster()
			if err != nil {
				return err
			}

			reminderNotifier, err := d.notifier(d.cfg.WebhookReminderURL)
			if err != nil {
				return err
			}
			weeklyNotifier, err := d.notifier(d.cfg.WebhookNotionURL)
			if err != nil {
				return err
			}
			watchNotifier, err := d.notifier(d.cfg.WebhookWatchURL)
			if err != nil {
				return err
			}

			submissions := notion.NewSubmissionRepository(d.notion, d.cfg.SubmissionsDBID, d.log)
			problems := notion.NewProblemRepository(d.notion, d.cfg.ProblemsDBID, d.log)

			var archive attendance.Repository
			if d.cfg.AttendanceDBID != "" {
				archive = notion.NewAttendanceRepository(d.notion, d.cfg.AttendanceDBID, d.log)
			}

			jobs := scheduler.New(
				d.log,
				app.NewAttendanceService(submissions, archive, members, reminderNotifier, d.log),
				app.NewReminderService(problems, members, weeklyNotifier, d.log, d.cfg.BoardURL, d.cfg.ProblemSetterRoleID),
				app.NewWatchService(problems, watchNotifier, d.log, time.Duration(d.cfg.WatchLookbackHours)*time.Hour),
				d.cfg.CronSpecAttendance,
				d.cfg.CronSpecReminder,
				d.cfg.CronSpecWatch,
			)
			if err := jobs.Start(); err != nil {
				return err
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			jobs.Stop()
			d.log.Info("shut down gracefully")
			return nil
		},
	}
}
