package main

import (
	"github.com/spf13/cobra"

	"study_automation_bot/internal/app"
	"study_automation_bot/internal/infra/notion"
)

func remindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Post the weekly problem-submitter reminder",
		Long: `Collects this week's problem cards (Monday through Sunday, KST), lists the
submitters and next week's submitters, and posts a reminder mentioning the
members whose chat IDs the roster resolves.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}
			if err := d.cfg.Require("NOTION_DATABASE_ID", "DISCORD_WEBHOOK_NOTION_URL"); err != nil {
				return err
			}

			members, err := d.loadRoster()
			if err != nil {
				return err
			}
			notifier, err := d.notifier(d.cfg.WebhookNotionURL)
			if err != nil {
				return err
			}

			svc := app.NewReminderService(
				notion.NewProblemRepository(d.notion, d.cfg.ProblemsDBID, d.log),
				members,
				notifier,
				d.log,
				d.cfg.BoardURL,
				d.cfg.ProblemSetterRoleID,
			)
			return svc.Run(cmd.Context())
		},
	}
}
