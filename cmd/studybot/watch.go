package main

import (
	"time"

	"github.com/spf13/cobra"

	"study_automation_bot/internal/app"
	"study_automation_bot/internal/infra/notion"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Push recently edited problem cards to chat",
		Long: `Queries problem cards edited within the lookback window (default 12 hours,
WATCH_LOOKBACK_HOURS) and posts one message per card.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}
			if err := d.cfg.Require("NOTION_DATABASE_ID", "DISCORD_WEBHOOK_URL"); err != nil {
				return err
			}

			notifier, err := d.notifier(d.cfg.WebhookWatchURL)
			if err != nil {
				return err
			}

			svc := app.NewWatchService(
				notion.NewProblemRepository(d.notion, d.cfg.ProblemsDBID, d.log),
				notifier,
				d.log,
				time.Duration(d.cfg.WatchLookbackHours)*time.Hour,
			)
			return svc.Run(cmd.Context())
		},
	}
}
