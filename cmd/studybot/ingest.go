package main

import (
	"strings"

	"github.com/spf13/cobra"

	"study_automation_bot/internal/app"
	"study_automation_bot/internal/infra/notion"
)

func ingestCmd() *cobra.Command {
	var (
		paths  string
		event  string
		action string
		merged string
		repo   string
		ref    string
		sha    string
		prURL  string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Record changed submission files and post the daily digest",
		Long: `Parses a delimiter-separated list of changed repository paths, upserts one
submission record per study/<member>/<date>/... path, marks matching problem
cards done for merged changes, and posts the day's submission digest.

Repository metadata flags default from the CI environment
(GITHUB_REPOSITORY, GITHUB_REF, GITHUB_SHA, GITHUB_SERVER_URL).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}
			if err := d.cfg.Require("NOTION_DATABASE_ID", "NOTION_SUBMISSIONS_DB_ID", "DISCORD_WEBHOOK_GIT_URL"); err != nil {
				return err
			}

			if repo == "" {
				repo = d.cfg.GitHubRepository
			}
			if ref == "" {
				ref = d.cfg.GitHubRef
			}
			if sha == "" {
				sha = d.cfg.GitHubSHA
			}
			if prURL == "" && d.cfg.GitHubServerURL != "" {
				prURL = d.cfg.GitHubServerURL + "/" + d.cfg.GitHubRepository
			}

			notifier, err := d.notifier(d.cfg.WebhookGitURL)
			if err != nil {
				return err
			}

			svc := app.NewIngestService(
				notion.NewSubmissionRepository(d.notion, d.cfg.SubmissionsDBID, d.log),
				notion.NewProblemRepository(d.notion, d.cfg.ProblemsDBID, d.log),
				notifier,
				d.log,
				d.cfg.DeadlineHourKST,
				d.cfg.BoardURL,
			)

			return svc.Run(cmd.Context(), app.IngestInput{
				Paths:  paths,
				Event:  event,
				Action: action,
				Merged: strings.EqualFold(merged, "true"),
				Repo:   repo,
				Ref:    ref,
				SHA:    sha,
				PRURL:  prURL,
			})
		},
	}

	cmd.Flags().StringVar(&paths, "paths", "", "changed file paths, separated by spaces, commas or newlines")
	cmd.Flags().StringVar(&event, "event", "", "triggering event name (e.g. push, pull_request)")
	cmd.Flags().StringVar(&action, "action", "", "pull request action")
	cmd.Flags().StringVar(&merged, "merged", "false", "whether the pull request was merged (true/false)")
	cmd.Flags().StringVar(&repo, "repo", "", "source repository (owner/name)")
	cmd.Flags().StringVar(&ref, "ref", "", "source branch ref")
	cmd.Flags().StringVar(&sha, "sha", "", "commit SHA")
	cmd.Flags().StringVar(&prURL, "pr-url", "", "pull request URL")

	return cmd
}
