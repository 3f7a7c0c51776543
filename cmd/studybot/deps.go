package main

import (
	"strings"

	"github.com/sirupsen/logrus"

	"study_automation_bot/internal/domain/notify"
	"study_automation_bot/internal/domain/roster"
	"study_automation_bot/internal/infra/config"
	"study_automation_bot/internal/infra/discord"
	"study_automation_bot/internal/infra/logger"
	"study_automation_bot/internal/infra/notion"
	"study_automation_bot/internal/infra/telegram"
)

// deps is the per-command wiring: configuration, logger and the document
// store client every command needs.
type deps struct {
	cfg    *config.AppConfig
	log    *logrus.Logger
	notion *notion.Client
}

func buildDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg)
	return &deps{
		cfg:    cfg,
		log:    log,
		notion: notion.NewClient(cfg.NotionAPIKey, log),
	}, nil
}

// notifier builds the chat delivery chain for one webhook URL: the Discord
// webhook as primary, plus the Telegram mirror when configured. Mirror
// failures are logged, never fatal.
func (d *deps) notifier(webhookURL string) (notify.Notifier, error) {
	primary := discord.NewWebhookNotifier(webhookURL, d.log)
	if !d.cfg.TelegramMirrorEnabled() {
		return primary, nil
	}
	mirror, err := telegram.NewMirrorNotifier(d.cfg.TelegramToken, d.cfg.TelegramChatID, d.log)
	if err != nil {
		return nil, err
	}
	return notify.Fanout{
		Primary: primary,
		Mirrors: []notify.Notifier{mirror},
		OnMirrorError: func(err error) {
			d.log.Warnf("telegram mirror: %v", err)
		},
	}, nil
}

// loadRoster reads the members file, falling back to the MEMBERS_CSV list
// when the file is absent or empty.
func (d *deps) loadRoster() (*roster.Roster, error) {
	r, err := roster.Load(d.cfg.MembersFile)
	if err != nil {
		return nil, err
	}
	if r.Len() == 0 && d.cfg.MembersCSV != "" {
		d.log.Infof("roster file %s empty, using MEMBERS_CSV", d.cfg.MembersFile)
		r = roster.FromNames(strings.Split(d.cfg.MembersCSV, ","))
	}
	return r, nil
}
