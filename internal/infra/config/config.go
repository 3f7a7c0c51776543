package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application. Values are read
// once at startup and passed into constructors; nothing reads the
// environment afterwards.
type AppConfig struct {
	NotionAPIKey    string
	ProblemsDBID    string // problem card collection
	SubmissionsDBID string // submission log collection
	AttendanceDBID  string // optional attendance archive collection

	WebhookGitURL      string // submission digest channel
	WebhookWatchURL    string // problem board update channel
	WebhookReminderURL string // attendance summary channel
	WebhookNotionURL   string // weekly reminder channel

	BoardURL            string
	DeadlineHourKST     int
	MembersFile         string
	MembersCSV          string
	ProblemSetterRoleID string

	TelegramToken  string
	TelegramChatID int64

	LogLevel    string
	Environment string

	WatchLookbackHours int
	CronSpecAttendance string
	CronSpecReminder   string
	CronSpecWatch      string

	// CI-provided defaults for the ingest command's flags.
	GitHubRepository string
	GitHubRef        string
	GitHubSHA        string
	GitHubServerURL  string

	values map[string]string
}

// Load reads configuration from environment variables and a .env file (if
// present). godotenv never overrides variables already set in the process.
// Only NOTION_API_KEY is required globally; each command validates the rest
// of its needs via Require before touching the network.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{values: make(map[string]string)}

	cfg.NotionAPIKey = cfg.getenv("NOTION_API_KEY")
	if cfg.NotionAPIKey == "" {
		return nil, fmt.Errorf("NOTION_API_KEY is not set")
	}

	cfg.ProblemsDBID = cfg.getenv("NOTION_DATABASE_ID")
	cfg.SubmissionsDBID = cfg.getenv("NOTION_SUBMISSIONS_DB_ID")
	cfg.AttendanceDBID = cfg.getenv("NOTION_ATTENDANCE_DB_ID")

	cfg.WebhookGitURL = cfg.getenv("DISCORD_WEBHOOK_GIT_URL")
	cfg.WebhookWatchURL = cfg.getenv("DISCORD_WEBHOOK_URL")
	cfg.WebhookReminderURL = cfg.getenv("DISCORD_WEBHOOK_URL_REMINDER")
	cfg.WebhookNotionURL = cfg.getenv("DISCORD_WEBHOOK_NOTION_URL")

	cfg.BoardURL = cfg.getenv("NOTION_DB_URL")
	cfg.MembersFile = cfg.getenv("MEMBERS_FILE")
	if cfg.MembersFile == "" {
		cfg.MembersFile = "config/members.json"
	}
	cfg.MembersCSV = cfg.getenv("MEMBERS_CSV")
	cfg.ProblemSetterRoleID = cfg.getenv("ROLE_ID_PROBLEM_SETTER")

	var err error
	cfg.DeadlineHourKST, err = cfg.intenv("DEADLINE_HOUR_KST", 23)
	if err != nil {
		return nil, err
	}
	cfg.WatchLookbackHours, err = cfg.intenv("WATCH_LOOKBACK_HOURS", 12)
	if err != nil {
		return nil, err
	}

	cfg.TelegramToken = cfg.getenv("TELEGRAM_TOKEN")
	if chatID := cfg.getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}

	cfg.LogLevel = strings.ToLower(cfg.getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.Environment = strings.ToLower(cfg.getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.CronSpecAttendance = cfg.getenv("CRON_SPEC_ATTENDANCE")
	if cfg.CronSpecAttendance == "" {
		cfg.CronSpecAttendance = "0 22 * * *" // 22:00 KST daily
	}
	cfg.CronSpecReminder = cfg.getenv("CRON_SPEC_REMINDER")
	if cfg.CronSpecReminder == "" {
		cfg.CronSpecReminder = "0 9 * * 3" // 09:00 KST Wednesday
	}
	cfg.CronSpecWatch = cfg.getenv("CRON_SPEC_WATCH")
	if cfg.CronSpecWatch == "" {
		cfg.CronSpecWatch = "0 * * * *" // hourly
	}

	cfg.GitHubRepository = cfg.getenv("GITHUB_REPOSITORY")
	cfg.GitHubRef = cfg.getenv("GITHUB_REF")
	cfg.GitHubSHA = cfg.getenv("GITHUB_SHA")
	cfg.GitHubServerURL = cfg.getenv("GITHUB_SERVER_URL")

	return cfg, nil
}

// Require verifies that every named environment variable was non-empty at
// load time. Commands call this before any network activity so a missing
// setting is a clean startup failure.
func (c *AppConfig) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if c.values[n] == "" {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// TelegramMirrorEnabled reports whether the optional Telegram mirror channel
// is fully configured.
func (c *AppConfig) TelegramMirrorEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func (c *AppConfig) getenv(name string) string {
	v := os.Getenv(name)
	c.values[name] = v
	return v
}

func (c *AppConfig) intenv(name string, fallback int) (int, error) {
	v := c.getenv(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}
