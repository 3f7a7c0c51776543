package app

import (
	"strings"
	"testing"
	"time"

	"study_automation_bot/internal/domain/civil"
	"study_automation_bot/internal/domain/submission"
)

func TestBuildDailyDigest(t *testing.T) {
	entries := []submission.Entry{
		{Member: "carol", Problem: "word_break", CommitTime: time.Date(2024, 3, 5, 21, 30, 0, 0, civil.KST)},
		{Member: "alice", Problem: "two_sum", CommitTime: time.Date(2024, 3, 5, 9, 12, 0, 0, civil.KST)},
		{Member: "bob", Problem: "two_sum", CommitTime: time.Date(2024, 3, 5, 8, 5, 0, 0, civil.KST)},
		{Member: "dan", Problem: "two_sum"}, // no timestamp
	}

	got := BuildDailyDigest(entries, "2024-03-05", "https://notion.so/board")
	lines := strings.Split(got, "\n")

	want := []string{
		"two_sum",
		"dan submitted",
		"bob submitted ( 2024-03-05 08:05 )",
		"alice submitted ( 2024-03-05 09:12 )",
		"",
		"word_break",
		"carol submitted ( 2024-03-05 21:30 )",
		"",
		"↳ today's submission log: https://notion.so/board",
	}
	if len(lines) != len(want) {
		t.Fatalf("digest has %d lines, want %d:\n%s", len(lines), len(want), got)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestBuildDailyDigest_NoBoardURL(t *testing.T) {
	entries := []submission.Entry{{Member: "alice", Problem: "two_sum"}}
	got := BuildDailyDigest(entries, "2024-03-05", "")
	if strings.Contains(got, "submission log") {
		t.Errorf("digest should omit the board footer: %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("digest should be trimmed")
	}
}
