package app

import (
	"fmt"
	"sort"
	"strings"

	"study_automation_bot/internal/domain/civil"
	"study_automation_bot/internal/domain/submission"
)

// BuildDailyDigest renders the day's submissions: one block per problem,
// problems alphabetical, members within a block ordered by submission time
// ascending with untimestamped entries first.
func BuildDailyDigest(entries []submission.Entry, date, boardURL string) string {
	groups := make(map[string][]submission.Entry)
	for _, e := range entries {
		groups[e.Problem] = append(groups[e.Problem], e)
	}

	problems := make([]string, 0, len(groups))
	for p := range groups {
		problems = append(problems, p)
	}
	sort.Strings(problems)

	var lines []string
	for _, p := range problems {
		group := groups[p]
		// Zero commit times sort before every real timestamp.
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CommitTime.Before(group[j].CommitTime)
		})

		lines = append(lines, p)
		for _, e := range group {
			if e.CommitTime.IsZero() {
				lines = append(lines, fmt.Sprintf("%s submitted", e.Member))
			} else {
				t := e.CommitTime.In(civil.KST)
				lines = append(lines, fmt.Sprintf("%s submitted ( %s %s )", e.Member, date, t.Format("15:04")))
			}
		}
		lines = append(lines, "")
	}

	if boardURL != "" {
		lines = append(lines, "↳ today's submission log: "+boardURL)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
