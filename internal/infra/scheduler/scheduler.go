// Package scheduler runs the periodic jobs when the bot operates in serve
// mode instead of being triggered one-shot by external CI.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"study_automation_bot/internal/domain/civil"
)

// Runner is a one-shot job: each app service used in serve mode implements
// it.
type Runner interface {
	Run(ctx context.Context) error
}

const jobTimeout = 5 * time.Minute

// JobScheduler drives the attendance summary, weekly reminder and board
// watch jobs on cron specs evaluated in KST.
type JobScheduler struct {
	engine *cron.Cron
	log    *logrus.Logger

	attendance Runner
	reminder   Runner
	watch      Runner

	specAttendance string
	specReminder   string
	specWatch      string
}

func New(log *logrus.Logger, attendance, reminder, watch Runner, specAttendance, specReminder, specWatch string) *JobScheduler {
	return &JobScheduler{
		engine:         cron.New(cron.WithLocation(civil.KST)),
		log:            log,
		attendance:     attendance,
		reminder:       reminder,
		watch:          watch,
		specAttendance: specAttendance,
		specReminder:   specReminder,
		specWatch:      specWatch,
	}
}

// Start registers the jobs and starts the cron engine.
func (s *JobScheduler) Start() error {
	jobs := []struct {
		name   string
		spec   string
		runner Runner
	}{
		{"attendance summary", s.specAttendance, s.attendance},
		{"weekly reminder", s.specReminder, s.reminder},
		{"board watch", s.specWatch, s.watch},
	}

	for _, j := range jobs {
		j := j
		if _, err := s.engine.AddFunc(j.spec, func() {
			s.log.Infof("cron job triggered: %s", j.name)
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if err := j.runner.Run(ctx); err != nil {
				s.log.Errorf("%s job failed: %v", j.name, err)
			}
		}); err != nil {
			return err
		}
		s.log.Infof("scheduled %s with spec %q", j.name, j.spec)
	}

	s.engine.Start()
	s.log.Info("job scheduler started")
	return nil
}

// Stop stops scheduling and waits for any running job to finish.
func (s *JobScheduler) Stop() {
	s.log.Info("stopping job scheduler...")
	<-s.engine.Stop().Done()
	s.log.Info("job scheduler stopped")
}
