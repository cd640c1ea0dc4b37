// Package scheduler provides scheduled job execution for the verse bot.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gracechain/versebot/internal/models"
)

// Runner executes one bot run in a mode.
type Runner interface {
	Run(ctx context.Context, mode models.RunMode) error
}

// Job represents a scheduled job.
type Job struct {
	Name     string
	Schedule Schedule
	Handler  func(ctx context.Context) error
	LastRun  time.Time
	NextRun  time.Time
}

// Schedule defines when a job should run.
type Schedule struct {
	// For fixed-interval jobs
	Interval time.Duration

	// For time-of-day jobs (in UTC)
	Hour   int
	Minute int

	// Type of schedule
	Type ScheduleType
}

// ScheduleType defines the type of schedule.
type ScheduleType string

const (
	ScheduleInterval ScheduleType = "interval"
	ScheduleDaily    ScheduleType = "daily"
)

// Scheduler manages the posting schedule.
type Scheduler struct {
	runner Runner

	jobs    []*Job
	jobsMux sync.RWMutex

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a new scheduler.
func NewScheduler(runner Runner) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		runner: runner,
		jobs:   make([]*Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}

	s.registerDefaultJobs()

	return s
}

// registerDefaultJobs sets up the daily posting schedule. All times UTC.
func (s *Scheduler) registerDefaultJobs() {
	// Morning routine at 8:00
	s.AddJob(&Job{
		Name: "morning-routine",
		Schedule: Schedule{
			Type:   ScheduleDaily,
			Hour:   8,
			Minute: 0,
		},
		Handler: func(ctx context.Context) error {
			return s.runner.Run(ctx, models.ModeMorning)
		},
	})

	// Insight rounds at 10:00, 14:00, 18:00
	for _, hour := range []int{10, 14, 18} {
		s.AddJob(&Job{
			Name: fmt.Sprintf("insights-%02d00", hour),
			Schedule: Schedule{
				Type:   ScheduleDaily,
				Hour:   hour,
				Minute: 0,
			},
			Handler: func(ctx context.Context) error {
				return s.runner.Run(ctx, models.ModeInsights)
			},
		})
	}

	// Interaction rounds at 12:00, 16:00, 20:00
	for _, hour := range []int{12, 16, 20} {
		s.AddJob(&Job{
			Name: fmt.Sprintf("interactions-%02d00", hour),
			Schedule: Schedule{
				Type:   ScheduleDaily,
				Hour:   hour,
				Minute: 0,
			},
			Handler: func(ctx context.Context) error {
				return s.runner.Run(ctx, models.ModeInteractions)
			},
		})
	}
}

// AddJob adds a job to the scheduler.
func (s *Scheduler) AddJob(job *Job) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	job.NextRun = calculateNextRun(job.Schedule, time.Now().UTC())
	s.jobs = append(s.jobs, job)

	log.Info().
		Str("job", job.Name).
		Time("next_run", job.NextRun).
		Msg("Job registered")
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	log.Info().Int("jobs", len(s.jobs)).Msg("Starting scheduler")

	s.wg.Add(1)
	go s.jobLoop()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler")
	s.cancel()
	s.wg.Wait()
}

// jobLoop checks and runs scheduled jobs.
func (s *Scheduler) jobLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.checkAndRunJobs()
		}
	}
}

// checkAndRunJobs runs any jobs that are due. Due jobs run sequentially
// in one goroutine; the bot's run lock rejects overlap anyway, and
// back-to-back beats dropped.
func (s *Scheduler) checkAndRunJobs() {
	now := time.Now().UTC()

	s.jobsMux.Lock()
	var due []*Job
	for _, job := range s.jobs {
		if now.After(job.NextRun) || now.Equal(job.NextRun) {
			due = append(due, job)
			job.LastRun = now
			job.NextRun = calculateNextRun(job.Schedule, now)

			log.Debug().
				Str("job", job.Name).
				Time("next_run", job.NextRun).
				Msg("Job scheduled for next run")
		}
	}
	s.jobsMux.Unlock()

	if len(due) == 0 {
		return
	}

	go func() {
		for _, job := range due {
			s.runJob(job)
		}
	}()
}

// runJob executes a job.
func (s *Scheduler) runJob(job *Job) {
	log.Info().Str("job", job.Name).Msg("Running job")

	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Minute)
	defer cancel()

	if err := job.Handler(ctx); err != nil {
		log.Error().Err(err).Str("job", job.Name).Msg("Job failed")
	} else {
		log.Info().Str("job", job.Name).Msg("Job completed")
	}
}

// calculateNextRun calculates the next run time after now for a schedule.
func calculateNextRun(schedule Schedule, now time.Time) time.Time {
	switch schedule.Type {
	case ScheduleInterval:
		return now.Add(schedule.Interval)

	case ScheduleDaily:
		next := time.Date(now.Year(), now.Month(), now.Day(),
			schedule.Hour, schedule.Minute, 0, 0, time.UTC)
		if next.Before(now) || next.Equal(now) {
			next = next.Add(24 * time.Hour)
		}
		return next

	default:
		return now.Add(time.Hour)
	}
}

// RunJobNow runs a specific job immediately by name.
func (s *Scheduler) RunJobNow(name string) error {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	for _, job := range s.jobs {
		if job.Name == name {
			go s.runJob(job)
			return nil
		}
	}

	return fmt.Errorf("unknown job %q", name)
}

// GetJobStatus returns the status of all jobs.
func (s *Scheduler) GetJobStatus() []map[string]interface{} {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	status := make([]map[string]interface{}, len(s.jobs))
	for i, job := range s.jobs {
		status[i] = map[string]interface{}{
			"name":     job.Name,
			"last_run": job.LastRun,
			"next_run": job.NextRun,
		}
	}
	return status
}
