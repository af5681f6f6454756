package movies

import (
	"context"
	"fmt"
	"time"

	"movieapp/pkg/logger"

	"github.com/go-co-op/gocron/v2"
)

const weekCacheJob = "movies.week_cache_warmup"

// JobProcessor keeps the week listing warm so recommendation reads hit Redis.
type JobProcessor struct {
	service   Service
	scheduler gocron.Scheduler
	log       *logger.Logger
}

// NewJobProcessor creates the scheduler in the given IANA timezone.
func NewJobProcessor(service Service, timezone string) (*JobProcessor, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", timezone, err)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(location))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &JobProcessor{
		service:   service,
		scheduler: scheduler,
		log:       logger.GetDefault(),
	}, nil
}

// Start registers the jobs: Monday 00:00:05 when the week rolls over, and hourly
// so schedule edits made during the week are picked up.
func (jp *JobProcessor) Start(ctx context.Context) error {
	task := gocron.NewTask(jp.warmWeekCache, ctx)

	if _, err := jp.scheduler.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday), gocron.NewAtTimes(gocron.NewAtTime(0, 0, 5))),
		task,
		gocron.WithName(weekCacheJob+".weekly"),
	); err != nil {
		return fmt.Errorf("failed to schedule weekly warm-up: %w", err)
	}

	if _, err := jp.scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		task,
		gocron.WithName(weekCacheJob+".hourly"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		return fmt.Errorf("failed to schedule hourly warm-up: %w", err)
	}

	jp.scheduler.Start()
	jp.log.InfoContext(ctx, "Movie background jobs started")
	return nil
}

// Stop waits for running jobs to finish
func (jp *JobProcessor) Stop() error {
	err := jp.scheduler.Shutdown()
	jp.log.Info("Movie background jobs stopped")
	return err
}

func (jp *JobProcessor) warmWeekCache(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	count, err := jp.service.RefreshWeekCache(ctx)
	jp.log.LogJobRun(ctx, weekCacheJob, time.Since(start), err)
	if err == nil {
		jp.log.DebugWithContext(ctx, "week listing cached", map[string]interface{}{"movies": count})
	}
}
