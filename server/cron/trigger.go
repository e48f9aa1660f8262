// Package cron provides cron-based scheduling for periodic background jobs,
// such as pushing roster metrics to a remote write endpoint.
//
// Example usage:
//
//	trigger, err := cron.NewCronTrigger("*/5 * * * *", pusher, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	trigger.Start(ctx)  // Returns immediately, runs in background
//	<-ctx.Done()        // Wait for shutdown signal
//	trigger.Wait()
package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidCronSpec is returned when the cron specification cannot be parsed.
var ErrInvalidCronSpec = errors.New("invalid cron spec")

// Runnable is implemented by anything that can be triggered by the cron scheduler.
type Runnable interface {
	Run(ctx context.Context) error
}

// RunnableFunc adapts a function to the Runnable interface.
type RunnableFunc func(ctx context.Context) error

// Run implements Runnable.
func (f RunnableFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// CronTrigger executes a Runnable according to a cron schedule.
type CronTrigger struct {
	spec     string
	schedule cron.Schedule
	runnable Runnable
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewCronTrigger creates a new CronTrigger with the given cron specification.
// The spec follows standard cron format (5 fields: minute, hour, day, month,
// weekday) or a descriptor such as "@hourly" or "@every 30s".
// Returns ErrInvalidCronSpec if the specification cannot be parsed.
func NewCronTrigger(spec string, runnable Runnable, logger *slog.Logger) (*CronTrigger, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, errors.Join(ErrInvalidCronSpec, err)
	}

	return &CronTrigger{
		spec:     spec,
		schedule: schedule,
		runnable: runnable,
		logger:   logger.With("schedule", spec),
	}, nil
}

// Start launches a goroutine that triggers runs according to the cron schedule.
// Returns immediately. The goroutine exits when ctx is cancelled.
func (ct *CronTrigger) Start(ctx context.Context) {
	ct.wg.Add(1)
	go func() {
		defer ct.wg.Done()
		ct.loop(ctx)
	}()
}

// Wait blocks until the goroutine started by Start has exited.
func (ct *CronTrigger) Wait() {
	ct.wg.Wait()
}

// NextRun returns the next scheduled run time from now.
func (ct *CronTrigger) NextRun() time.Time {
	return ct.schedule.Next(time.Now())
}

func (ct *CronTrigger) loop(ctx context.Context) {
	for {
		nextRun := ct.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(nextRun))

		ct.logger.Debug("waiting for next scheduled run", "next_run", nextRun)

		select {
		case <-ctx.Done():
			timer.Stop()
			ct.logger.Info("cron trigger shutting down")
			return
		case <-timer.C:
			ct.executeRun(ctx)
		}
	}
}

func (ct *CronTrigger) executeRun(ctx context.Context) {
	if err := ct.runnable.Run(ctx); err != nil {
		ct.logger.Warn("scheduled run completed with error", "error", err)
		return
	}
	ct.logger.Debug("scheduled run completed successfully")
}
