package worker

import (
	"fmt"
	"time"

	"github.com/dustin/watchly-backend/config"
	"github.com/dustin/watchly-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SweepFunc defines the function signature for sweep operations
type SweepFunc func() error

// SweepWorker runs scheduled cleanup operations with configurable intervals
type SweepWorker struct {
	name          string
	cron          *cron.Cron
	sweepFunc     SweepFunc
	sweepInterval time.Duration
	logger        *logger.Logger
	entryID       cron.EntryID
}

// NewSweepWorker creates a cron-scheduled worker with validation and defaults
func NewSweepWorker(cfg *config.WorkerConfig, name string, sweepFunc SweepFunc, logger *logger.Logger) (*SweepWorker, error) {
	// Set defaults for nil or empty config values
	var sweepInterval time.Duration = 1 * time.Hour
	if cfg != nil && cfg.SweepInterval != "" {
		duration, err := time.ParseDuration(cfg.SweepInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid sweep interval '%s': %v", cfg.SweepInterval, err)
		}
		sweepInterval = duration
	}

	return &SweepWorker{
		name:          name,
		cron:          cron.New(),
		sweepFunc:     sweepFunc,
		sweepInterval: sweepInterval,
		logger:        logger.WithComponent("sweep-worker"),
	}, nil
}

// Start schedules and begins the sweep worker
func (w *SweepWorker) Start() error {
	intervalStr := w.durationToCronExpression(w.sweepInterval)
	w.logger.Info(fmt.Sprintf("Starting sweep worker: %s (every %v)", w.name, w.sweepInterval))

	entryID, err := w.cron.AddFunc(intervalStr, func() {
		w.logger.Debug("Executing sweep operation for worker: " + w.name)

		if err := w.sweepFunc(); err != nil {
			w.logger.Error("Sweep operation failed for worker " + w.name + ": " + err.Error())
		} else {
			w.logger.Debug("Sweep operation completed for worker: " + w.name)
		}
	})

	if err != nil {
		w.logger.Error("Failed to schedule sweep worker " + w.name + ": " + err.Error())
		return err
	}

	w.entryID = entryID
	w.cron.Start()

	w.logger.Info("Sweep worker started successfully: " + w.name)

	return nil
}

// Stop gracefully shuts down the sweep worker
func (w *SweepWorker) Stop() error {
	w.logger.Info("Stopping sweep worker: " + w.name)

	// Remove the scheduled entry
	if w.entryID > 0 {
		w.cron.Remove(w.entryID)
	}

	ctx := w.cron.Stop()
	<-ctx.Done() // Wait for graceful shutdown

	w.logger.Info("Sweep worker stopped: " + w.name)

	return nil
}

// IsRunning checks if the worker has active cron entries
func (w *SweepWorker) IsRunning() bool {
	return len(w.cron.Entries()) > 0
}

// durationToCronExpression converts duration to cron format with fallback
func (w *SweepWorker) durationToCronExpression(duration time.Duration) string {
	minutes := int(duration.Minutes())
	hours := int(duration.Hours())

	if hours > 0 && minutes%60 == 0 {
		return fmt.Sprintf("0 */%d * * *", hours)
	} else if minutes > 0 && minutes < 60 {
		return fmt.Sprintf("*/%d * * * *", minutes)
	}

	// Fallback for unsupported durations
	w.logger.Warn(fmt.Sprintf("Unsupported sweep interval %v, defaulting to 1 hour", duration))
	return "0 */1 * * *"
}
