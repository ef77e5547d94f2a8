package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartRefresher re-runs the catalog pipeline every interval until the
// returned scheduler is shut down. Overlapping runs are skipped.
func StartRefresher(ctx context.Context, c *Controller, interval time.Duration, logger *slog.Logger) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			origin := c.Refresh(ctx)
			logger.Debug("catalog refreshed", "source", origin.Tier)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("catalog-refresh"),
	)
	if err != nil {
		sched.Shutdown()
		return nil, fmt.Errorf("scheduling catalog refresh: %w", err)
	}

	sched.Start()
	return sched, nil
}
