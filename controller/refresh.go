package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const refreshTimeout = 5 * time.Minute

func (c *controller) WarmCaches(ctx context.Context) error {
	var errs []error
	if _, err := c.SearchPlayers(ctx, ""); err != nil {
		errs = append(errs, err)
	}
	for _, pos := range c.warm.Positions {
		if _, err := c.WeeklyRankings(ctx, pos, c.warm.Week); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunPeriodicRefresh warms the caches on the cron schedule until shutdown is
// closed. Failed runs are logged and retried on the next tick.
func (c *controller) RunPeriodicRefresh(schedule string, shutdown chan bool, wg *sync.WaitGroup) {
	defer wg.Done()

	cr := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(c.logger))))
	if _, err := cr.AddFunc(schedule, c.refresh); err != nil {
		c.logger.Errorf("error scheduling cache refresh with '%s', background refresh disabled: %v", schedule, err)
		return
	}

	cr.Start()
	c.logger.Infof("cache refresh scheduled: %s", schedule)

	<-shutdown
	// Wait for a running refresh to finish.
	<-cr.Stop().Done()
}

func (c *controller) refresh() {
	logger := c.logger.WithField("run_id", uuid.NewString())

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := c.clock.Now()
	logger.Infof("cache refresh starting at %v", start.Format(time.DateTime))

	if err := c.WarmCaches(ctx); err != nil {
		c.metrics.RefreshRun("error")
		logger.Errorf("error refreshing caches: %v", err)
		return
	}

	c.metrics.RefreshRun("ok")
	logger.Infof("cache refresh finished, took %v", c.clock.Now().Sub(start))
}
