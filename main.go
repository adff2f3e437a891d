package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_rankings/cache"
	"github.com/mww/fantasy_rankings/config"
	"github.com/mww/fantasy_rankings/controller"
	"github.com/mww/fantasy_rankings/logging"
	"github.com/mww/fantasy_rankings/metrics"
	"github.com/mww/fantasy_rankings/web"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}

	clock := clock.New()
	m := metrics.New()

	store, closeStore, err := newStore(cfg, clock, logger)
	if err != nil {
		logger.Fatalf("error creating cache store: %v", err)
	}
	defer closeStore()
	c := cache.New(store, m, logger)

	providers := controller.NewProviders(cfg, c, m, logger)
	if len(providers) == 0 {
		logger.Warnf("no usable providers in %v, every request will return no data", cfg.Providers)
	}

	warm := controller.Warm{Positions: cfg.WarmPositions, Week: cfg.WarmWeek}
	ctrl, err := controller.New(clock, providers, warm, m, logger)
	if err != nil {
		logger.Fatalf("error creating a new controller: %v", err)
	}
	logger.WithField("providers", ctrl.Providers()).Info("providers configured")

	server, err := web.NewServer(cfg.Port, ctrl, m, logger)
	if err != nil {
		logger.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			logger.Error("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Keep the player directory and the most requested rankings warm.
	wg.Add(1)
	go ctrl.RunPeriodicRefresh(cfg.RefreshSchedule, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	logger.Info("server shutdown")
}

func newStore(cfg *config.Config, clock clock.Clock, logger logrus.FieldLogger) (cache.Store, func(), error) {
	switch cfg.CacheType {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s, err := cache.NewRedisStore(ctx, cfg.CacheRedisURL)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Warnf("error closing redis: %v", err)
			}
		}, nil
	default:
		return cache.NewMemoryStore(clock), func() {}, nil
	}
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
