package controller

import (
	"errors"
	"fmt"

	"github.com/mww/fantasy_rankings/cache"
	"github.com/mww/fantasy_rankings/config"
	"github.com/mww/fantasy_rankings/metrics"
	"github.com/mww/fantasy_rankings/model"
	"github.com/mww/fantasy_rankings/platforms"
	"github.com/mww/fantasy_rankings/platforms/sleeper"
	"github.com/mww/fantasy_rankings/platforms/sportsdata"
	"github.com/sirupsen/logrus"
)

// NewProviders builds the providers named in cfg.Providers, in order. Names that
// aren't known are skipped, as are providers that can't be built, so that one
// misconfigured provider doesn't take the others down with it.
func NewProviders(cfg *config.Config, c *cache.Cache, m *metrics.Metrics, logger logrus.FieldLogger) []platforms.Provider {
	providers := make([]platforms.Provider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		p, err := newProvider(name, cfg, c, m, logger)
		if err != nil {
			l := logger.WithField("provider", name)
			if errors.Is(err, platforms.ErrUnknownProvider) {
				l.Debug("skipping unknown provider")
			} else {
				l.Errorf("error creating provider, skipping it: %v", err)
			}
			continue
		}
		providers = append(providers, p)
	}
	return providers
}

func newProvider(name string, cfg *config.Config, c *cache.Cache, m *metrics.Metrics, logger logrus.FieldLogger) (platforms.Provider, error) {
	switch name {
	case model.PlatformSleeper:
		return sleeper.New(sleeper.Options{
			BaseURL: cfg.SleeperBase,
			Timeout: cfg.UpstreamTimeout,
		}, c, m, logger)
	case model.PlatformSportsDataIO:
		segment, err := model.ParseSeasonType(cfg.SeasonType)
		if err != nil {
			return nil, fmt.Errorf("error creating %s provider: %w", name, err)
		}
		p, err := sportsdata.New(sportsdata.Options{
			BaseURL:        cfg.SportsDataIOBase,
			APIKey:         cfg.SportsDataIOAPIKey,
			SeasonType:     segment,
			SeasonOverride: cfg.SeasonOverride,
			WeekOverride:   cfg.WeekOverride,
			Timeout:        cfg.UpstreamTimeout,
			RateLimit:      cfg.SportsDataIORateLimit,
		}, c, m, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating %s provider: %w", name, err)
		}
		return p, nil
	default:
		return nil, platforms.ErrUnknownProvider
	}
}
