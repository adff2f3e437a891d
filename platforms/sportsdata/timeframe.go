package sportsdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mww/fantasy_rankings/cache"
	"github.com/mww/fantasy_rankings/model"
	"github.com/mww/fantasy_rankings/platforms"
	"github.com/mww/fantasy_rankings/platforms/sportsdata/internal"
)

var errNoCurrentTimeframe = errors.New("no current or upcoming timeframe")

// ResolveTimeframe works out the season and week that rankings should use when
// the caller doesn't ask for a specific season. It tries, in order, the
// Timeframes endpoint, the CurrentSeason and CurrentWeek endpoints and finally
// the configured overrides. The answer is cached for a few minutes.
func (c *Client) ResolveTimeframe(ctx context.Context) (model.Timeframe, error) {
	key := cache.Key("sportsdata.timeframe", c.upstream.BaseURL(), c.segment)
	return cache.GetOrCompute(ctx, c.cache, key, timeframeTTL, c.resolveTimeframe)
}

func (c *Client) resolveTimeframe(ctx context.Context) (model.Timeframe, error) {
	tiers := []struct {
		name    string
		resolve func(context.Context) (int, int, error)
	}{
		{name: "timeframes", resolve: c.fromTimeframes},
		{name: "current season and week", resolve: c.fromCurrent},
		{name: "overrides", resolve: c.fromOverrides},
	}

	var errs []error
	for _, t := range tiers {
		season, week, err := t.resolve(ctx)
		if err != nil {
			c.logger.WithField("tier", t.name).Debugf("could not resolve timeframe: %v", err)
			errs = append(errs, fmt.Errorf("%s: %w", t.name, err))
			continue
		}

		tf := model.Timeframe{Season: model.SeasonToken(season, c.segment), Week: week}
		c.logger.WithField("tier", t.name).Debugf("resolved timeframe to %s", tf)
		return tf, nil
	}

	return model.Timeframe{}, fmt.Errorf("%w: %w", platforms.ErrTimeframeUnresolved, errors.Join(errs...))
}

func (c *Client) fromTimeframes(ctx context.Context) (int, int, error) {
	var frames []internal.Timeframe
	if err := c.upstream.GetJSON(ctx, &frames, "/scores/json/Timeframes/current"); err != nil {
		return 0, 0, err
	}

	current := findFrame(frames, func(f internal.Timeframe) bool { return f.IsCurrent })
	if current == nil {
		current = findFrame(frames, func(f internal.Timeframe) bool { return f.IsUpcoming })
	}
	if current == nil {
		return 0, 0, errNoCurrentTimeframe
	}
	if current.Season == nil || current.Week == nil {
		return 0, 0, errors.New("timeframe is missing season or week")
	}
	return *current.Season, *current.Week, nil
}

func findFrame(frames []internal.Timeframe, match func(internal.Timeframe) bool) *internal.Timeframe {
	for i := range frames {
		if match(frames[i]) {
			return &frames[i]
		}
	}
	return nil
}

func (c *Client) fromCurrent(ctx context.Context) (int, int, error) {
	var rawSeason, rawWeek json.RawMessage
	if err := c.upstream.GetJSON(ctx, &rawSeason, "/scores/json/CurrentSeason"); err != nil {
		return 0, 0, err
	}
	if err := c.upstream.GetJSON(ctx, &rawWeek, "/scores/json/CurrentWeek"); err != nil {
		return 0, 0, err
	}

	season, err := parseScalar(rawSeason)
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing current season: %w", err)
	}

	// Between seasons the week can come back as null.
	week, err := parseScalar(rawWeek)
	if err != nil || week <= 0 {
		week = 1
	}
	return season, week, nil
}

func (c *Client) fromOverrides(context.Context) (int, int, error) {
	if c.seasonOverride <= 0 || c.weekOverride <= 0 {
		return 0, 0, errors.New("NFL_SEASON_NUM and NFL_WEEK are not both set")
	}
	return c.seasonOverride, c.weekOverride, nil
}

// parseScalar reads an integer that may be encoded as a JSON number or string.
func parseScalar(raw json.RawMessage) (int, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	return strconv.Atoi(s)
}
