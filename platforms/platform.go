// Package platforms defines the contract every external NFL data provider
// implements, along with the error types and HTTP plumbing they share.
package platforms

import (
	"context"

	"github.com/mww/fantasy_rankings/model"
)

// Provider is an adapter over one external data source.
type Provider interface {
	// Name identifies the provider and is used as Ranking.Source.
	Name() string
	// Players returns every known player. When query is not empty only players
	// whose name contains it, ignoring case, are returned.
	Players(ctx context.Context, query string) ([]model.Player, error)
	// WeeklyRankings returns players at position ranked for week, ordered by rank
	// and truncated to the provider's maximum. Options a provider does not
	// understand are ignored.
	WeeklyRankings(ctx context.Context, position string, week int, opts ...RankingOption) ([]model.Ranking, error)
}

type RankingOptions struct {
	// Season is an explicit season token, e.g. "2024" or "2024REG". Empty means
	// the provider should work out the current season itself.
	Season  string
	Scoring model.ScoringMode
}

type RankingOption func(*RankingOptions)

func WithSeason(season string) RankingOption {
	return func(o *RankingOptions) {
		o.Season = season
	}
}

func WithScoring(mode model.ScoringMode) RankingOption {
	return func(o *RankingOptions) {
		o.Scoring = mode
	}
}

// ApplyOptions folds opts over the defaults.
func ApplyOptions(defaults RankingOptions, opts ...RankingOption) RankingOptions {
	o := defaults
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
