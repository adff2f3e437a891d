package sleeper

import (
	"context"
	"errors"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_rankings/cache"
	"github.com/mww/fantasy_rankings/logging"
	"github.com/mww/fantasy_rankings/metrics"
	"github.com/mww/fantasy_rankings/model"
	"github.com/mww/fantasy_rankings/platforms"
	"github.com/mww/fantasy_rankings/testutils"
)

func newForTest(t *testing.T, url string) platforms.Provider {
	t.Helper()
	m := metrics.New()
	c := cache.New(cache.NewMemoryStore(clock.NewMock()), m, logging.Discard())
	p, err := New(Options{BaseURL: url}, c, m, logging.Discard())
	if err != nil {
		t.Fatalf("error creating client: %v", err)
	}
	return p
}

func TestName(t *testing.T) {
	p := newForTest(t, "http://localhost")
	if p.Name() != model.PlatformSleeper {
		t.Errorf("expected name %s, got %s", model.PlatformSleeper, p.Name())
	}
}

func TestPlayers_all(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := newForTest(t, fakeSleeper.URL())

	players, err := c.Players(context.Background(), "")
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if len(players) != 38 {
		t.Fatalf("wrong number of players, expected 38, got %d", len(players))
	}

	expected := map[string]model.Player{
		testutils.IDSleeperLockett: {ID: "2374", Name: "Tyler Lockett", Team: "SEA", Position: "WR"},
		testutils.IDSleeperHurts:   {ID: "6904", Name: "Jalen Hurts", Team: "PHI", Position: "QB"},
		testutils.IDSleeperElliott: {ID: "3164", Name: "Ezekiel Elliott", Team: "", Position: "RB"},
		testutils.IDSleeperEagles:  {ID: "PHI", Name: "Eagles", Team: "PHI", Position: "DEF"},
		testutils.IDSleeperUnnamed: {ID: "9999", Name: model.UnknownName, Team: "", Position: "K"},
	}

	found := 0
	for _, p := range players {
		e, ok := expected[p.ID]
		if !ok {
			continue
		}
		found++
		if p != e {
			t.Errorf("expected %+v, got %+v", e, p)
		}
	}
	if found != len(expected) {
		t.Errorf("expected to find %d players, found %d", len(expected), found)
	}
}

func TestPlayers_query(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := newForTest(t, fakeSleeper.URL())

	tests := map[string]struct {
		query string
		want  []string
	}{
		"exact name":     {query: "Jalen Hurts", want: []string{testutils.IDSleeperHurts}},
		"lower case":     {query: "mahomes", want: []string{testutils.IDSleeperMahomes}},
		"upper case":     {query: "BIJAN", want: []string{testutils.IDSleeperBijan}},
		"partial":        {query: "allgei", want: []string{testutils.IDSleeperAllgeier}},
		"multiple":       {query: "tyler", want: []string{testutils.IDSleeperLockett, testutils.IDSleeperAllgeier}},
		"no match":       {query: "zzzzzz", want: []string{}},
		"surrounding ws": {query: "  Lockett  ", want: []string{testutils.IDSleeperLockett}},
		"fallback name":  {query: "eagles", want: []string{testutils.IDSleeperEagles}},
		"unknown marker": {query: "?", want: []string{testutils.IDSleeperUnnamed}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			players, err := c.Players(context.Background(), tc.query)
			if err != nil {
				t.Fatalf("error should have been nil, was: %v", err)
			}
			if players == nil {
				t.Fatalf("players should never be nil")
			}
			if len(players) != len(tc.want) {
				t.Fatalf("expected %d players, got %d: %+v", len(tc.want), len(players), players)
			}
			ids := make(map[string]bool)
			for _, p := range players {
				ids[p.ID] = true
			}
			for _, id := range tc.want {
				if !ids[id] {
					t.Errorf("expected player %s in results", id)
				}
			}
		})
	}
}

func TestPlayers_cached(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := newForTest(t, fakeSleeper.URL())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.Players(ctx, ""); err != nil {
			t.Fatalf("error should have been nil, was: %v", err)
		}
		if _, err := c.WeeklyRankings(ctx, "QB", 1); err != nil {
			t.Fatalf("error should have been nil, was: %v", err)
		}
	}

	if fakeSleeper.Requests() != 1 {
		t.Errorf("expected the player directory to be fetched once, was fetched %d times", fakeSleeper.Requests())
	}
}

func TestPlayers_upstreamError(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	c := newForTest(t, fakeSleeper.URL())
	fakeSleeper.Close()

	players, err := c.Players(context.Background(), "")
	if err == nil {
		t.Fatalf("expected an error, got %d players", len(players))
	}
	if !errors.Is(err, platforms.ErrUpstream) {
		t.Errorf("expected an upstream error, got: %v", err)
	}
}

func TestWeeklyRankings(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := newForTest(t, fakeSleeper.URL())

	rankings, err := c.WeeklyRankings(context.Background(), "RB", 1)
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if len(rankings) != maxRankings {
		t.Fatalf("expected %d rankings, got %d", maxRankings, len(rankings))
	}

	// Players without a team sort first, then by team and name.
	expectedFirst := []string{
		testutils.IDSleeperElliott,
		testutils.IDSleeperConner,
		testutils.IDSleeperBijan,
		testutils.IDSleeperAllgeier,
	}
	for i, id := range expectedFirst {
		if rankings[i].PlayerID != id {
			t.Errorf("rank %d: expected player %s, got %s (%s)", i+1, id, rankings[i].PlayerID, rankings[i].PlayerName)
		}
	}

	for i, r := range rankings {
		if r.Rank != i+1 {
			t.Errorf("expected rank %d, got %d", i+1, r.Rank)
		}
		if r.Week != 1 {
			t.Errorf("expected week 1, got %d", r.Week)
		}
		if r.Position != "RB" {
			t.Errorf("expected position RB, got %s", r.Position)
		}
		if r.Source != model.PlatformSleeper {
			t.Errorf("expected source %s, got %s", model.PlatformSleeper, r.Source)
		}
	}
}

func TestWeeklyRankings_positions(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := newForTest(t, fakeSleeper.URL())

	tests := map[string]struct {
		position string
		week     int
		want     []string
	}{
		"quarterbacks": {
			position: "QB",
			week:     3,
			want:     []string{testutils.IDSleeperAllen, testutils.IDSleeperMahomes, testutils.IDSleeperHurts},
		},
		"lower case position": {
			position: "qb",
			week:     3,
			want:     []string{testutils.IDSleeperAllen, testutils.IDSleeperMahomes, testutils.IDSleeperHurts},
		},
		"tight ends":     {position: "TE", week: 18, want: []string{testutils.IDSleeperSinnott}},
		"defense":        {position: "DEF", week: 2, want: []string{testutils.IDSleeperEagles}},
		"kicker no team": {position: "K", week: 2, want: []string{testutils.IDSleeperUnnamed}},
		"unknown":        {position: "LS", week: 1, want: []string{}},
		"empty":          {position: "", week: 1, want: []string{}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rankings, err := c.WeeklyRankings(context.Background(), tc.position, tc.week)
			if err != nil {
				t.Fatalf("error should have been nil, was: %v", err)
			}
			if rankings == nil {
				t.Fatalf("rankings should never be nil")
			}
			if len(rankings) != len(tc.want) {
				t.Fatalf("expected %d rankings, got %d", len(tc.want), len(rankings))
			}
			for i, id := range tc.want {
				if rankings[i].PlayerID != id {
					t.Errorf("rank %d: expected %s, got %s", i+1, id, rankings[i].PlayerID)
				}
				if rankings[i].Week != tc.week {
					t.Errorf("expected week %d, got %d", tc.week, rankings[i].Week)
				}
			}
		})
	}
}

func TestWeeklyRankings_ignoresOptions(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := newForTest(t, fakeSleeper.URL())
	ctx := context.Background()

	plain, err := c.WeeklyRankings(ctx, "QB", 2)
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	withOpts, err := c.WeeklyRankings(ctx, "QB", 2, platforms.WithSeason("2023"), platforms.WithScoring(model.SCORING_HALF))
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if len(plain) != len(withOpts) {
		t.Fatalf("expected the same number of rankings, got %d and %d", len(plain), len(withOpts))
	}
	for i := range plain {
		if plain[i] != withOpts[i] {
			t.Errorf("expected %+v, got %+v", plain[i], withOpts[i])
		}
	}
}
