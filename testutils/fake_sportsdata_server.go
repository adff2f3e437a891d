package testutils

import (
	"embed"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

const SportsDataKey = "test-api-key"

//go:embed sportsdata
var sportsdata embed.FS

// FakeSportsDataServer mimics the SportsDataIO NFL endpoints we use. The
// timeframe endpoints can be made to fail to exercise resolution fallbacks.
type FakeSportsDataServer struct {
	s *httptest.Server

	FailTimeframes atomic.Bool
	FailCurrent    atomic.Bool

	mu   sync.Mutex
	hits map[string]int
}

func NewFakeSportsDataServer() *FakeSportsDataServer {
	f := &FakeSportsDataServer{hits: make(map[string]int)}

	r := chi.NewRouter()
	r.Use(f.countHits)
	r.Use(requireKey)

	r.Route("/v3/nfl", func(r chi.Router) {
		r.Route("/scores/json", func(r chi.Router) {
			r.Get("/Timeframes/current", f.timeframesHandler)
			r.Get("/CurrentSeason", f.currentHandler("current_season.json"))
			r.Get("/CurrentWeek", f.currentHandler("current_week.json"))
			r.Get("/Players", staticHandler("players.json"))
		})
		r.Get("/projections/json/PlayerGameProjectionStatsByWeek/{season}/{week}", projectionsHandler)
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSportsDataServer) Close() {
	f.s.Close()
}

// URL is the base URL for the NFL API, e.g. http://127.0.0.1:1234/v3/nfl
func (f *FakeSportsDataServer) URL() string {
	return f.s.URL + "/v3/nfl"
}

// Hits returns how many times a path below the base URL was requested.
func (f *FakeSportsDataServer) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits["/v3/nfl"+path]
}

func (f *FakeSportsDataServer) countHits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Ocp-Apim-Subscription-Key") != SportsDataKey {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"HttpStatusCode":401,"Code":401,"Description":"Access denied due to missing subscription key."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeSportsDataServer) timeframesHandler(w http.ResponseWriter, r *http.Request) {
	if f.FailTimeframes.Load() {
		// Timeframes are not part of every subscription plan.
		w.WriteHeader(http.StatusForbidden)
		return
	}
	serveFile(w, sportsdata, "sportsdata/timeframes_current.json")
}

func (f *FakeSportsDataServer) currentHandler(file string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if f.FailCurrent.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		serveFile(w, sportsdata, "sportsdata/"+file)
	}
}

func staticHandler(file string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveFile(w, sportsdata, "sportsdata/"+file)
	}
}

func projectionsHandler(w http.ResponseWriter, r *http.Request) {
	season := chi.URLParam(r, "season")
	week := chi.URLParam(r, "week")

	name := fmt.Sprintf("sportsdata/projections_%s_%s.json", season, week)
	if _, err := sportsdata.Open(name); err != nil {
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
		return
	}
	serveFile(w, sportsdata, name)
}
