package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/mww/fantasy_rankings/controller"
	"github.com/mww/fantasy_rankings/model"
	"github.com/mww/fantasy_rankings/platforms"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

const (
	defaultPosition = "RB"
	defaultWeek     = 1
)

type errorResponse struct {
	Error string `json:"error"`
}

func healthHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func playersHandler(ctrl controller.C, render *render.Render, logger logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")

		players, err := ctrl.SearchPlayers(r.Context(), query)
		if err != nil {
			renderError(w, r, render, logger, err)
			return
		}
		if players == nil {
			players = []model.Player{}
		}

		render.JSON(w, http.StatusOK, players)
	}
}

func rankingsHandler(ctrl controller.C, render *render.Render, logger logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		position := strings.TrimSpace(q.Get("position"))
		if position == "" {
			position = defaultPosition
		}

		week := defaultWeek
		if s := q.Get("week"); s != "" {
			var err error
			week, err = strconv.Atoi(s)
			if err != nil || week < 1 {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: "week must be a positive integer"})
				return
			}
		}

		var opts []platforms.RankingOption
		if season := strings.TrimSpace(q.Get("season")); season != "" {
			opts = append(opts, platforms.WithSeason(season))
		}
		if s := q.Get("scoring"); s != "" {
			mode, err := model.ParseScoringMode(s)
			if err != nil {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
			opts = append(opts, platforms.WithScoring(mode))
		}

		rankings, err := ctrl.WeeklyRankings(r.Context(), position, week, opts...)
		if err != nil {
			renderError(w, r, render, logger, err)
			return
		}
		if rankings == nil {
			rankings = []model.Ranking{}
		}

		render.JSON(w, http.StatusOK, rankings)
	}
}

// renderError logs the full error and sends the client a generic message.
func renderError(w http.ResponseWriter, r *http.Request, render *render.Render, logger logrus.FieldLogger, err error) {
	logger.WithField("path", r.URL.Path).Errorf("request failed: %v", err)

	if errors.Is(err, platforms.ErrTimeframeUnresolved) {
		render.JSON(w, http.StatusServiceUnavailable, errorResponse{Error: platforms.ErrTimeframeUnresolved.Error()})
		return
	}
	render.JSON(w, http.StatusInternalServerError, errorResponse{Error: platforms.ErrUpstream.Error()})
}
