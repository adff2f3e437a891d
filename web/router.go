package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mww/fantasy_rankings/controller"
	"github.com/mww/fantasy_rankings/logging"
	"github.com/mww/fantasy_rankings/metrics"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, m *metrics.Metrics, logger logrus.FieldLogger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(logger))
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped. Cold caches can mean several upstream
	// calls, so this is generous.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler(render))
		r.Get("/players", playersHandler(ctrl, render, logger))
		r.Get("/rankings", rankingsHandler(ctrl, render, logger))
	})

	r.Method("GET", "/metrics", m.Handler())

	return r
}
