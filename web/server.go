package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mww/fantasy_rankings/controller"
	"github.com/mww/fantasy_rankings/metrics"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type Server struct {
	server *http.Server
	logger logrus.FieldLogger
}

func NewServer(port int, ctrl controller.C, m *metrics.Metrics, logger logrus.FieldLogger) (*Server, error) {
	logger = logger.WithField("component", "web")
	router := getRouter(ctrl, newRender(), m, logger)

	s := &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	s.logger.Infof("web server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Fatalf("fatal error with server: %v", err)
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		UnEscapeHTML: true,
	})
}
