package testutils

import (
	"embed"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

type FakeSleeperServer struct {
	s        *httptest.Server
	requests atomic.Int32
}

func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{}

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/nfl", f.nflPlayersHandler)
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

// URL is the base URL including the API version, e.g. http://127.0.0.1:1234/v1
func (f *FakeSleeperServer) URL() string {
	return f.s.URL + "/v1"
}

// Requests is the number of player directory requests served.
func (f *FakeSleeperServer) Requests() int {
	return int(f.requests.Load())
}

func (f *FakeSleeperServer) nflPlayersHandler(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	serveFile(w, sleeperdata, "sleeperdata/players.json")
}

func serveFile(w http.ResponseWriter, fs embed.FS, name string) {
	b, err := fs.ReadFile(name)
	if err != nil {
		log.Printf("error reading %s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
