// Package web serves the travel map over HTTP: the rendered SVG plus JSON
// views of chapters, flights and boundaries.
package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"travelmap/internal/worldmap"
)

// Server is the HTTP surface of a mounted map.
type Server struct {
	router chi.Router
	world  *worldmap.Map
	svg    worldmap.SVGOptions
	log    *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(world *worldmap.Map, svg worldmap.SVGOptions, log *slog.Logger) *Server {
	s := &Server{
		world: world,
		svg:   svg,
		log:   log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/map.svg", s.handleMap)

	r.Route("/api", func(r chi.Router) {
		r.Get("/chapters", s.handleChapters)
		r.Get("/chapters/{name}", s.handleChapter)
		r.Get("/flights", s.handleFlights)
		r.Get("/boundaries", s.handleBoundaries)
		r.Get("/boundaries.geojson", s.handleGeoJSON)
	})

	s.router = r
}
