package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"travelmap/internal/chapter"
	"travelmap/internal/worldmap"
)

type chapterView struct {
	chapter.Chapter
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Visible bool    `json:"visible"`
}

func markerView(mk worldmap.Marker) chapterView {
	return chapterView{Chapter: mk.Chapter, X: mk.Point[0], Y: mk.Point[1], Visible: mk.Visible}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"boundaries": len(s.world.Boundaries()),
	})
}

// handleMap renders the SVG map. ?hover=Name highlights a chapter for this
// response only, ?width sets the pixel width and ?animate=0 freezes it.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	opt := s.svg
	q := r.URL.Query()
	opt.Hover = q.Get("hover")
	if v := q.Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "width must be a positive integer", http.StatusBadRequest)
			return
		}
		opt.Width = n
	}
	if q.Get("animate") == "0" {
		opt.Animate = false
	}

	var buf bytes.Buffer
	if err := s.world.WriteSVG(&buf, opt); err != nil {
		if errors.Is(err, chapter.ErrNotFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		s.log.Error("rendering map", "error", err)
		jsonError(w, "failed to render map", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	markers := s.world.Markers()
	out := make([]chapterView, 0, len(markers))
	for _, mk := range markers {
		out = append(out, markerView(mk))
	}
	writeJSON(w, http.StatusOK, map[string]any{"chapters": out})
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		jsonError(w, "invalid chapter name", http.StatusBadRequest)
		return
	}
	for _, mk := range s.world.Markers() {
		if mk.Chapter.Name == name {
			writeJSON(w, http.StatusOK, markerView(mk))
			return
		}
	}
	jsonError(w, "chapter not found: "+name, http.StatusNotFound)
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"flights": s.world.Flights()})
}

func (s *Server) handleBoundaries(w http.ResponseWriter, r *http.Request) {
	paths := s.world.Boundaries()
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"paths": paths})
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	data, err := s.world.Geography().FeatureCollection().MarshalJSON()
	if err != nil {
		s.log.Error("encoding geojson", "error", err)
		jsonError(w, "failed to encode boundaries", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
