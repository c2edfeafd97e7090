// Package worldmap holds the interactive travel map: decoded country
// boundaries, chapter markers, flight paths and hover/click state.
package worldmap

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/paulmach/orb"

	"travelmap/internal/chapter"
	"travelmap/internal/geom"
)

type Option func(*Map)

func WithProjector(p geom.Projector) Option { return func(m *Map) { m.proj = p } }

func WithCrop(c geom.CropWindow) Option { return func(m *Map) { m.crop = c } }

// WithObject selects the topology object holding boundaries.
func WithObject(name string) Option { return func(m *Map) { m.object = name } }

// WithClickHandler sets the callback invoked with a chapter name on marker click.
func WithClickHandler(fn func(name string)) Option { return func(m *Map) { m.onClick = fn } }

func WithLogger(l *slog.Logger) Option { return func(m *Map) { m.log = l } }

// Map is the travel map component. The chapter list is fixed at construction.
type Map struct {
	proj    geom.Projector
	crop    geom.CropWindow
	object  string
	onClick func(name string)
	log     *slog.Logger

	chapters []chapter.Chapter
	points   []orb.Point
	visible  []bool
	flights  []chapter.FlightPath

	mu      sync.RWMutex
	gen     int
	mounted bool
	cancel  context.CancelFunc
	data    geom.Data // decoded lon/lat rings
	rings   []orb.Ring
	paths   []string
	hovered int // index into chapters, -1 for none
}

// New builds a map over a copy of chs.
func New(chs []chapter.Chapter, opts ...Option) *Map {
	m := &Map{
		proj:    geom.DefaultProjector(),
		crop:    geom.DefaultCrop(),
		object:  geom.DefaultObject,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		hovered: -1,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.chapters = chapter.Clone(chs)
	m.points = make([]orb.Point, len(m.chapters))
	m.visible = make([]bool, len(m.chapters))
	for i, ch := range m.chapters {
		m.points[i] = m.proj.Project(ch.Lon, ch.Lat)
		m.visible[i] = m.crop.Contains(ch.Lon, ch.Lat)
		if !m.visible[i] {
			m.log.Warn("chapter outside crop window, marker disabled",
				"chapter", ch.Name, "lon", ch.Lon, "lat", ch.Lat)
		}
	}
	m.flights = chapter.Flights(m.chapters, m.proj)
	return m
}

func (m *Map) Projector() geom.Projector { return m.proj }

func (m *Map) Crop() geom.CropWindow { return m.crop }

// Chapters returns a copy of the chapter list.
func (m *Map) Chapters() []chapter.Chapter { return chapter.Clone(m.chapters) }

// Flights returns the connectors between consecutive chapters. They do not
// depend on the topology and are available right after New.
func (m *Map) Flights() []chapter.FlightPath {
	return append([]chapter.FlightPath(nil), m.flights...)
}

// Mount starts the one-shot topology load. The result is applied only while
// this mount is still active; failures leave the boundary list empty. The
// returned channel is closed once the attempt has finished.
func (m *Map) Mount(ctx context.Context, src geom.Source) <-chan struct{} {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	m.gen++
	gen := m.gen
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.mounted = true
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		m.load(ctx, gen, src)
	}()
	return done
}

func (m *Map) load(ctx context.Context, gen int, src geom.Source) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("topology load panicked", "panic", r)
		}
	}()
	if src == nil {
		return
	}

	topo, err := src.Load(ctx)
	if err != nil {
		m.log.Warn("topology unavailable, rendering without boundaries", "error", err)
		return
	}
	data := geom.NewDecoder(topo).Rings(m.object)
	if data.Skipped > 0 {
		m.log.Warn("skipped unsupported geometries", "object", m.object, "count", data.Skipped)
	}

	rings := make([]orb.Ring, len(data.Rings))
	paths := make([]string, len(data.Rings))
	for i, r := range data.Rings {
		rings[i] = geom.ProjectRing(r, m.proj)
		paths[i] = geom.RingPath(rings[i])
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.mounted || gen != m.gen {
		m.log.Debug("discarding topology for a torn down map")
		return
	}
	m.data, m.rings, m.paths = data, rings, paths
	m.log.Debug("topology decoded", "rings", len(rings))
}

// Unmount cancels any pending load and drops the boundaries.
func (m *Map) Unmount() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.gen++
	m.mounted = false
	m.data, m.rings, m.paths = geom.Data{}, nil, nil
	m.hovered = -1
}

// Boundaries returns one path string per decoded ring.
func (m *Map) Boundaries() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.paths...)
}

// Rings returns the decoded rings in canvas pixels.
func (m *Map) Rings() []orb.Ring {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]orb.Ring(nil), m.rings...)
}

// Geography returns the decoded boundaries in lon/lat.
func (m *Map) Geography() geom.Data {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d := m.data
	d.Rings = append([]orb.Ring(nil), m.data.Rings...)
	return d
}
